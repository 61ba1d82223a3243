package poker

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a weighted set of hole-card combinations built from standard
// range notation. Ranges are constructed once and never mutated afterwards.
type Range struct {
	hands map[HoleCards]float64
}

// NewRange creates an empty range.
func NewRange() *Range {
	return &Range{hands: make(map[HoleCards]float64)}
}

// tokenKind tags the parsed form of a single range token so expansion is a
// switch over variants rather than re-inspecting the string.
type tokenKind int

const (
	tokenClass     tokenKind = iota // "AA", "AKs", "QJo"
	tokenAnySuit                    // "AK" (suited + offsuit)
	tokenClassPlus                  // "TT+", "ATs+", "KJo+"
	tokenAnyPlus                    // "AT+"
	tokenClassDash                  // "22-66", "A5s-A2s"
)

type rangeToken struct {
	kind   tokenKind
	hi, lo Rank
	suited bool
	any    bool // both suited and offsuit (dash ranges without a suffix)
	// dash ranges carry a second bound
	hi2, lo2 Rank
}

// ParseRange parses comma-separated range notation such as
// "TT+,AJs+,KQo,22-66,A5s-A2s". All hands get weight 1.0.
func ParseRange(notation string) (*Range, error) {
	r := NewRange()
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tok, err := parseRangeToken(part)
		if err != nil {
			return nil, fmt.Errorf("range part %q: %w", part, err)
		}
		r.addToken(tok, 1.0)
	}
	return r, nil
}

// ParseClasses parses range notation and returns the distinct starting-hand
// classes it covers, strongest-first by (high, low) rank.
func ParseClasses(notation string) ([]Class, error) {
	r, err := ParseRange(notation)
	if err != nil {
		return nil, err
	}
	return r.Classes(), nil
}

func parseRangeToken(part string) (rangeToken, error) {
	if strings.HasSuffix(part, "+") {
		base := strings.TrimSuffix(part, "+")
		if strings.Contains(base, "+") {
			return rangeToken{}, fmt.Errorf("%w: repeated plus in %q", ErrInvalidRangeToken, part)
		}
		return parsePlusBase(base)
	}
	if strings.Contains(part, "+") {
		return rangeToken{}, fmt.Errorf("%w: plus must be a suffix in %q", ErrInvalidRangeToken, part)
	}
	if strings.Contains(part, "-") {
		return parseDashToken(part)
	}
	return parsePlainToken(part)
}

func parsePlainToken(part string) (rangeToken, error) {
	if len(part) == 2 {
		hi, err := parseRankChar(part[0])
		if err != nil {
			return rangeToken{}, err
		}
		lo, err := parseRankChar(part[1])
		if err != nil {
			return rangeToken{}, err
		}
		if lo > hi {
			hi, lo = lo, hi
		}
		if hi == lo {
			return rangeToken{kind: tokenClass, hi: hi, lo: lo}, nil
		}
		// "AK" with no suffix means both suited and offsuit combos.
		return rangeToken{kind: tokenAnySuit, hi: hi, lo: lo}, nil
	}

	class, err := ParseClass(part)
	if err != nil {
		return rangeToken{}, err
	}
	return rangeToken{kind: tokenClass, hi: class.High, lo: class.Low, suited: class.Suited}, nil
}

// parsePlusBase validates a "+" base: a pair ("TT+"), a two-rank+suffix
// combo ("ATs+"), or a bare two-rank combo ("AT+").
func parsePlusBase(base string) (rangeToken, error) {
	if len(base) < 2 || len(base) > 3 {
		return rangeToken{}, fmt.Errorf("%w: plus base %q must be 2-3 characters", ErrInvalidRangeToken, base)
	}
	hi, err := parseRankChar(base[0])
	if err != nil {
		return rangeToken{}, fmt.Errorf("%w: %v", ErrInvalidRangeToken, err)
	}
	lo, err := parseRankChar(base[1])
	if err != nil {
		return rangeToken{}, fmt.Errorf("%w: %v", ErrInvalidRangeToken, err)
	}
	if lo > hi {
		hi, lo = lo, hi
	}

	if hi == lo {
		if len(base) == 3 {
			return rangeToken{}, fmt.Errorf("%w: pair base %q cannot carry a modifier", ErrInvalidRangeToken, base)
		}
		return rangeToken{kind: tokenClassPlus, hi: hi, lo: lo}, nil
	}

	if len(base) == 2 {
		return rangeToken{kind: tokenAnyPlus, hi: hi, lo: lo}, nil
	}
	switch base[2] {
	case 's', 'S':
		return rangeToken{kind: tokenClassPlus, hi: hi, lo: lo, suited: true}, nil
	case 'o', 'O':
		return rangeToken{kind: tokenClassPlus, hi: hi, lo: lo, suited: false}, nil
	default:
		return rangeToken{}, fmt.Errorf("%w: unknown modifier %q in plus base", ErrInvalidRangeToken, string(base[2]))
	}
}

func parseDashToken(part string) (rangeToken, error) {
	halves := strings.SplitN(part, "-", 2)
	if len(halves) != 2 || strings.Contains(halves[1], "-") {
		return rangeToken{}, fmt.Errorf("%w: dash range %q", ErrInvalidRangeToken, part)
	}

	first, err := parsePlainToken(strings.TrimSpace(halves[0]))
	if err != nil {
		return rangeToken{}, fmt.Errorf("%w: %v", ErrInvalidRangeToken, err)
	}
	second, err := parsePlainToken(strings.TrimSpace(halves[1]))
	if err != nil {
		return rangeToken{}, fmt.Errorf("%w: %v", ErrInvalidRangeToken, err)
	}

	// Pair span: "22-66".
	if first.hi == first.lo && second.hi == second.lo {
		lo, hi := first.hi, second.hi
		if lo > hi {
			lo, hi = hi, lo
		}
		return rangeToken{kind: tokenClassDash, hi: hi, lo: hi, hi2: lo, lo2: lo}, nil
	}

	// Kicker span with a shared high card: "A5s-A2s".
	if first.hi == second.hi && first.kind == second.kind && first.suited == second.suited {
		lo, hi := first.lo, second.lo
		if lo > hi {
			lo, hi = hi, lo
		}
		return rangeToken{
			kind: tokenClassDash, hi: first.hi, lo: hi, hi2: first.hi, lo2: lo,
			suited: first.suited && first.kind == tokenClass,
			any:    first.kind == tokenAnySuit,
		}, nil
	}

	return rangeToken{}, fmt.Errorf("%w: unsupported dash range %q", ErrInvalidRangeToken, part)
}

func (r *Range) addToken(tok rangeToken, weight float64) {
	switch tok.kind {
	case tokenClass:
		r.addClass(Class{High: tok.hi, Low: tok.lo, Suited: tok.suited && tok.hi != tok.lo}, weight)
	case tokenAnySuit:
		r.addClass(Class{High: tok.hi, Low: tok.lo, Suited: true}, weight)
		r.addClass(Class{High: tok.hi, Low: tok.lo, Suited: false}, weight)
	case tokenClassPlus:
		if tok.hi == tok.lo {
			// Pairs upward: TT+ is TT..AA.
			for rank := tok.hi; rank <= Ace; rank++ {
				r.addClass(Class{High: rank, Low: rank}, weight)
			}
			return
		}
		// Kicker upward: ATs+ is ATs..AKs.
		for rank := tok.lo; rank < tok.hi; rank++ {
			r.addClass(Class{High: tok.hi, Low: rank, Suited: tok.suited}, weight)
		}
	case tokenAnyPlus:
		for rank := tok.lo; rank < tok.hi; rank++ {
			r.addClass(Class{High: tok.hi, Low: rank, Suited: true}, weight)
			r.addClass(Class{High: tok.hi, Low: rank, Suited: false}, weight)
		}
	case tokenClassDash:
		if tok.hi == tok.lo && tok.hi2 == tok.lo2 {
			for rank := tok.hi2; rank <= tok.hi; rank++ {
				r.addClass(Class{High: rank, Low: rank}, weight)
			}
			return
		}
		for rank := tok.lo2; rank <= tok.lo; rank++ {
			if tok.any {
				r.addClass(Class{High: tok.hi, Low: rank, Suited: true}, weight)
				r.addClass(Class{High: tok.hi, Low: rank, Suited: false}, weight)
				continue
			}
			r.addClass(Class{High: tok.hi, Low: rank, Suited: tok.suited}, weight)
		}
	}
}

func (r *Range) addClass(c Class, weight float64) {
	for _, combo := range c.Combos() {
		r.hands[canonical(combo)] = weight
	}
}

// canonical orders hole cards so each combination has one map key.
func canonical(h HoleCards) HoleCards {
	a, b := h.First, h.Second
	if b.Rank > a.Rank || (b.Rank == a.Rank && b.Suit > a.Suit) {
		a, b = b, a
	}
	return HoleCards{First: a, Second: b}
}

// Contains reports whether the specific hole-card combination is in the range.
func (r *Range) Contains(h HoleCards) bool {
	_, ok := r.hands[canonical(h)]
	return ok
}

// ContainsClass reports whether every combination of the class is in the range.
func (r *Range) ContainsClass(c Class) bool {
	for _, combo := range c.Combos() {
		if !r.Contains(combo) {
			return false
		}
	}
	return true
}

// Weight returns the weight of a combination, zero if absent.
func (r *Range) Weight(h HoleCards) float64 {
	return r.hands[canonical(h)]
}

// Size returns the number of combinations in the range.
func (r *Range) Size() int {
	return len(r.hands)
}

// Hands returns the combinations in a deterministic order.
func (r *Range) Hands() []HoleCards {
	hands := make([]HoleCards, 0, len(r.hands))
	for h := range r.hands {
		hands = append(hands, h)
	}
	sort.Slice(hands, func(i, j int) bool {
		if hands[i].First != hands[j].First {
			return hands[i].First.Index() < hands[j].First.Index()
		}
		return hands[i].Second.Index() < hands[j].Second.Index()
	})
	return hands
}

// Classes returns the distinct starting-hand classes covered by the range,
// ordered strongest-first.
func (r *Range) Classes() []Class {
	seen := make(map[Class]bool)
	for h := range r.hands {
		seen[h.Class()] = true
	}
	classes := make([]Class, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].High != classes[j].High {
			return classes[i].High > classes[j].High
		}
		if classes[i].Low != classes[j].Low {
			return classes[i].Low > classes[j].Low
		}
		return classes[i].Suited && !classes[j].Suited
	})
	return classes
}

// Percentage returns the share of all 1326 starting combinations the range
// covers, as a 0-100 figure.
func (r *Range) Percentage() float64 {
	return float64(len(r.hands)) / 1326.0 * 100.0
}
