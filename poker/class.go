package poker

import "fmt"

// HoleCards are a player's two hole cards.
type HoleCards struct {
	First, Second Card
}

// NewHoleCards builds hole cards from two distinct cards.
func NewHoleCards(a, b Card) (HoleCards, error) {
	if a == b {
		return HoleCards{}, fmt.Errorf("%w: duplicate hole card %s", ErrInvalidNotation, a)
	}
	return HoleCards{First: a, Second: b}, nil
}

// ParseHoleCards parses two run-on cards like "AsKh".
func ParseHoleCards(s string) (HoleCards, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return HoleCards{}, err
	}
	if len(cards) != 2 {
		return HoleCards{}, fmt.Errorf("%w: hole cards need exactly two cards, got %d", ErrInvalidNotation, len(cards))
	}
	return NewHoleCards(cards[0], cards[1])
}

// Cards returns the hole cards as a slice.
func (h HoleCards) Cards() []Card {
	return []Card{h.First, h.Second}
}

// Contains reports whether either hole card equals c.
func (h HoleCards) Contains(c Card) bool {
	return h.First == c || h.Second == c
}

// String returns run-on card notation with the higher rank first.
func (h HoleCards) String() string {
	a, b := h.First, h.Second
	if b.Rank > a.Rank {
		a, b = b, a
	}
	return a.String() + b.String()
}

// Class returns the starting-hand category of the hole cards.
func (h HoleCards) Class() Class {
	hi, lo := h.First.Rank, h.Second.Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	return Class{High: hi, Low: lo, Suited: hi != lo && h.First.Suit == h.Second.Suit}
}

// Class is a canonical starting-hand category such as AKs, QJo or TT.
// Pairs are never suited.
type Class struct {
	High   Rank
	Low    Rank
	Suited bool
}

// IsPair reports whether the class is a pocket pair.
func (c Class) IsPair() bool {
	return c.High == c.Low
}

// String returns canonical notation: uppercase ranks high-to-low with an
// "s"/"o" suffix for non-pairs.
func (c Class) String() string {
	if c.IsPair() {
		return c.High.String() + c.Low.String()
	}
	suffix := "o"
	if c.Suited {
		suffix = "s"
	}
	return c.High.String() + c.Low.String() + suffix
}

// ParseClass parses starting-hand notation such as "AKs", "qjo" or "TT".
// Input is case-insensitive; rank order is normalized high-to-low. A bare
// two-rank notation for a non-pair (e.g. "AK") is rejected since it names
// a group of classes, not one.
func ParseClass(s string) (Class, error) {
	if len(s) < 2 || len(s) > 3 {
		return Class{}, fmt.Errorf("%w: class %q must be 2-3 characters", ErrInvalidNotation, s)
	}

	hi, err := parseRankChar(s[0])
	if err != nil {
		return Class{}, err
	}
	lo, err := parseRankChar(s[1])
	if err != nil {
		return Class{}, err
	}
	if lo > hi {
		hi, lo = lo, hi
	}

	if hi == lo {
		if len(s) == 3 {
			return Class{}, fmt.Errorf("%w: pair %q cannot carry a suited modifier", ErrInvalidNotation, s)
		}
		return Class{High: hi, Low: lo}, nil
	}

	if len(s) != 3 {
		return Class{}, fmt.Errorf("%w: %q needs an s/o suffix", ErrInvalidNotation, s)
	}
	switch s[2] {
	case 's', 'S':
		return Class{High: hi, Low: lo, Suited: true}, nil
	case 'o', 'O':
		return Class{High: hi, Low: lo, Suited: false}, nil
	default:
		return Class{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidNotation, string(s[2]))
	}
}

// Combos expands the class into its concrete hole-card combinations:
// 6 for a pair, 4 suited, 12 offsuit.
func (c Class) Combos() []HoleCards {
	switch {
	case c.IsPair():
		combos := make([]HoleCards, 0, 6)
		for s1 := Clubs; s1 <= Spades; s1++ {
			for s2 := s1 + 1; s2 <= Spades; s2++ {
				combos = append(combos, HoleCards{
					First:  NewCard(c.High, s1),
					Second: NewCard(c.High, s2),
				})
			}
		}
		return combos
	case c.Suited:
		combos := make([]HoleCards, 0, 4)
		for s := Clubs; s <= Spades; s++ {
			combos = append(combos, HoleCards{
				First:  NewCard(c.High, s),
				Second: NewCard(c.Low, s),
			})
		}
		return combos
	default:
		combos := make([]HoleCards, 0, 12)
		for s1 := Clubs; s1 <= Spades; s1++ {
			for s2 := Clubs; s2 <= Spades; s2++ {
				if s1 == s2 {
					continue
				}
				combos = append(combos, HoleCards{
					First:  NewCard(c.High, s1),
					Second: NewCard(c.Low, s2),
				})
			}
		}
		return combos
	}
}
