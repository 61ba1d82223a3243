package poker

import (
	"fmt"
	"sort"
	"strings"
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is the total strength of a five-card hand: a category plus an
// ordered kicker list for tie-breaking. Comparison is lexicographic over
// (category, kickers); equal scores split the pot.
type Score struct {
	Category Category
	Kickers  []Rank
}

// Compare returns 1 if s is stronger than other, -1 if weaker, 0 on a tie.
func (s Score) Compare(other Score) int {
	if s.Category != other.Category {
		if s.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(s.Kickers) && i < len(other.Kickers); i++ {
		if s.Kickers[i] != other.Kickers[i] {
			if s.Kickers[i] > other.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String renders the category with its deciding kickers.
func (s Score) String() string {
	parts := make([]string, len(s.Kickers))
	for i, k := range s.Kickers {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s [%s]", s.Category, strings.Join(parts, " "))
}

// Evaluate scores the best five-card hand available in 5-7 cards. With six
// or seven cards every C(n,5) subset is tried; 21 subsets at most, cheap
// enough that no shortcut can misrank.
func Evaluate(cards []Card) (Score, error) {
	switch {
	case len(cards) < 5:
		return Score{}, fmt.Errorf("%w: got %d, need at least 5", ErrInsufficientCards, len(cards))
	case len(cards) == 5:
		return evaluateFive(cards), nil
	case len(cards) > 7:
		return Score{}, fmt.Errorf("%w: got %d, at most 7 supported", ErrInvalidNotation, len(cards))
	}

	var best Score
	first := true
	subset := make([]Card, 5)
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						subset[0], subset[1], subset[2], subset[3], subset[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						score := evaluateFive(subset)
						if first || score.Compare(best) > 0 {
							best = score
							first = false
						}
					}
				}
			}
		}
	}
	return best, nil
}

// evaluateFive scores exactly five cards.
func evaluateFive(cards []Card) Score {
	ranks := make([]Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, straight := straightHighRank(ranks)

	counts := make(map[Rank]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	// Distinct ranks ordered by (count, rank) descending: the pattern of
	// counts identifies the category, the order gives the kickers.
	distinct := make([]Rank, 0, len(counts))
	for r := range counts {
		distinct = append(distinct, r)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return distinct[i] > distinct[j]
	})

	shape := make([]int, len(distinct))
	for i, r := range distinct {
		shape[i] = counts[r]
	}

	switch {
	case straight && flush:
		return Score{Category: StraightFlush, Kickers: []Rank{straightHigh}}
	case shapeIs(shape, 4, 1):
		return Score{Category: FourOfAKind, Kickers: distinct}
	case shapeIs(shape, 3, 2):
		return Score{Category: FullHouse, Kickers: distinct}
	case flush:
		return Score{Category: Flush, Kickers: ranks}
	case straight:
		return Score{Category: Straight, Kickers: []Rank{straightHigh}}
	case shapeIs(shape, 3, 1, 1):
		return Score{Category: ThreeOfAKind, Kickers: distinct}
	case shapeIs(shape, 2, 2, 1):
		return Score{Category: TwoPair, Kickers: distinct}
	case shapeIs(shape, 2, 1, 1, 1):
		return Score{Category: OnePair, Kickers: distinct}
	default:
		return Score{Category: HighCard, Kickers: ranks}
	}
}

// straightHighRank detects a straight in five descending ranks. The wheel
// (A-5-4-3-2) counts as a five-high straight: its high rank is Five, not Ace.
func straightHighRank(desc []Rank) (Rank, bool) {
	run := true
	for i := 1; i < 5; i++ {
		if desc[i] != desc[0]-Rank(i) {
			run = false
			break
		}
	}
	if run {
		return desc[0], true
	}
	if desc[0] == Ace && desc[1] == Five && desc[2] == Four && desc[3] == Three && desc[4] == Two {
		return Five, true
	}
	return 0, false
}

func shapeIs(shape []int, want ...int) bool {
	if len(shape) != len(want) {
		return false
	}
	for i, v := range want {
		if shape[i] != v {
			return false
		}
	}
	return true
}
