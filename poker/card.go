// Package poker provides the card, hand and range model shared by the
// advisor engines, plus a brute-force hand strength evaluator.
package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the lowercase suit letter used in card notation.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the uppercase rank character used in card notation.
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + int(r)))
		}
		return "?"
	}
}

// Card is an immutable playing card. Equality is by (rank, suit).
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character card notation (e.g. "As", "Td").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Index returns the card's position in a 0-51 enumeration.
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// ParseCard parses a single two-character card like "As" or "td".
// Rank and suit characters are case-insensitive.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: card %q must be two characters", ErrInvalidNotation, s)
	}
	rank, err := parseRankChar(s[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuitChar(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses run-on card notation like "AsKsQs" or "Td 7s 8h".
// Spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd card string length %d", ErrInvalidNotation, len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	seen := make(map[Card]bool, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i/2, err)
		}
		if seen[card] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidNotation, card)
		}
		seen[card] = true
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error. For tests and static data.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("parse cards %q: %v", s, err))
	}
	return cards
}

// FormatCards renders cards as run-on notation ("AsKh").
func FormatCards(cards []Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func parseRankChar(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9', '8', '7', '6', '5', '4', '3', '2':
		return Rank(c - '0'), nil
	default:
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidNotation, string(c))
	}
}

func parseSuitChar(c byte) (Suit, error) {
	switch c {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidNotation, string(c))
	}
}
