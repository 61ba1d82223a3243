package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "As", want: "As"},
		{in: "td", want: "Td"},
		{in: "9H", want: "9h"},
		{in: "2c", want: "2c"},
		{in: "1s", err: true},
		{in: "Ax", err: true},
		{in: "A", err: true},
		{in: "Asd", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			card, err := ParseCard(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidNotation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, card.String())
		})
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKs Qs")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "AsKsQs", FormatCards(cards))

	_, err = ParseCards("AsA")
	assert.ErrorIs(t, err, ErrInvalidNotation)

	_, err = ParseCards("AsAs")
	assert.ErrorIs(t, err, ErrInvalidNotation, "duplicates must be rejected")
}

func TestCardIndexUnique(t *testing.T) {
	seen := make(map[int]bool)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			idx := NewCard(rank, suit).Index()
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 52)
			assert.False(t, seen[idx], "index collision at %d", idx)
			seen[idx] = true
		}
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "AKs", want: "AKs"},
		{in: "aks", want: "AKs"},
		{in: "KAs", want: "AKs"}, // ranks normalize high-to-low
		{in: "QJo", want: "QJo"},
		{in: "TT", want: "TT"},
		{in: "AK", err: true}, // ambiguous without suffix
		{in: "TTs", err: true},
		{in: "AKx", err: true},
		{in: "A", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			class, err := ParseClass(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidNotation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, class.String())
		})
	}
}

func TestClassCombos(t *testing.T) {
	pair, _ := ParseClass("TT")
	assert.Len(t, pair.Combos(), 6)

	suited, _ := ParseClass("AKs")
	assert.Len(t, suited.Combos(), 4)

	offsuit, _ := ParseClass("AKo")
	assert.Len(t, offsuit.Combos(), 12)
}

func TestHoleCardsClass(t *testing.T) {
	h, err := ParseHoleCards("KhAh")
	require.NoError(t, err)
	assert.Equal(t, "AKs", h.Class().String())
	assert.Equal(t, "AhKh", h.String())

	pair, err := ParseHoleCards("7c7d")
	require.NoError(t, err)
	assert.Equal(t, "77", pair.Class().String())

	_, err = ParseHoleCards("AhAh")
	assert.ErrorIs(t, err, ErrInvalidNotation)
}
