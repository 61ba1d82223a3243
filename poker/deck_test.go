package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/randutil"
)

func TestNewDeckExcludesDeadCards(t *testing.T) {
	dead := MustParseCards("AsKh")
	deck := NewDeck(dead, randutil.New(1))

	assert.Equal(t, 50, deck.Remaining())
	for {
		card, ok := deck.DealOne()
		if !ok {
			break
		}
		for _, d := range dead {
			assert.NotEqual(t, d, card)
		}
	}
}

func TestDeckDealExhaustion(t *testing.T) {
	deck := NewDeck(nil, randutil.New(1))
	require.Equal(t, 52, deck.Remaining())

	dealt := deck.Deal(50)
	require.Len(t, dealt, 50)
	assert.Nil(t, deck.Deal(3), "deck cannot supply more cards than remain")
	assert.Equal(t, 2, deck.Remaining())
}

func TestDeckShuffleDeterministic(t *testing.T) {
	a := NewDeck(nil, randutil.New(42)).Deal(52)
	b := NewDeck(nil, randutil.New(42)).Deal(52)
	assert.Equal(t, a, b, "same seed must deal the same order")
}
