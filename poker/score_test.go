package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		kickers  []Rank
	}{
		{
			name:     "royal flush",
			cards:    "AsKsQsJsTs",
			category: StraightFlush,
			kickers:  []Rank{Ace},
		},
		{
			name:     "wheel straight flush",
			cards:    "As2s3s4s5s",
			category: StraightFlush,
			kickers:  []Rank{Five},
		},
		{
			name:     "four of a kind",
			cards:    "9c9d9h9sKc",
			category: FourOfAKind,
			kickers:  []Rank{Nine, King},
		},
		{
			name:     "full house",
			cards:    "QcQdQh8s8c",
			category: FullHouse,
			kickers:  []Rank{Queen, Eight},
		},
		{
			name:     "flush",
			cards:    "Ad9d7d4d2d",
			category: Flush,
			kickers:  []Rank{Ace, Nine, Seven, Four, Two},
		},
		{
			name:     "broadway straight",
			cards:    "AcKdQhJsTc",
			category: Straight,
			kickers:  []Rank{Ace},
		},
		{
			name:     "wheel straight",
			cards:    "Ac2d3h4s5c",
			category: Straight,
			kickers:  []Rank{Five},
		},
		{
			name:     "three of a kind",
			cards:    "7c7d7hKsQc",
			category: ThreeOfAKind,
			kickers:  []Rank{Seven, King, Queen},
		},
		{
			name:     "two pair",
			cards:    "JcJd4h4sAc",
			category: TwoPair,
			kickers:  []Rank{Jack, Four, Ace},
		},
		{
			name:     "one pair",
			cards:    "TcTd8h6s3c",
			category: OnePair,
			kickers:  []Rank{Ten, Eight, Six, Three},
		},
		{
			name:     "high card",
			cards:    "AcJd9h6s3c",
			category: HighCard,
			kickers:  []Rank{Ace, Jack, Nine, Six, Three},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Evaluate(MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, score.Category)
			assert.Equal(t, tt.kickers, score.Kickers)
		})
	}
}

func TestEvaluateBestOfSeven(t *testing.T) {
	// Board pairs the deuce but the spade flush is the best five.
	score, err := Evaluate(MustParseCards("As2s2dKs7s4s9c"))
	require.NoError(t, err)
	assert.Equal(t, Flush, score.Category)
	assert.Equal(t, []Rank{Ace, King, Seven, Four, Two}, score.Kickers)
}

func TestEvaluateInsufficientCards(t *testing.T) {
	_, err := Evaluate(MustParseCards("AsKs"))
	assert.ErrorIs(t, err, ErrInsufficientCards)

	_, err = Evaluate(nil)
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestEvaluateOrderInvariant(t *testing.T) {
	cards := MustParseCards("As2s3s4s5s9c9d")
	want, err := Evaluate(cards)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 50; i++ {
		shuffled := append([]Card(nil), cards...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Evaluate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Compare(want), "order %v changed the score", shuffled)
	}
}

func TestScoreOrdering(t *testing.T) {
	wheel, err := Evaluate(MustParseCards("Ac2d3h4s5c"))
	require.NoError(t, err)
	sixHigh, err := Evaluate(MustParseCards("2c3d4h5s6c"))
	require.NoError(t, err)
	assert.Equal(t, -1, wheel.Compare(sixHigh), "wheel must lose to a six-high straight")

	quads, err := Evaluate(MustParseCards("9c9d9h9sKc"))
	require.NoError(t, err)
	steelWheel, err := Evaluate(MustParseCards("As2s3s4s5s"))
	require.NoError(t, err)
	assert.Equal(t, 1, steelWheel.Compare(quads), "straight flush must beat quads")
}

func TestScoreSplitPot(t *testing.T) {
	a, err := Evaluate(MustParseCards("AcKd9h6s3c"))
	require.NoError(t, err)
	b, err := Evaluate(MustParseCards("AdKh9s6c3d"))
	require.NoError(t, err)
	assert.Equal(t, 0, a.Compare(b))
}
