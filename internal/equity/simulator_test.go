package equity

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/randutil"
	"github.com/lox/holdem-advisor/poker"
)

func hole(t *testing.T, s string) poker.HoleCards {
	t.Helper()
	h, err := poker.ParseHoleCards(s)
	require.NoError(t, err)
	return h
}

func TestRunRejectsDegenerateParams(t *testing.T) {
	sim := NewSimulator()
	hero := hole(t, "AsKh")

	_, err := sim.Run(Params{Hero: hero, Opponents: 1, Trials: 0}, randutil.New(1))
	assert.ErrorIs(t, err, ErrDegenerateSimulation)

	_, err = sim.Run(Params{
		Hero:      hero,
		Board:     poker.MustParseCards("2c3c4c5c6c7c"),
		Opponents: 1,
		Trials:    100,
	}, randutil.New(1))
	assert.ErrorIs(t, err, ErrDegenerateSimulation)

	// 23 opponents need 46 cards plus 5 board; only 50 remain.
	_, err = sim.Run(Params{Hero: hero, Opponents: 23, Trials: 100}, randutil.New(1))
	assert.ErrorIs(t, err, ErrDegenerateSimulation)
}

func TestRunHeadsUpAcesFromCache(t *testing.T) {
	sim := NewSimulator()

	result, err := sim.Run(Params{
		Hero:      hole(t, "AsAh"),
		Opponents: 1,
		Trials:    1000,
	}, randutil.New(1))
	require.NoError(t, err)

	assert.True(t, result.Cached)
	assert.InDelta(t, 0.852, result.Equity(), 0.001)
}

func TestRunFreshSimulationAccuracy(t *testing.T) {
	if testing.Short() {
		t.Skip("simulation accuracy test")
	}
	sim := NewSimulator()

	// 72o is not precomputed, so this exercises the simulation path.
	result, err := sim.Run(Params{
		Hero:      hole(t, "7s2h"),
		Opponents: 1,
		Trials:    50000,
	}, randutil.New(7))
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Equal(t, 50000, result.Trials)
	assert.InDelta(t, 0.35, result.Equity(), 0.02, "72o heads-up runs about 35%")
	assert.InDelta(t, 1.0, result.Win+result.Tie+result.Lose, 1e-9)

	// Second call must come back from the memo.
	again, err := sim.Run(Params{
		Hero:      hole(t, "7d2c"),
		Opponents: 1,
		Trials:    50000,
	}, randutil.New(99))
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.InDelta(t, result.Equity(), again.Equity(), 1e-9)
}

func TestRunDominatedMatchup(t *testing.T) {
	sim := NewSimulator()

	// AKs against a KQ-only range is heavily favoured.
	r, err := poker.ParseRange("KQs,KQo")
	require.NoError(t, err)

	result, err := sim.Run(Params{
		Hero:         hole(t, "AsKs"),
		Opponents:    1,
		VillainRange: r,
		Trials:       20000,
	}, randutil.New(3))
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Greater(t, result.Equity(), 0.65)
	assert.InDelta(t, 1.0, result.Win+result.Tie+result.Lose, 1e-9)
}

func TestRunBoardLockedOutcome(t *testing.T) {
	sim := NewSimulator()

	// Board plays: quad aces with a king on board, both players chop.
	result, err := sim.Run(Params{
		Hero:      hole(t, "2s3h"),
		Board:     poker.MustParseCards("AsAhAdAcKs"),
		Opponents: 1,
		Trials:    500,
	}, randutil.New(11))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Tie, 1e-9, "board quads with king kicker always chops")
}

func TestRunMoreOpponentsLowersEquity(t *testing.T) {
	sim := NewSimulator()
	rng := randutil.New(5)

	headsUp, err := sim.Run(Params{Hero: hole(t, "QdQc"), Opponents: 1, Trials: 20000}, rng)
	require.NoError(t, err)

	fourWay, err := sim.Run(Params{Hero: hole(t, "QdQc"), Opponents: 4, Trials: 20000}, rng)
	require.NoError(t, err)

	assert.Greater(t, headsUp.Equity(), fourWay.Equity(),
		"equity must fall as opponents are added")
}

func TestRunSequentialAndParallelAgree(t *testing.T) {
	hero := hole(t, "9h8h")
	board := poker.MustParseCards("7h6s2d")

	sequential := NewSimulator(WithWorkers(1))
	parallel := NewSimulator(WithWorkers(4))

	a, err := sequential.Run(Params{Hero: hero, Board: board, Opponents: 1, Trials: 30000}, randutil.New(21))
	require.NoError(t, err)
	b, err := parallel.Run(Params{Hero: hero, Board: board, Opponents: 1, Trials: 30000}, randutil.New(22))
	require.NoError(t, err)

	assert.InDelta(t, a.Equity(), b.Equity(), 0.02)
}

func TestRunElapsedUsesInjectedClock(t *testing.T) {
	mock := quartz.NewMock(t)
	sim := NewSimulator(WithClock(mock), WithWorkers(1))

	result, err := sim.Run(Params{
		Hero:      hole(t, "7s2h"),
		Board:     poker.MustParseCards("AcKdQh"),
		Opponents: 1,
		Trials:    50,
	}, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), result.Elapsed)
}

func TestConfidenceIntervalShrinksWithTrials(t *testing.T) {
	small := Result{Win: 0.5, Lose: 0.5, Trials: 100}
	large := Result{Win: 0.5, Lose: 0.5, Trials: 10000}

	sLo, sHi := small.ConfidenceInterval()
	lLo, lHi := large.ConfidenceInterval()
	assert.Greater(t, sHi-sLo, lHi-lLo)

	zero := Result{}
	lo, hi := zero.ConfidenceInterval()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
