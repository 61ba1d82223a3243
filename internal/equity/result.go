// Package equity estimates win/tie/lose probabilities for a hand against
// one or more opponents with Monte Carlo simulation.
package equity

import (
	"errors"
	"math"
	"time"
)

// ErrDegenerateSimulation reports a simulation that cannot produce a
// meaningful result: zero trials, or a deck that cannot supply the cards
// the trial needs.
var ErrDegenerateSimulation = errors.New("degenerate simulation")

// Result holds the outcome of an equity computation. Win, Tie and Lose are
// fractions of valid trials and sum to 1 within floating tolerance.
type Result struct {
	Win  float64
	Tie  float64
	Lose float64

	// Trials is the number of valid trials aggregated.
	Trials int

	// Elapsed is the wall time the computation took.
	Elapsed time.Duration

	// Cached is true when the result came from the preflop cache rather
	// than a fresh simulation.
	Cached bool
}

// Equity returns win + tie/2, the probability-weighted pot share.
func (r Result) Equity() float64 {
	return r.Win + 0.5*r.Tie
}

// ConfidenceInterval returns the 95% confidence interval for the equity
// estimate, clamped to [0, 1].
func (r Result) ConfidenceInterval() (lower, upper float64) {
	if r.Trials == 0 {
		return 0, 0
	}
	eq := r.Equity()
	se := math.Sqrt(eq * (1.0 - eq) / float64(r.Trials))
	margin := 1.96 * se
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}
