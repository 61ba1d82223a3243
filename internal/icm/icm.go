// Package icm converts tournament chip stacks into dollar-equivalent equity
// under a payout structure, using the Malmuth-Harville model for small
// fields and a proportional approximation for large ones.
package icm

import (
	"errors"
	"fmt"
)

// maxExactPlayers is the field size cutoff for the exact recursion. The
// recursion is exponential in the field, so larger fields take the
// proportional path.
const maxExactPlayers = 7

// ErrInvalidField reports a stack or payout vector the model cannot price.
var ErrInvalidField = errors.New("invalid icm field")

// Result is the priced outcome for one stack.
type Result struct {
	// DollarEV is the expected prize value of the subject's stack.
	DollarEV float64

	// FinishProbs[k] is the probability of finishing in position k, for
	// the min(players, payouts) positions that pay. The probabilities sum
	// to at most 1; the remainder is unpaid finishes.
	FinishProbs []float64

	// Approximate is true when the field exceeded the exact-model cutoff
	// and a proportional estimate was used instead of true ICM.
	Approximate bool
}

// Calculator prices tournament stacks. It holds no state between calls and
// is safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Equity returns the subject's tournament equity under the given payouts.
// Payouts must be in descending finish order. Fields above maxExactPlayers
// are priced proportionally and flagged Approximate.
func (c *Calculator) Equity(stacks []float64, payouts []float64, subject int) (Result, error) {
	if err := validateField(stacks, payouts, subject); err != nil {
		return Result{}, err
	}

	if len(stacks) > maxExactPlayers {
		return c.approximate(stacks, payouts, subject), nil
	}
	return c.exact(stacks, payouts, subject), nil
}

func validateField(stacks []float64, payouts []float64, subject int) error {
	if len(stacks) == 0 {
		return fmt.Errorf("%w: no stacks", ErrInvalidField)
	}
	if len(payouts) == 0 {
		return fmt.Errorf("%w: no payouts", ErrInvalidField)
	}
	if subject < 0 || subject >= len(stacks) {
		return fmt.Errorf("%w: subject %d out of range for %d stacks", ErrInvalidField, subject, len(stacks))
	}
	total := 0.0
	for i, s := range stacks {
		if s < 0 {
			return fmt.Errorf("%w: negative stack at index %d", ErrInvalidField, i)
		}
		total += s
	}
	if total == 0 {
		return fmt.Errorf("%w: all stacks are zero", ErrInvalidField)
	}
	return nil
}

// exact runs the Malmuth-Harville recursion. finishProb is memoized on
// (eliminated-player bitmask, position); the subject is fixed for the call
// so it stays out of the key.
func (c *Calculator) exact(stacks []float64, payouts []float64, subject int) Result {
	positions := len(payouts)
	if positions > len(stacks) {
		positions = len(stacks)
	}

	run := &exactRun{
		stacks:  normalize(stacks),
		subject: subject,
		memo:    make(map[memoKey]float64),
	}

	probs := make([]float64, positions)
	ev := 0.0
	for pos := 0; pos < positions; pos++ {
		p := run.finishProb(0, pos)
		probs[pos] = p
		ev += p * payouts[pos]
	}
	return Result{DollarEV: ev, FinishProbs: probs}
}

type memoKey struct {
	removed  uint32
	position int
}

type exactRun struct {
	stacks  []float64
	subject int
	memo    map[memoKey]float64
}

// finishProb returns the probability that the subject finishes at position
// among the players not in the removed mask. Position 0 is first place.
func (r *exactRun) finishProb(removed uint32, position int) float64 {
	key := memoKey{removed: removed, position: position}
	if p, ok := r.memo[key]; ok {
		return p
	}

	remaining := 0.0
	for i, s := range r.stacks {
		if removed&(1<<i) == 0 {
			remaining += s
		}
	}

	var prob float64
	if position == 0 {
		prob = r.stacks[r.subject] / remaining
	} else {
		// Condition on each other player taking the next-better finish.
		for i, s := range r.stacks {
			if i == r.subject || removed&(1<<i) != 0 {
				continue
			}
			rest := remaining - s
			if rest <= 0 {
				continue
			}
			prob += (s / remaining) * r.finishProb(removed|1<<i, position-1)
		}
	}

	r.memo[key] = prob
	return prob
}

// approximate prices a large field as stack fraction of the prize pool. It
// is a simplification of ICM, not the model itself.
func (c *Calculator) approximate(stacks []float64, payouts []float64, subject int) Result {
	fracs := normalize(stacks)
	pool := 0.0
	for _, p := range payouts {
		pool += p
	}

	// No per-position breakdown exists on this path; the estimate is a
	// straight stack share of the pool.
	return Result{
		DollarEV:    fracs[subject] * pool,
		Approximate: true,
	}
}

func normalize(stacks []float64) []float64 {
	total := 0.0
	for _, s := range stacks {
		total += s
	}
	out := make([]float64, len(stacks))
	for i, s := range stacks {
		out[i] = s / total
	}
	return out
}

// CallingAdjustment returns the equity edge above 50% the hero needs for an
// all-in call against the villain to break even in dollar terms. A return
// of 0.5 means the call is never profitable.
func (c *Calculator) CallingAdjustment(stacks []float64, payouts []float64, hero, villain int) (float64, error) {
	if err := validateField(stacks, payouts, hero); err != nil {
		return 0, err
	}
	if villain < 0 || villain >= len(stacks) || villain == hero {
		return 0, fmt.Errorf("%w: villain index %d", ErrInvalidField, villain)
	}

	current, err := c.Equity(stacks, payouts, hero)
	if err != nil {
		return 0, err
	}

	risked := stacks[hero]
	if stacks[villain] < risked {
		risked = stacks[villain]
	}

	// Win branch: hero takes the effective stack from the villain.
	winStacks := append([]float64(nil), stacks...)
	winStacks[hero] += risked
	winStacks[villain] -= risked
	winHero := hero
	if winStacks[villain] <= 0 {
		winStacks = append(winStacks[:villain], winStacks[villain+1:]...)
		if villain < hero {
			winHero--
		}
	}
	win, err := c.Equity(winStacks, payouts, winHero)
	if err != nil {
		return 0, err
	}

	// Lose branch: hero ships the effective stack, possibly busting.
	loseEV := 0.0
	loseStacks := append([]float64(nil), stacks...)
	loseStacks[hero] -= risked
	loseStacks[villain] += risked
	if loseStacks[hero] > 0 {
		lose, err := c.Equity(loseStacks, payouts, hero)
		if err != nil {
			return 0, err
		}
		loseEV = lose.DollarEV
	}

	diff := win.DollarEV - loseEV
	if diff <= 0 {
		return 0.5, nil
	}
	required := (current.DollarEV - loseEV) / diff
	edge := required - 0.5
	if edge < 0 {
		edge = 0
	}
	return edge, nil
}

// Pressure returns a range-tightening multiplier for the subject: below 1
// means tighten, with medium stacks squeezed hardest and short stacks freed
// to gamble. Returns 1 when the payout structure is flat.
func (c *Calculator) Pressure(stacks []float64, payouts []float64, subject int) float64 {
	if len(stacks) == 0 || subject < 0 || subject >= len(stacks) {
		return 1.0
	}
	if len(payouts) < 2 {
		return 1.0
	}

	total := 0.0
	for _, s := range stacks {
		total += s
	}
	if total == 0 {
		return 1.0
	}
	avg := total / float64(len(stacks))
	rel := stacks[subject] / avg

	rank := 0
	for i, s := range stacks {
		if i == subject {
			continue
		}
		if s > stacks[subject] {
			rank++
		}
	}

	n := len(stacks)
	var pressure float64
	switch {
	case rank == n-1:
		pressure = 0.7 // short stack, gamble is forced anyway
	case rank < n/3:
		pressure = 0.9 // big stack can lean on the field
	default:
		pressure = 0.75 // medium stack has the most to lose
	}

	if rel < 0.5 {
		pressure = min(pressure+0.2, 1.0)
	} else if rel > 2.0 {
		pressure = max(pressure-0.1, 0.6)
	}
	return pressure
}
