package equity

import (
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"sync"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-advisor/internal/randutil"
	"github.com/lox/holdem-advisor/poker"
)

// parallelThreshold is the trial count below which the worker pool costs
// more than it saves.
const parallelThreshold = 500

// maxSampleAttempts bounds rejection sampling when a villain range collides
// heavily with dead cards.
const maxSampleAttempts = 200

// Params describes one equity computation.
type Params struct {
	// Hero's hole cards.
	Hero poker.HoleCards

	// Board holds 0-5 community cards already dealt.
	Board []poker.Card

	// Opponents is the number of villains. Minimum 1.
	Opponents int

	// VillainRange restricts every villain's holding to the given range.
	// Nil means any two cards.
	VillainRange *poker.Range

	// Trials is the number of Monte Carlo trials. Must be positive.
	Trials int
}

// Simulator runs Monte Carlo equity estimates. It is safe for concurrent
// use; the only shared state is the read-mostly preflop cache.
type Simulator struct {
	clock   quartz.Clock
	workers int

	mu      sync.RWMutex
	preflop map[preflopKey]Result
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock substitutes the wall clock, for deterministic latency in tests.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// WithWorkers sets the worker pool size for parallel runs.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewSimulator creates a simulator with the preflop cache seeded from the
// precomputed heads-up table.
func NewSimulator(opts ...Option) *Simulator {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8 // diminishing returns past this
	}
	s := &Simulator{
		clock:   quartz.NewReal(),
		workers: workers,
		preflop: seededPreflopCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run estimates hero equity for the given parameters. Trial order never
// affects the outcome; the aggregation is a commutative sum.
func (s *Simulator) Run(p Params, rng *rand.Rand) (Result, error) {
	if p.Trials <= 0 {
		return Result{}, fmt.Errorf("%w: %d trials", ErrDegenerateSimulation, p.Trials)
	}
	if p.Opponents < 1 {
		p.Opponents = 1
	}
	if len(p.Board) > 5 {
		return Result{}, fmt.Errorf("%w: board has %d cards", ErrDegenerateSimulation, len(p.Board))
	}

	// Preflop against unrestricted opponents depends only on the hero's
	// starting-hand class, so those results are memoized.
	cacheable := len(p.Board) == 0 && p.VillainRange == nil
	key := preflopKey{class: p.Hero.Class().String(), opponents: p.Opponents}
	if cacheable {
		if cached, ok := s.lookupPreflop(key); ok {
			return cached, nil
		}
	}

	start := s.clock.Now()

	dead := append(p.Hero.Cards(), p.Board...)
	used := poker.NewCardSet(dead)
	var available []poker.Card
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			card := poker.NewCard(rank, suit)
			if !used.Contains(card) {
				available = append(available, card)
			}
		}
	}

	needed := 2*p.Opponents + (5 - len(p.Board))
	if len(available) < needed {
		return Result{}, fmt.Errorf("%w: need %d cards, %d left in deck", ErrDegenerateSimulation, needed, len(available))
	}

	var tally trialTally
	if p.Trials >= parallelThreshold && s.workers > 1 {
		tally = s.runParallel(p, used, available, rng)
	} else {
		tally = runTrials(p, used, available, p.Trials, rng)
	}

	if tally.valid == 0 {
		return Result{}, fmt.Errorf("%w: no trial could be completed", ErrDegenerateSimulation)
	}

	n := float64(tally.valid)
	result := Result{
		Win:     float64(tally.wins) / n,
		Tie:     float64(tally.ties) / n,
		Lose:    float64(tally.valid-tally.wins-tally.ties) / n,
		Trials:  tally.valid,
		Elapsed: s.clock.Now().Sub(start),
	}
	if cacheable {
		s.storePreflop(key, result)
	}
	return result, nil
}

// trialTally is a write-once accumulator combined by summation.
type trialTally struct {
	wins  int
	ties  int
	valid int
}

func (t *trialTally) add(other trialTally) {
	t.wins += other.wins
	t.ties += other.ties
	t.valid += other.valid
}

// runParallel fans trials out over the worker pool. Each worker gets an
// independent RNG derived from the caller's so runs stay reproducible.
func (s *Simulator) runParallel(p Params, used poker.CardSet, available []poker.Card, rng *rand.Rand) trialTally {
	perWorker := p.Trials / s.workers
	remainder := p.Trials % s.workers

	results := make([]trialTally, s.workers)
	var g errgroup.Group
	for w := 0; w < s.workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		seed := rng.Int64()
		g.Go(func() error {
			results[w] = runTrials(p, used, available, trials, randutil.New(seed))
			return nil
		})
	}
	// Workers only write their own slot and never fail.
	_ = g.Wait()

	var total trialTally
	for _, r := range results {
		total.add(r)
	}
	return total
}

func runTrials(p Params, baseUsed poker.CardSet, available []poker.Card, trials int, rng *rand.Rand) trialTally {
	var tally trialTally

	villains := make([]poker.HoleCards, p.Opponents)
	board := make([]poker.Card, 5)
	evalCards := make([]poker.Card, 7)

	var rangeHands []poker.HoleCards
	if p.VillainRange != nil {
		rangeHands = p.VillainRange.Hands()
	}

	dead := append(p.Hero.Cards(), p.Board...)
	deck := poker.NewDeck(dead, rng)

	for trial := 0; trial < trials; trial++ {
		used := baseUsed

		ok := true
		for v := 0; v < p.Opponents; v++ {
			var hand poker.HoleCards
			if rangeHands != nil {
				hand, ok = sampleFromRange(rangeHands, used, rng)
			} else {
				hand, ok = sampleRandom(available, used, rng)
			}
			if !ok {
				break
			}
			used.Add(hand.First)
			used.Add(hand.Second)
			villains[v] = hand
		}
		if !ok {
			continue
		}

		// Complete the board from the cards still unused.
		deck.Shuffle()
		copy(board, p.Board)
		filled := len(p.Board)
		for filled < 5 {
			card, ok := deck.DealOne()
			if !ok {
				break
			}
			if used.Contains(card) {
				continue
			}
			board[filled] = card
			used.Add(card)
			filled++
		}
		if filled != 5 {
			continue
		}

		copy(evalCards[:2], p.Hero.Cards())
		copy(evalCards[2:], board)
		heroScore, err := poker.Evaluate(evalCards)
		if err != nil {
			continue
		}

		// Multiway rule: hero wins only by strictly beating every villain;
		// a single tie at the top turns the trial into a tie.
		won, tied := true, false
		for _, villain := range villains {
			copy(evalCards[:2], villain.Cards())
			villainScore, err := poker.Evaluate(evalCards)
			if err != nil {
				won = false
				break
			}
			switch heroScore.Compare(villainScore) {
			case -1:
				won = false
			case 0:
				tied = true
			}
			if !won {
				break
			}
		}

		if won && !tied {
			tally.wins++
		} else if won && tied {
			tally.ties++
		}
		tally.valid++
	}

	return tally
}

// sampleRandom draws two distinct unused cards uniformly from available.
func sampleRandom(available []poker.Card, used poker.CardSet, rng *rand.Rand) (poker.HoleCards, bool) {
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		i := rng.IntN(len(available))
		j := rng.IntN(len(available) - 1)
		if j >= i {
			j++
		}
		a, b := available[i], available[j]
		if used.Contains(a) || used.Contains(b) {
			continue
		}
		return poker.HoleCards{First: a, Second: b}, true
	}
	return poker.HoleCards{}, false
}

// sampleFromRange draws uniformly from the range expansion, rejecting
// combinations that collide with cards already in play.
func sampleFromRange(hands []poker.HoleCards, used poker.CardSet, rng *rand.Rand) (poker.HoleCards, bool) {
	if len(hands) == 0 {
		return poker.HoleCards{}, false
	}
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		hand := hands[rng.IntN(len(hands))]
		if used.Contains(hand.First) || used.Contains(hand.Second) {
			continue
		}
		return hand, true
	}
	return poker.HoleCards{}, false
}
