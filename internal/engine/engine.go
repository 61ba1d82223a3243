// Package engine turns a table snapshot into an action recommendation by
// combining chart lookups, equity estimates and ICM pressure.
package engine

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/internal/equity"
	"github.com/lox/holdem-advisor/internal/icm"
	"github.com/lox/holdem-advisor/internal/randutil"
	"github.com/lox/holdem-advisor/poker"
)

const (
	// pushFoldStackBB is the effective stack at or below which preflop
	// play collapses to push or fold.
	pushFoldStackBB = 15.0

	// defaultHandStrength stands in for hands missing from the ranking
	// table; roughly a playable-but-weak holding.
	defaultHandStrength = 0.30

	// defaultThreshold is the conservative strength requirement used when
	// a chart lookup comes back empty.
	defaultThreshold = 0.70

	// Tightening applied per opponent left to act, and for a raise in
	// front, before comparing hand strength to the push threshold.
	perPlayerBehindTightening = 0.03
	facingRaiseTightening     = 0.15
	maxPushThreshold          = 0.98

	// icmTighteningScale converts ICM pressure into extra threshold.
	icmTighteningScale = 0.30

	// Strength cutoffs when facing a 3-bet.
	fourBetValueStrength = 0.94
	threeBetCallStrength = 0.88
	blockerBluffStrength = 0.70

	equityNoteTrials = 2000
)

// blockerBluffClasses are the suited aces 4-bet as bluffs for their ace
// blocker when facing a 3-bet.
var blockerBluffClasses = map[string]bool{"A5s": true, "A4s": true, "A3s": true}

// Engine produces recommendations. It only reads shared chart state, so a
// single Engine serves concurrent callers.
type Engine struct {
	charts *charts.Store
	equity *equity.Simulator
	icm    *icm.Calculator
	log    *log.Logger
}

// New creates an engine over the given chart store and calculators.
func New(store *charts.Store, sim *equity.Simulator, calc *icm.Calculator, logger *log.Logger) *Engine {
	return &Engine{charts: store, equity: sim, icm: calc, log: logger}
}

// Advise recommends an action for the snapshot. Missing chart data never
// fails the call; the recommendation falls back to a conservative default
// and says so.
func (e *Engine) Advise(state TableState) (Recommendation, error) {
	if err := state.validate(); err != nil {
		return Recommendation{}, err
	}
	if _, ok := state.Hero(); !ok || state.HeroCards == "" {
		return Recommendation{}, ErrNoHeroHand
	}
	hole, err := poker.ParseHoleCards(state.HeroCards)
	if err != nil {
		return Recommendation{}, fmt.Errorf("hero cards: %w", err)
	}

	class := hole.Class()
	if state.Street != Preflop {
		return e.postflop(state, class), nil
	}
	if state.EffectiveStackBB() <= pushFoldStackBB {
		return e.pushFold(state, hole, class), nil
	}
	return e.preflop(state, class), nil
}

// handStrength looks up the 0-1 ranking, falling back for unranked trash.
func (e *Engine) handStrength(class poker.Class) (float64, bool) {
	if strength, ok := e.charts.HandStrength(class); ok {
		return strength, true
	}
	return defaultHandStrength, false
}

func (e *Engine) heroPosition(state TableState) charts.Position {
	hero, _ := state.Hero()
	if hero.Position.Valid() {
		return hero.Position
	}
	return charts.UTG
}

// pushFold runs the short-stack chart: shove when hand strength clears the
// position/stack threshold, tightened for action in front, players behind
// and ICM pressure.
func (e *Engine) pushFold(state TableState, hole poker.HoleCards, class poker.Class) Recommendation {
	pos := e.heroPosition(state)
	stackBB := state.HeroStackBB()
	strength, ranked := e.handStrength(class)

	rec := Recommendation{
		Hand:          class.String(),
		Position:      string(pos),
		StackBB:       stackBB,
		Street:        Preflop,
		PushFold:      true,
		RangeStrength: strength,
	}

	if shoveBB, facing := state.FacingShove(); facing {
		return e.callShove(state, class, rec, shoveBB, ranked)
	}

	threshold, bucket, ok := e.charts.PushThreshold(pos, stackBB)
	if !ok {
		e.log.Warn("no push threshold, using conservative default",
			"position", pos, "stack_bb", stackBB)
		threshold, bucket = defaultThreshold, 0
		rec.Fallback = true
	}
	if !ranked {
		rec.Fallback = true
		rec.Notes = append(rec.Notes, fmt.Sprintf("%s unranked, assuming %.2f strength", class, defaultHandStrength))
	}

	threshold += float64(state.PlayersBehind()) * perPlayerBehindTightening
	if state.FacingRaise() {
		threshold += facingRaiseTightening
		rec.Notes = append(rec.Notes, "facing a raise: shove range tightened")
	}

	if len(state.Payouts) >= 2 {
		pressure := e.icm.Pressure(state.stacks(), state.Payouts, state.heroIndex())
		threshold += (1 - pressure) * icmTighteningScale
		rec.ICMAdjusted = true
		rec.Notes = append(rec.Notes, fmt.Sprintf("ICM pressure %.2f applied", pressure))
	}
	threshold = min(threshold, maxPushThreshold)

	rec.InRange = strength >= threshold
	if rec.InRange {
		rec.Primary = Action{
			Type:      ActionAllIn,
			Size:      stackBB,
			Frequency: 1.0,
			Reason:    fmt.Sprintf("shove %s from %s at %.1fBB", class, pos, stackBB),
		}
		rec.Alternatives = []Action{{
			Type:   ActionFold,
			Reason: "folding surrenders shove equity",
		}}
	} else {
		rec.Primary = Action{
			Type:      ActionFold,
			Frequency: 1.0,
			Reason:    fmt.Sprintf("%s below the %s shove threshold at %.1fBB", class, pos, stackBB),
		}
	}

	rec.Notes = append(rec.Notes, fmt.Sprintf("push/fold mode at %.1fBB effective", state.EffectiveStackBB()))
	if pushRange := e.chartRangePercent(pos, stackBB); pushRange > 0 {
		rec.Notes = append(rec.Notes, fmt.Sprintf("%dBB %s shove range: %.1f%% of hands", bucket, pos, pushRange))
	}
	if note, ok := e.headsUpEquityNote(hole); ok {
		rec.Notes = append(rec.Notes, note)
	}
	return rec
}

// callShove prices calling an all-in in front: the call chart is bucketed by
// the shove size, and with payouts on the line the ICM break-even edge is
// added on top.
func (e *Engine) callShove(state TableState, class poker.Class, rec Recommendation, shoveBB float64, ranked bool) Recommendation {
	pos := charts.Position(rec.Position)

	threshold, bucket, ok := e.charts.CallThreshold(pos, shoveBB)
	if !ok {
		e.log.Warn("no call threshold, using conservative default",
			"position", pos, "shove_bb", shoveBB)
		threshold, bucket = defaultThreshold, 0
		rec.Fallback = true
	}
	if !ranked {
		rec.Fallback = true
		rec.Notes = append(rec.Notes, fmt.Sprintf("%s unranked, assuming %.2f strength", class, defaultHandStrength))
	}

	if len(state.Payouts) >= 2 {
		edge, err := e.icm.CallingAdjustment(state.stacks(), state.Payouts, state.heroIndex(), state.shoverIndex())
		if err != nil {
			e.log.Warn("icm calling adjustment failed", "err", err)
		} else {
			threshold += edge
			rec.ICMAdjusted = true
			rec.Notes = append(rec.Notes, fmt.Sprintf("ICM demands %.1f%% extra equity to call", edge*100))
		}
	}
	threshold = min(threshold, maxPushThreshold)

	rec.InRange = rec.RangeStrength >= threshold
	if rec.InRange {
		rec.Primary = Action{
			Type:      ActionCall,
			Frequency: 1.0,
			Reason:    fmt.Sprintf("call the %.1fBB shove with %s", shoveBB, class),
		}
		rec.Alternatives = []Action{{
			Type:   ActionFold,
			Reason: "folding gives up too much equity here",
		}}
	} else {
		rec.Primary = Action{
			Type:      ActionFold,
			Frequency: 1.0,
			Reason:    fmt.Sprintf("%s below the calling threshold vs a %.1fBB shove", class, shoveBB),
		}
	}
	if bucket > 0 {
		rec.Notes = append(rec.Notes, fmt.Sprintf("call chart bucket %dBB, threshold %.2f", bucket, threshold))
	}
	return rec
}

// chartRangePercent converts the push chart for a spot into a share of all
// 1326 starting combinations.
func (e *Engine) chartRangePercent(pos charts.Position, stackBB float64) float64 {
	combos := 0
	for _, class := range e.charts.PushRange(pos, stackBB) {
		combos += len(class.Combos())
	}
	return float64(combos) / 1326.0 * 100.0
}

// headsUpEquityNote reads the hero's all-in equity against one random hand,
// usually straight from the preflop cache.
func (e *Engine) headsUpEquityNote(hole poker.HoleCards) (string, bool) {
	result, err := e.equity.Run(equity.Params{
		Hero:      hole,
		Opponents: 1,
		Trials:    equityNoteTrials,
	}, randutil.New(rand.Int64()))
	if err != nil {
		e.log.Warn("equity estimate failed", "err", err)
		return "", false
	}
	return fmt.Sprintf("heads-up equity vs random: %.1f%%", result.Equity()*100), true
}

// preflop handles normal-stack preflop play: open, versus a raise, or
// versus a 3-bet.
func (e *Engine) preflop(state TableState, class poker.Class) Recommendation {
	switch {
	case state.FacingThreeBet():
		return e.vsThreeBet(state, class)
	case state.FacingRaise():
		return e.vsRaise(state, class)
	default:
		return e.openRaise(state, class)
	}
}

func (e *Engine) openRaise(state TableState, class poker.Class) Recommendation {
	pos := e.heroPosition(state)
	strength, _ := e.handStrength(class)

	rec := Recommendation{
		Hand:          class.String(),
		Position:      string(pos),
		StackBB:       state.HeroStackBB(),
		Street:        Preflop,
		RangeStrength: strength,
	}

	chart, ok := e.charts.Opening(state.TableFormat, pos)
	if !ok {
		e.log.Warn("no opening chart, using strength default",
			"format", state.TableFormat, "position", pos)
		rec.Fallback = true
		if strength >= 0.80 {
			rec.InRange = true
			rec.Primary = Action{
				Type: ActionRaise, Size: 2.5, Frequency: 1.0,
				Reason: fmt.Sprintf("open %s on raw strength, no chart for %s", class, pos),
			}
		} else {
			rec.Primary = Action{
				Type: ActionFold, Frequency: 1.0,
				Reason: fmt.Sprintf("fold %s, no chart for %s", class, pos),
			}
		}
		return rec
	}

	rec.InRange = classIn(chart.Raise, class)
	rec.Notes = append(rec.Notes, fmt.Sprintf("%s opening range: %.0f%% of hands", pos, classPercent(chart.Raise)))
	if chart.Description != "" {
		rec.Notes = append(rec.Notes, chart.Description)
	}

	if rec.InRange {
		rec.Primary = Action{
			Type: ActionRaise, Size: chart.RaiseSize, Frequency: 1.0,
			Reason: fmt.Sprintf("open raise %s from %s", class, pos),
		}
		rec.Alternatives = []Action{{Type: ActionFold, Reason: "folding forfeits a profitable open"}}
	} else {
		rec.Primary = Action{
			Type: ActionFold, Frequency: 1.0,
			Reason: fmt.Sprintf("%s outside the %s opening range", class, pos),
		}
	}
	return rec
}

func (e *Engine) vsRaise(state TableState, class poker.Class) Recommendation {
	pos := e.heroPosition(state)
	raiser := state.RaiserPosition()
	strength, _ := e.handStrength(class)

	rec := Recommendation{
		Hand:          class.String(),
		Position:      string(pos),
		StackBB:       state.HeroStackBB(),
		Street:        Preflop,
		RangeStrength: strength,
		Notes:         []string{fmt.Sprintf("facing a raise from %s", raiser)},
	}

	chart, ok := e.charts.ThreeBet(state.TableFormat, raiser)
	if !ok {
		e.log.Warn("no 3-bet chart, using strength default",
			"format", state.TableFormat, "raiser", raiser)
		rec.Fallback = true
		if strength >= threeBetCallStrength {
			rec.InRange = true
			rec.Primary = Action{
				Type: ActionCall, Frequency: 1.0,
				Reason: fmt.Sprintf("call %s on raw strength, no chart vs %s", class, raiser),
			}
		} else {
			rec.Primary = Action{
				Type: ActionFold, Frequency: 1.0,
				Reason: fmt.Sprintf("fold %s, no chart vs %s", class, raiser),
			}
		}
		return rec
	}
	if chart.Description != "" {
		rec.Notes = append(rec.Notes, chart.Description)
	}

	switch {
	case classIn(chart.Value, class):
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionRaise, Size: 3.0, Frequency: 1.0,
			Reason: fmt.Sprintf("3-bet %s for value vs %s", class, raiser),
		}
		rec.Alternatives = []Action{{Type: ActionCall, Reason: "occasionally flat to disguise the range"}}
	case classIn(chart.Bluff, class):
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionRaise, Size: 3.0, Frequency: 0.5,
			Reason: fmt.Sprintf("3-bet %s as a bluff vs %s", class, raiser),
		}
		rec.Alternatives = []Action{{Type: ActionFold, Frequency: 0.5, Reason: "fold the other half of the time"}}
	case classIn(chart.Call, class):
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionCall, Frequency: 1.0,
			Reason: fmt.Sprintf("call %s vs the %s raise", class, raiser),
		}
	default:
		rec.Primary = Action{
			Type: ActionFold, Frequency: 1.0,
			Reason: fmt.Sprintf("%s not strong enough vs %s", class, raiser),
		}
	}
	return rec
}

// vsThreeBet keeps only premium strength plus a narrow blocker-bluff
// carve-out.
func (e *Engine) vsThreeBet(state TableState, class poker.Class) Recommendation {
	pos := e.heroPosition(state)
	strength, _ := e.handStrength(class)

	rec := Recommendation{
		Hand:          class.String(),
		Position:      string(pos),
		StackBB:       state.HeroStackBB(),
		Street:        Preflop,
		RangeStrength: strength,
		Notes:         []string{"facing a 3-bet: continue only with premiums"},
	}

	switch {
	case strength >= fourBetValueStrength:
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionRaise, Size: 2.25, Frequency: 0.8,
			Reason: fmt.Sprintf("4-bet %s for value", class),
		}
		rec.Alternatives = []Action{{Type: ActionCall, Frequency: 0.2, Reason: "flat to trap occasionally"}}
	case strength >= threeBetCallStrength:
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionCall, Frequency: 0.7,
			Reason: fmt.Sprintf("call the 3-bet with %s and reassess the flop", class),
		}
		rec.Alternatives = []Action{{Type: ActionRaise, Frequency: 0.3, Reason: "4-bet for thin value sometimes"}}
	case strength >= blockerBluffStrength && blockerBluffClasses[class.String()]:
		rec.InRange = true
		rec.Primary = Action{
			Type: ActionRaise, Size: 2.25, Frequency: 0.4,
			Reason: fmt.Sprintf("4-bet %s as a blocker bluff", class),
		}
		rec.Alternatives = []Action{{Type: ActionFold, Frequency: 0.6, Reason: "fold the rest of the time"}}
	default:
		rec.Primary = Action{
			Type: ActionFold, Frequency: 1.0,
			Reason: fmt.Sprintf("%s cannot continue profitably vs a 3-bet", class),
		}
	}
	return rec
}

// postflop is a placeholder until a real postflop module exists. Fallback
// is always set so callers can tell this apart from solved strategy.
func (e *Engine) postflop(state TableState, class poker.Class) Recommendation {
	pos := e.heroPosition(state)
	halfPot := state.PotBB() * 0.5

	return Recommendation{
		Primary: Action{
			Type: ActionCheck, Frequency: 0.5,
			Reason: "postflop play is not solved; defaulting to a passive line",
		},
		Alternatives: []Action{{
			Type: ActionBet, Size: halfPot, Frequency: 0.5,
			Reason: "standard half-pot continuation bet",
		}},
		Hand:          class.String(),
		Position:      string(pos),
		StackBB:       state.HeroStackBB(),
		Street:        state.Street,
		RangeStrength: 0.5,
		Fallback:      true,
		Notes:         []string{fmt.Sprintf("street: %s", state.Street), "postflop module unimplemented"},
	}
}

func classIn(list []poker.Class, class poker.Class) bool {
	for _, c := range list {
		if c == class {
			return true
		}
	}
	return false
}

func classPercent(list []poker.Class) float64 {
	combos := 0
	for _, c := range list {
		combos += len(c.Combos())
	}
	return float64(combos) / 1326.0 * 100.0
}
