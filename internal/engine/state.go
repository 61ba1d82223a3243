package engine

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/poker"
)

// ErrNoHeroHand reports a table snapshot with no hero seat or no hole cards.
var ErrNoHeroHand = errors.New("no hero hand")

// ErrBadSnapshot reports a snapshot the engine cannot price.
var ErrBadSnapshot = errors.New("bad table snapshot")

// Street is the betting round of a hand.
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// Player is one seat's state in a table snapshot.
type Player struct {
	Seat       int             `json:"seat"`
	Name       string          `json:"name,omitempty"`
	Position   charts.Position `json:"position"`
	Stack      float64         `json:"stack"`
	CurrentBet float64         `json:"current_bet,omitempty"`
	Active     bool            `json:"active"`
	Hero       bool            `json:"hero,omitempty"`
	Turn       bool            `json:"turn,omitempty"`
}

// TableState is a point-in-time snapshot of a hand, as delivered by the
// capture layer. Hole and board cards arrive as notation strings.
type TableState struct {
	HeroCards string   `json:"hero_cards"`
	Board     string   `json:"board,omitempty"`
	Players   []Player `json:"players"`

	Pot        float64 `json:"pot"`
	SmallBlind float64 `json:"small_blind"`
	BigBlind   float64 `json:"big_blind"`
	Ante       float64 `json:"ante,omitempty"`

	Street      Street `json:"street"`
	TableFormat string `json:"table_format,omitempty"`

	// Payouts carries the remaining tournament prize amounts in finish
	// order. Empty means a cash game; no ICM adjustment applies.
	Payouts []float64 `json:"payouts,omitempty"`
}

// Hero returns the hero seat, if the snapshot has one.
func (t *TableState) Hero() (Player, bool) {
	for _, p := range t.Players {
		if p.Hero {
			return p, true
		}
	}
	return Player{}, false
}

// HeroStackBB returns the hero's stack in big blinds.
func (t *TableState) HeroStackBB() float64 {
	hero, ok := t.Hero()
	if !ok || t.BigBlind <= 0 {
		return 0
	}
	return hero.Stack / t.BigBlind
}

// EffectiveStackBB returns the smallest stack among the hero and active
// opponents, in big blinds. Money beyond it cannot be won or lost.
func (t *TableState) EffectiveStackBB() float64 {
	heroBB := t.HeroStackBB()
	effective := heroBB
	for _, p := range t.Players {
		if p.Hero || !p.Active {
			continue
		}
		if bb := p.Stack / t.BigBlind; bb < effective {
			effective = bb
		}
	}
	return effective
}

// ActivePlayers counts seats still in the hand.
func (t *TableState) ActivePlayers() int {
	n := 0
	for _, p := range t.Players {
		if p.Active {
			n++
		}
	}
	return n
}

// PotBB returns the pot in big blinds.
func (t *TableState) PotBB() float64 {
	if t.BigBlind <= 0 {
		return 0
	}
	return t.Pot / t.BigBlind
}

// FacingRaise reports whether any opponent has bet beyond the big blind.
func (t *TableState) FacingRaise() bool {
	for _, p := range t.Players {
		if !p.Hero && p.CurrentBet > t.BigBlind {
			return true
		}
	}
	return false
}

// FacingThreeBet reports whether the action in front indicates a re-raise:
// either two distinct raise sizes are in, or a lone bet is well beyond any
// open sizing.
func (t *TableState) FacingThreeBet() bool {
	if !t.FacingRaise() {
		return false
	}
	levels := make(map[float64]bool)
	for _, p := range t.Players {
		if p.Hero || p.CurrentBet <= t.BigBlind {
			continue
		}
		levels[p.CurrentBet] = true
		if p.CurrentBet > t.BigBlind*3.5 {
			return true
		}
	}
	return len(levels) >= 2
}

// FacingShove reports whether an opponent is all-in in front, returning the
// shove size in big blinds.
func (t *TableState) FacingShove() (float64, bool) {
	if i := t.shoverIndex(); i >= 0 {
		return t.Players[i].CurrentBet / t.BigBlind, true
	}
	return 0, false
}

// shoverIndex returns the index of the first all-in opponent, -1 if none.
func (t *TableState) shoverIndex() int {
	for i, p := range t.Players {
		if !p.Hero && p.Active && p.Stack == 0 && p.CurrentBet > t.BigBlind {
			return i
		}
	}
	return -1
}

// PlayersBehind counts active opponents still waiting to act.
func (t *TableState) PlayersBehind() int {
	n := 0
	for _, p := range t.Players {
		if p.Active && !p.Hero && !p.Turn {
			n++
		}
	}
	return n
}

// RaiserPosition returns the position of the first opponent whose bet
// exceeds the big blind, defaulting to UTG when positions are unknown.
func (t *TableState) RaiserPosition() charts.Position {
	for _, p := range t.Players {
		if !p.Hero && p.CurrentBet > t.BigBlind {
			if p.Position.Valid() {
				return p.Position
			}
			break
		}
	}
	return charts.UTG
}

// heroIndex returns the hero's index in the Players slice.
func (t *TableState) heroIndex() int {
	for i, p := range t.Players {
		if p.Hero {
			return i
		}
	}
	return -1
}

// stacks returns every seat's full holding, chips behind plus chips already
// in front, aligned with Players. ICM prices whole stacks.
func (t *TableState) stacks() []float64 {
	out := make([]float64, len(t.Players))
	for i, p := range t.Players {
		out[i] = p.Stack + p.CurrentBet
	}
	return out
}

// validate checks the snapshot fields the engine depends on.
func (t *TableState) validate() error {
	if t.BigBlind <= 0 {
		return fmt.Errorf("%w: big blind %v", ErrBadSnapshot, t.BigBlind)
	}
	if t.Street == "" {
		return fmt.Errorf("%w: missing street", ErrBadSnapshot)
	}
	if _, err := poker.ParseCards(t.Board); err != nil {
		return fmt.Errorf("%w: board: %v", ErrBadSnapshot, err)
	}
	return nil
}
