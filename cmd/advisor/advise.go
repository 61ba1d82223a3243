package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/internal/engine"
	"github.com/lox/holdem-advisor/internal/icm"
)

type AdviseCmd struct {
	File string `short:"f" help:"JSON table snapshot file (overrides the flags below)"`

	Hand     string   `short:"H" help:"Hero hole cards (e.g. 'AsKh')"`
	Board    string   `short:"b" help:"Community cards (e.g. 'Td7s8h')"`
	Position string   `short:"p" default:"BTN" help:"Hero position (UTG, MP, CO, BTN, SB, BB)"`
	Stack    float64  `default:"100" help:"Hero stack in big blinds"`
	Villains []string `help:"Opponent stacks in BB, optionally with position and bet: 'CO:25:2.5' or '25'"`
	Pot      float64  `default:"1.5" help:"Pot in big blinds"`
	JSON     bool     `help:"Emit the recommendation as flat JSON"`
}

func (c *AdviseCmd) Run(a *app) error {
	state, err := c.tableState(a)
	if err != nil {
		return err
	}

	rec, err := a.engine.Advise(state)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec.Flatten())
	}

	fmt.Printf("%s %s\n\n",
		headerStyle.Render("recommendation for"),
		handStyle.Render(rec.Hand))

	action := string(rec.Primary.Type)
	if rec.Primary.Size > 0 {
		action = fmt.Sprintf("%s %.1fBB", action, rec.Primary.Size)
	}
	fmt.Printf("  %s  %s\n", actionStyle.Render(action),
		fmt.Sprintf("(%.0f%% of the time)", rec.Primary.Frequency*100))
	fmt.Printf("  %s\n", rec.Primary.Reason)

	for _, alt := range rec.Alternatives {
		fmt.Printf("  or: %s (%.0f%%): %s\n", alt.Type, alt.Frequency*100, alt.Reason)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	flat := rec.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%s\n", dimStyle.Render(k), flat[k])
	}
	return w.Flush()
}

// tableState builds the snapshot from a file or from flags. Flag-built
// snapshots scale chips so the big blind is 100.
func (c *AdviseCmd) tableState(a *app) (engine.TableState, error) {
	if c.File != "" {
		raw, err := os.ReadFile(c.File)
		if err != nil {
			return engine.TableState{}, err
		}
		var state engine.TableState
		if err := json.Unmarshal(raw, &state); err != nil {
			return engine.TableState{}, fmt.Errorf("snapshot %s: %w", c.File, err)
		}
		if state.TableFormat == "" {
			state.TableFormat = a.cfg.Table.Format
		}
		return state, nil
	}

	const bb = 100.0
	state := engine.TableState{
		HeroCards:   c.Hand,
		Board:       c.Board,
		Pot:         c.Pot * bb,
		SmallBlind:  bb / 2,
		BigBlind:    bb,
		Street:      streetForBoard(c.Board),
		TableFormat: a.cfg.Table.Format,
		Players: []engine.Player{{
			Seat:     1,
			Position: charts.Position(c.Position),
			Stack:    c.Stack * bb,
			Active:   true,
			Hero:     true,
			Turn:     true,
		}},
	}

	for i, spec := range c.Villains {
		player, err := parseVillain(spec, i+2, bb)
		if err != nil {
			return engine.TableState{}, err
		}
		state.Players = append(state.Players, player)
	}
	if len(c.Villains) == 0 {
		state.Players = append(state.Players, engine.Player{
			Seat: 2, Position: charts.BB, Stack: 100 * bb, Active: true,
		})
	}

	if a.cfg.Table.PayoutStructure != "" {
		payouts, err := icm.PayoutStructure(a.cfg.Table.PayoutStructure, a.cfg.Table.PrizePool)
		if err != nil {
			return engine.TableState{}, err
		}
		state.Payouts = payouts
	}
	return state, nil
}

// parseVillain parses "25", "CO:25" or "CO:25:2.5" (position, stack in BB,
// current bet in BB).
func parseVillain(spec string, seat int, bb float64) (engine.Player, error) {
	player := engine.Player{Seat: seat, Active: true}

	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 1:
	case 2, 3:
		player.Position = charts.Position(strings.ToUpper(parts[0]))
		if !player.Position.Valid() {
			return engine.Player{}, fmt.Errorf("villain %q: unknown position %q", spec, parts[0])
		}
		parts = parts[1:]
	default:
		return engine.Player{}, fmt.Errorf("villain %q: want [POS:]STACK[:BET]", spec)
	}

	stack, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return engine.Player{}, fmt.Errorf("villain %q: bad stack: %w", spec, err)
	}
	player.Stack = stack * bb

	if len(parts) == 2 {
		bet, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return engine.Player{}, fmt.Errorf("villain %q: bad bet: %w", spec, err)
		}
		player.CurrentBet = bet * bb
	}
	return player, nil
}

func streetForBoard(board string) engine.Street {
	switch len(board) / 2 {
	case 0:
		return engine.Preflop
	case 3:
		return engine.Flop
	case 4:
		return engine.Turn
	default:
		return engine.River
	}
}
