package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/holdem-advisor/internal/equity"
	"github.com/lox/holdem-advisor/poker"
)

type OddsCmd struct {
	Hand      string `arg:"" help:"Hero hole cards (e.g. 'AsKh')"`
	Board     string `short:"b" help:"Community cards (e.g. 'Td7s8h')"`
	Opponents int    `short:"o" default:"1" help:"Number of opponents"`
	Range     string `short:"r" help:"Restrict opponents to a range (e.g. 'TT+,AQs+')"`
	Trials    int    `short:"t" help:"Monte Carlo trials (default from config)"`
}

func (c *OddsCmd) Run(a *app) error {
	hero, err := poker.ParseHoleCards(c.Hand)
	if err != nil {
		return err
	}

	params := equity.Params{
		Hero:      hero,
		Opponents: c.Opponents,
		Trials:    c.Trials,
	}
	if params.Trials <= 0 {
		params.Trials = a.cfg.Simulation.Trials
	}
	if c.Board != "" {
		board, err := poker.ParseCards(c.Board)
		if err != nil {
			return err
		}
		params.Board = board
	}
	if c.Range != "" {
		r, err := poker.ParseRange(c.Range)
		if err != nil {
			return err
		}
		params.VillainRange = r
	}

	result, err := a.equity.Run(params, a.rng)
	if err != nil {
		return err
	}

	vs := fmt.Sprintf("%d random hand(s)", c.Opponents)
	if c.Range != "" {
		vs = fmt.Sprintf("%d hand(s) from %s", c.Opponents, c.Range)
	}
	fmt.Printf("%s %s vs %s\n\n", headerStyle.Render("equity:"), handStyle.Render(hero.String()), vs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("equity"),
		winStyle.Render("win"),
		tieStyle.Render("tie"),
		dimStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		percentStyle.Render(fmt.Sprintf("%.1f%%", result.Equity()*100)),
		winStyle.Render(fmt.Sprintf("%.1f%%", result.Win*100)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", result.Tie*100)),
		dimStyle.Render(fmt.Sprintf("%.1f%%", result.Lose*100)))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if result.Cached {
		fmt.Println(dimStyle.Render("precomputed preflop result"))
		return nil
	}
	lo, hi := result.ConfidenceInterval()
	fmt.Printf("%s\n", dimStyle.Render(fmt.Sprintf(
		"95%% CI %.1f%%-%.1f%%, %d trials in %v",
		lo*100, hi*100, result.Trials, result.Elapsed.Truncate(time.Millisecond))))
	return nil
}
