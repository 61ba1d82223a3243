package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-advisor/internal/icm"
)

type ICMCmd struct {
	Stacks    []float64 `arg:"" help:"Chip stacks, one per player"`
	Payouts   []float64 `short:"p" help:"Payout amounts in descending finish order"`
	Structure string    `short:"s" help:"Named payout structure (e.g. 9_player_sng)"`
	PrizePool float64   `default:"100" help:"Prize pool scaled into the named structure"`
}

func (c *ICMCmd) Run(a *app) error {
	payouts := c.Payouts
	if len(payouts) == 0 {
		if c.Structure == "" {
			return fmt.Errorf("provide --payouts or --structure (one of: %s)",
				strings.Join(icm.PayoutStructureNames(), ", "))
		}
		var err error
		payouts, err = icm.PayoutStructure(c.Structure, c.PrizePool)
		if err != nil {
			return err
		}
	}

	total := 0.0
	for _, s := range c.Stacks {
		total += s
	}

	fmt.Printf("%s\n\n", headerStyle.Render("ICM equity"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("stack"),
		dimStyle.Render("chips%"),
		winStyle.Render("$EV"),
		dimStyle.Render("model"))

	for i, stack := range c.Stacks {
		result, err := a.icm.Equity(c.Stacks, payouts, i)
		if err != nil {
			return err
		}
		model := "exact"
		if result.Approximate {
			model = "proportional (approximate)"
		}
		fmt.Fprintf(w, "%.0f\t%s\t%s\t%s\n",
			stack,
			dimStyle.Render(fmt.Sprintf("%.1f%%", stack/total*100)),
			winStyle.Render(fmt.Sprintf("%.2f", result.DollarEV)),
			dimStyle.Render(model))
	}
	return w.Flush()
}
