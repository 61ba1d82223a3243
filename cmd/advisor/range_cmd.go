package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-advisor/poker"
)

type RangeCmd struct {
	Notation string `arg:"" help:"Range notation (e.g. 'TT+,AJs+,KQo,A5s-A2s')"`
	Combos   bool   `help:"List every hole-card combination instead of classes"`
}

func (c *RangeCmd) Run(a *app) error {
	r, err := poker.ParseRange(c.Notation)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", headerStyle.Render("range:"), c.Notation)
	fmt.Printf("%d combinations, %.1f%% of all hands\n\n", r.Size(), r.Percentage())

	if c.Combos {
		for _, hand := range r.Hands() {
			fmt.Println(hand)
		}
		return nil
	}

	classes := r.Classes()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	const perRow = 8
	for i := 0; i < len(classes); i += perRow {
		end := min(i+perRow, len(classes))
		cells := make([]string, 0, perRow)
		for _, class := range classes[i:end] {
			cells = append(cells, handStyle.Render(class.String()))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
