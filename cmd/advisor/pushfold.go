package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/poker"
)

type PushFoldCmd struct {
	Position string  `arg:"" help:"Position (UTG, MP, CO, BTN, SB, BB)"`
	Stack    float64 `arg:"" help:"Stack in big blinds"`
	Hand     string  `short:"H" help:"Check a specific hand against the chart"`
}

func (c *PushFoldCmd) Run(a *app) error {
	pos := charts.Position(strings.ToUpper(c.Position))
	if !pos.Valid() {
		return fmt.Errorf("unknown position %q", c.Position)
	}

	threshold, bucket, ok := a.charts.PushThreshold(pos, c.Stack)
	if !ok {
		return fmt.Errorf("no push chart for %s", pos)
	}

	classes := a.charts.PushRange(pos, c.Stack)
	combos := 0
	for _, class := range classes {
		combos += len(class.Combos())
	}

	fmt.Printf("%s %s at %.1fBB (chart bucket %dBB)\n\n",
		headerStyle.Render("push range:"), string(pos), c.Stack, bucket)
	fmt.Printf("threshold %.2f, %d classes, %.1f%% of hands\n\n",
		threshold, len(classes), float64(combos)/1326.0*100)

	if c.Hand != "" {
		return c.checkHand(a, pos)
	}

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

func (c *PushFoldCmd) checkHand(a *app, pos charts.Position) error {
	classes, err := poker.ParseClasses(c.Hand)
	if err != nil {
		return err
	}

	for _, class := range classes {
		strength, _ := a.charts.HandStrength(class)
		inRange := false
		for _, pushed := range a.charts.PushRange(pos, c.Stack) {
			if pushed == class {
				inRange = true
				break
			}
		}
		verdict := percentStyle.Render("fold")
		if inRange {
			verdict = winStyle.Render("push")
		}
		fmt.Printf("%s\tstrength %.2f\t%s\n", handStyle.Render(class.String()), strength, verdict)
	}
	return nil
}
