package engine

import (
	"fmt"
	"strings"
)

// ActionType is a poker action the engine can recommend.
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

// Action is one recommended action with a mixed-strategy weight.
type Action struct {
	Type ActionType

	// Size is the bet or raise size in big blinds; zero for sizeless
	// actions (fold, check, call).
	Size float64

	// Frequency is the mixed-strategy weight in [0,1]; 1 is a pure
	// strategy.
	Frequency float64

	Reason string
}

// Recommendation is the engine's full answer for one table snapshot.
type Recommendation struct {
	Primary      Action
	Alternatives []Action

	Hand     string
	Position string
	StackBB  float64
	Street   Street

	// PushFold marks that short-stack push/fold logic produced the answer.
	PushFold bool

	// ICMAdjusted marks that tournament payout pressure tightened the
	// thresholds.
	ICMAdjusted bool

	// RangeStrength places the hand in the 0-1 strength ranking.
	RangeStrength float64

	// InRange reports whether the hand was inside the consulted chart.
	InRange bool

	// Fallback marks answers produced without real chart or solver
	// backing; callers must not treat them as solved strategy.
	Fallback bool

	Notes []string
}

// Flatten renders the recommendation as a flat key/value map for transport
// layers that do not share the engine's types.
func (r Recommendation) Flatten() map[string]string {
	out := map[string]string{
		"action":         string(r.Primary.Type),
		"frequency":      formatFloat(r.Primary.Frequency),
		"reason":         r.Primary.Reason,
		"hand":           r.Hand,
		"position":       r.Position,
		"stack_bb":       formatFloat(r.StackBB),
		"street":         string(r.Street),
		"push_fold":      fmt.Sprintf("%t", r.PushFold),
		"icm_adjusted":   fmt.Sprintf("%t", r.ICMAdjusted),
		"range_strength": formatFloat(r.RangeStrength),
		"in_range":       fmt.Sprintf("%t", r.InRange),
		"fallback":       fmt.Sprintf("%t", r.Fallback),
	}
	if r.Primary.Size > 0 {
		out["size"] = formatFloat(r.Primary.Size)
	}
	for i, alt := range r.Alternatives {
		prefix := fmt.Sprintf("alt.%d.", i)
		out[prefix+"action"] = string(alt.Type)
		out[prefix+"frequency"] = formatFloat(alt.Frequency)
		out[prefix+"reason"] = alt.Reason
		if alt.Size > 0 {
			out[prefix+"size"] = formatFloat(alt.Size)
		}
	}
	if len(r.Notes) > 0 {
		out["notes"] = strings.Join(r.Notes, "; ")
	}
	return out
}

func formatFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
