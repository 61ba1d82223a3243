package icm

import (
	"fmt"
	"sort"
)

// payoutStructures maps tournament format names to prize-pool fractions in
// descending finish order.
var payoutStructures = map[string][]float64{
	"9_player_sng":    {0.50, 0.30, 0.20},
	"6_player_sng":    {0.65, 0.35},
	"18_player":       {0.30, 0.20, 0.15, 0.12, 0.10, 0.08, 0.05},
	"45_player":       {0.25, 0.17, 0.12, 0.09, 0.07, 0.06, 0.05, 0.04, 0.04, 0.03, 0.02, 0.02, 0.02, 0.01, 0.01},
	"mtt_final_table": {0.295, 0.175, 0.125, 0.095, 0.075, 0.065, 0.055, 0.045, 0.04},
}

// PayoutStructure returns the named payout fractions, scaled to the given
// prize pool.
func PayoutStructure(name string, prizePool float64) ([]float64, error) {
	fractions, ok := payoutStructures[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown payout structure %q", ErrInvalidField, name)
	}
	payouts := make([]float64, len(fractions))
	for i, f := range fractions {
		payouts[i] = f * prizePool
	}
	return payouts, nil
}

// PayoutStructureNames lists the known structure names, sorted.
func PayoutStructureNames() []string {
	names := make([]string, 0, len(payoutStructures))
	for name := range payoutStructures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
