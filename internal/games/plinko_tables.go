package games

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed plinko_tables.json
var plinkoTablesJSON []byte

var payoutTables = loadPayoutTables()

// loadPayoutTables parses and validates the embedded multiplier tables.
// Every table must have exactly BinCount entries and be symmetric about the
// center bin; a mismatch is a configuration bug, not a runtime condition.
func loadPayoutTables() map[RiskTier][]float64 {
	raw := map[string][]float64{}
	if err := json.Unmarshal(plinkoTablesJSON, &raw); err != nil {
		panic(fmt.Sprintf("failed to parse plinko payout tables: %v", err))
	}

	result := make(map[RiskTier][]float64, len(raw))
	for risk, multipliers := range raw {
		tier, err := ParseRiskTier(risk)
		if err != nil {
			panic(fmt.Sprintf("plinko tables contain %v", err))
		}

		if len(multipliers) != BinCount {
			panic(fmt.Sprintf("plinko table for risk %q has %d entries, want %d", risk, len(multipliers), BinCount))
		}

		for i := 0; i < BinCount/2; i++ {
			if multipliers[i] != multipliers[BinCount-1-i] {
				panic(fmt.Sprintf("plinko table for risk %q is not symmetric at index %d", risk, i))
			}
		}
		for i, m := range multipliers {
			if m <= 0 {
				panic(fmt.Sprintf("plinko table for risk %q has non-positive multiplier %f at index %d", risk, m, i))
			}
		}

		copied := make([]float64, BinCount)
		copy(copied, multipliers)
		result[tier] = copied
	}

	for _, tier := range []RiskTier{RiskLow, RiskMedium, RiskHigh} {
		if _, ok := result[tier]; !ok {
			panic(fmt.Sprintf("plinko tables missing risk tier %q", tier))
		}
	}

	return result
}

// Multiplier returns the payout multiplier for a bin under the given risk
// tier. The bin is clamped into table bounds; resolvers already keep it in
// range by construction.
func Multiplier(risk RiskTier, bin int) float64 {
	table, ok := payoutTables[risk]
	if !ok {
		panic(fmt.Sprintf("no payout table for risk %q", risk))
	}

	if bin < 0 {
		bin = 0
	}
	if bin >= len(table) {
		bin = len(table) - 1
	}
	return table[bin]
}
