// Package boxgacha computes cost and reward totals for opening a range of
// sequential boxes. Rounds are deterministic — each has a fixed cost and a
// fixed reward set — and rounds at the loop marker and beyond repeat
// indefinitely, so this is range summation rather than Monte Carlo.
package boxgacha

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

// Config selects which boxes to open, 1-based and inclusive on both ends.
type Config struct {
	FromBox int `yaml:"fromBox"`
	ToBox   int `yaml:"toBox"`
}

// Result is the summed cost and reward over the selected range.
type Result struct {
	Costs   parcel.FlowMap
	Rewards parcel.FlowMap
}

// Calculate sums the rounds covering boxes FromBox..ToBox. A nil table or an
// empty/inverted range yields an empty result.
func Calculate(table *gamedata.BoxGachaTable, cfg Config) Result {
	result := Result{
		Costs:   make(parcel.FlowMap),
		Rewards: make(parcel.FlowMap),
	}
	if table == nil || len(table.Rounds) == 0 {
		return result
	}
	from := cfg.FromBox
	if from < 1 {
		from = 1
	}
	for box := from; box <= cfg.ToBox; box++ {
		round := table.Rounds[roundIndex(table, box)]
		result.Costs.Add(round.Cost.Parcel, round.Cost.Amount, false)
		for _, reward := range round.Rewards {
			result.Rewards.Add(reward.Parcel, reward.Amount, false)
		}
	}
	return result
}

// roundIndex maps a 1-based box number onto the round list, cycling through
// the loop segment once the numbered sequence is exhausted.
func roundIndex(table *gamedata.BoxGachaTable, box int) int {
	idx := box - 1
	if idx < len(table.Rounds) {
		return idx
	}
	loopFrom := table.LoopFrom
	if loopFrom < 0 || loopFrom >= len(table.Rounds) {
		// Degenerate loop marker: repeat the final round.
		return len(table.Rounds) - 1
	}
	span := len(table.Rounds) - loopFrom
	return loopFrom + (idx-loopFrom)%span
}
