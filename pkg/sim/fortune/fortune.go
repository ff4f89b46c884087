// Package fortune simulates the fortune gacha: one weighted draw per pull
// from a fixed pool, with a pity mechanic that inflates the target grade's
// weight after a miss streak and resets on any target-grade hit. The state
// per trial is the streak counter plus the current weight vector — a small
// Markov chain.
package fortune

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// Config controls one simulation.
type Config struct {
	// Pulls is the number of draws per trial.
	Pulls int `yaml:"pulls"`
	// Runs is the Monte Carlo iteration count.
	Runs int `yaml:"runs"`
}

// Result is the per-trial average outcome.
type Result struct {
	AvgCosts      parcel.AmountMap
	AvgRewards    parcel.AmountMap
	AvgTargetHits float64
}

// Simulate runs cfg.Runs trials of cfg.Pulls draws each and averages the
// outcomes. A nil table, an empty pool, or a non-positive run count yields a
// zero result rather than an error or a division by zero.
func Simulate(table *gamedata.FortuneTable, cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if table == nil || len(table.Entries) == 0 || cfg.Runs <= 0 || cfg.Pulls <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}

	base := make([]float64, len(table.Entries))
	anyPositive := false
	for i, entry := range table.Entries {
		base[i] = entry.Weight
		if entry.Weight > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return result
	}

	totalRewards := make(parcel.AmountMap)
	totalHits := 0
	weights := make([]float64, len(base))

	for run := 0; run < cfg.Runs; run++ {
		streak := 0
		for pull := 0; pull < cfg.Pulls; pull++ {
			modifier := pityModifier(table, streak)
			for i, entry := range table.Entries {
				weights[i] = base[i]
				if modifier > 0 && entry.Grade == table.TargetGrade {
					weights[i] += modifier
				}
			}
			idx := rng.WeightedIndex(src, weights)
			if idx < 0 {
				break
			}
			entry := table.Entries[idx]
			for _, reward := range entry.Rewards {
				totalRewards.Add(reward.Parcel, reward.Amount)
			}
			if entry.Grade == table.TargetGrade {
				totalHits++
				streak = 0
			} else {
				streak++
			}
		}
	}

	runs := float64(cfg.Runs)
	result.AvgCosts.Add(table.PullCost.Parcel, table.PullCost.Amount*float64(cfg.Pulls))
	for k, v := range totalRewards {
		result.AvgRewards[k] = v / runs
	}
	result.AvgTargetHits = float64(totalHits) / runs
	return result
}

// pityModifier returns the extra weight granted to target-grade entries at
// the given miss streak, zero until the streak exceeds the threshold and
// clamped at the modify limit.
func pityModifier(table *gamedata.FortuneTable, streak int) float64 {
	if streak <= table.PityThreshold || table.PityStep <= 0 {
		return 0
	}
	modifier := table.PityStep * float64(streak-table.PityThreshold)
	if table.PityLimit > 0 && modifier > table.PityLimit {
		modifier = table.PityLimit
	}
	return modifier
}
