// Package cardshop simulates the card-shop minigame: up to a fixed number of
// draws per round from group-indexed weighted pools. The group index advances
// only while drawn cards stay below the rarity threshold; the strategy, not
// chance, decides when a round stops early.
package cardshop

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// Strategy controls early termination within one round.
type Strategy string

const (
	// StrategyStopOnRare stops the round at the first rare-or-above card.
	StrategyStopOnRare Strategy = "stopOnRare"
	// StrategyOpenAll draws the full allowance unconditionally.
	StrategyOpenAll Strategy = "openAll"
	// StrategyOpenOne draws exactly one card and stops.
	StrategyOpenOne Strategy = "openOne"
)

// Config controls one simulation.
type Config struct {
	Rounds   int      `yaml:"rounds"`
	Strategy Strategy `yaml:"strategy"`
	Runs     int      `yaml:"runs"`
}

// Result is the per-trial average outcome.
type Result struct {
	AvgCosts   parcel.AmountMap
	AvgRewards parcel.AmountMap
	AvgDraws   float64
}

// Simulate runs cfg.Runs trials of cfg.Rounds rounds each. A nil table, no
// groups, or a non-positive run count yields a zero result.
func Simulate(table *gamedata.CardShopTable, cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if table == nil || len(table.Groups) == 0 || cfg.Runs <= 0 || cfg.Rounds <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}
	drawsPerRound := table.DrawsPerRound
	if drawsPerRound <= 0 {
		drawsPerRound = 4
	}

	totalRewards := make(parcel.AmountMap)
	totalDraws := 0

	for run := 0; run < cfg.Runs; run++ {
		group := 0
		for round := 0; round < cfg.Rounds; round++ {
			allowance := drawsPerRound
			if cfg.Strategy == StrategyOpenOne {
				allowance = 1
			}
			for draw := 0; draw < allowance; draw++ {
				card, ok := drawCard(table.Groups[group], src)
				if !ok {
					break
				}
				totalDraws++
				totalRewards.Add(card.Reward.Parcel, card.Reward.Amount)

				rare := card.Rarity >= table.RareThreshold
				if !rare && group < len(table.Groups)-1 {
					group++
				}
				if rare && cfg.Strategy == StrategyStopOnRare {
					break
				}
			}
		}
	}

	runs := float64(cfg.Runs)
	result.AvgDraws = float64(totalDraws) / runs
	result.AvgCosts.Add(table.DrawCost.Parcel, table.DrawCost.Amount*result.AvgDraws)
	for k, v := range totalRewards {
		result.AvgRewards[k] = v / runs
	}
	return result
}

// drawCard picks one weighted card from a group pool.
func drawCard(group gamedata.CardShopGroup, src rng.Source) (gamedata.Card, bool) {
	weights := make([]float64, len(group.Cards))
	for i, card := range group.Cards {
		weights[i] = card.Weight
	}
	idx := rng.WeightedIndex(src, weights)
	if idx < 0 {
		return gamedata.Card{}, false
	}
	return group.Cards[idx], true
}
