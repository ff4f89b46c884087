// Package exchange holds the simplest channels: user-declared custom
// exchanges scaled by a play count, claimed-mission reward sums, and
// cumulative-point reward tiers. They carry no randomness and exist so their
// outputs conform to the same cost/reward normalization as every other
// channel.
package exchange

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

// CustomExchange is one user-declared cost/reward pair repeated Count times.
type CustomExchange struct {
	Cost   gamedata.ParcelAmount `yaml:"cost"`
	Reward gamedata.ParcelAmount `yaml:"reward"`
	Count  int                   `yaml:"count"`
}

// Result is the normalized output shared by the three calculators.
type Result struct {
	Costs   parcel.FlowMap
	Rewards parcel.FlowMap
}

// CalculateCustom linearly scales each declared exchange by its play count.
func CalculateCustom(exchanges []CustomExchange) Result {
	result := Result{
		Costs:   make(parcel.FlowMap),
		Rewards: make(parcel.FlowMap),
	}
	for _, ex := range exchanges {
		if ex.Count <= 0 {
			continue
		}
		result.Costs.Add(ex.Cost.Parcel, ex.Cost.Amount*float64(ex.Count), false)
		result.Rewards.Add(ex.Reward.Parcel, ex.Reward.Amount*float64(ex.Count), false)
	}
	return result
}

// CalculateMissions flat-sums rewards of every mission flagged claimed.
func CalculateMissions(missions []gamedata.Mission, claimed map[int]bool) Result {
	result := Result{Rewards: make(parcel.FlowMap)}
	for _, mission := range missions {
		if !claimed[mission.ID] {
			continue
		}
		for _, reward := range mission.Rewards {
			result.Rewards.Add(reward.Parcel, reward.Amount, false)
		}
	}
	return result
}

// CalculateCumulative flat-sums reward tiers whose cumulative-point threshold
// is met by points.
func CalculateCumulative(tiers []gamedata.CumulativeTier, points float64) Result {
	result := Result{Rewards: make(parcel.FlowMap)}
	for _, tier := range tiers {
		if points < tier.Threshold {
			continue
		}
		for _, reward := range tier.Rewards {
			result.Rewards.Add(reward.Parcel, reward.Amount, false)
		}
	}
	return result
}
