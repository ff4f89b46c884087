// Package shop nets planned purchases against their costs for one exchange
// catalog.
package shop

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"go.uber.org/zap"
)

// Result is the shop channel output. Costs carry positive magnitudes; the
// ledger negates them on aggregation.
type Result struct {
	Costs   parcel.FlowMap
	Rewards parcel.FlowMap
}

// Calculate sums cost and reward goods over every catalog entry with a
// positive purchase count. Counts are clamped to the remaining stock
// (purchase limit minus already purchased; a limit of 0 means unlimited) —
// the clamp must hold because downstream aggregation assumes it, even though
// input validation is a UI concern.
func Calculate(logger *zap.Logger, catalog gamedata.Shop, purchaseCounts map[int]int, alreadyPurchased map[int]int) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Result{
		Costs:   make(parcel.FlowMap),
		Rewards: make(parcel.FlowMap),
	}
	for _, entry := range catalog.Entries {
		count := purchaseCounts[entry.ID]
		if count <= 0 {
			continue
		}
		if entry.PurchaseLimit > 0 {
			remaining := entry.PurchaseLimit - alreadyPurchased[entry.ID]
			if remaining < 0 {
				remaining = 0
			}
			if count > remaining {
				logger.Debug("clamping purchase count to remaining stock",
					zap.String("op", "shop.Calculate"),
					zap.Int("shop", catalog.ID),
					zap.Int("entry", entry.ID),
					zap.Int("requested", count),
					zap.Int("remaining", remaining),
				)
				count = remaining
			}
		}
		if count == 0 {
			continue
		}
		result.Costs.Add(entry.Cost.Parcel, entry.Cost.Amount*float64(count), false)
		result.Rewards.Add(entry.Reward.Parcel, entry.Reward.Amount*float64(count), false)
	}
	return result
}
