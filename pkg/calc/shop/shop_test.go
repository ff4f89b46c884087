package shop

import (
	"math"
	"testing"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

var (
	coinKey = parcel.Key{Type: parcel.TypeCurrency, ID: 100}
	itemKey = parcel.Key{Type: parcel.TypeItem, ID: 200}
)

func catalog() gamedata.Shop {
	return gamedata.Shop{
		ID:   1,
		Name: "Exchange",
		Entries: []gamedata.ShopEntry{
			{
				ID:            1,
				Cost:          gamedata.ParcelAmount{Parcel: coinKey, Amount: 50},
				Reward:        gamedata.ParcelAmount{Parcel: itemKey, Amount: 1},
				PurchaseLimit: 3,
			},
			{
				ID:     2,
				Cost:   gamedata.ParcelAmount{Parcel: coinKey, Amount: 10},
				Reward: gamedata.ParcelAmount{Parcel: itemKey, Amount: 2},
				// No limit: unlimited stock.
			},
		},
	}
}

func TestCalculateSumsCostsAndRewards(t *testing.T) {
	result := Calculate(nil, catalog(), map[int]int{1: 2, 2: 5}, nil)

	// Entry 1: 2 × 50 coins; entry 2: 5 × 10 coins.
	if got := result.Costs[coinKey].Amount; math.Abs(got-150) > 1e-9 {
		t.Errorf("cost = %v, expected 150", got)
	}
	// Entry 1: 2 × 1 item; entry 2: 5 × 2 items.
	if got := result.Rewards[itemKey].Amount; math.Abs(got-12) > 1e-9 {
		t.Errorf("reward = %v, expected 12", got)
	}
}

func TestCalculateClampsToRemainingStock(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		already  int
		expected float64 // item reward after clamping
	}{
		{"Within limit", 2, 0, 2},
		{"Clamped to limit", 10, 0, 3},
		{"Clamped to remaining", 10, 2, 1},
		{"Sold out", 5, 3, 0},
		{"Over-purchased already", 5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(nil, catalog(),
				map[int]int{1: tt.count},
				map[int]int{1: tt.already})

			got := result.Rewards[itemKey].Amount
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("reward = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCalculateUnlimitedEntryNeverClamps(t *testing.T) {
	result := Calculate(nil, catalog(), map[int]int{2: 1000}, map[int]int{2: 999})

	if got := result.Rewards[itemKey].Amount; math.Abs(got-2000) > 1e-9 {
		t.Errorf("reward = %v, expected 2000", got)
	}
}

func TestCalculateIgnoresNonPositiveCounts(t *testing.T) {
	result := Calculate(nil, catalog(), map[int]int{1: 0, 2: -3}, nil)

	if len(result.Costs) != 0 || len(result.Rewards) != 0 {
		t.Errorf("non-positive counts produced flows: %+v", result)
	}
}
