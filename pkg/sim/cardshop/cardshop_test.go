package cardshop

import (
	"math"
	"testing"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

var (
	coinKey   = parcel.Key{Type: parcel.TypeCurrency, ID: 100}
	commonKey = parcel.Key{Type: parcel.TypeItem, ID: 200}
	rareKey   = parcel.Key{Type: parcel.TypeItem, ID: 201}
)

func table() *gamedata.CardShopTable {
	common := gamedata.Card{Rarity: 1, Weight: 1, Reward: gamedata.ParcelAmount{Parcel: commonKey, Amount: 1}}
	rare := gamedata.Card{Rarity: 3, Weight: 1, Reward: gamedata.ParcelAmount{Parcel: rareKey, Amount: 1}}
	return &gamedata.CardShopTable{
		Groups: []gamedata.CardShopGroup{
			{Cards: []gamedata.Card{common}},
			{Cards: []gamedata.Card{common, rare}},
			{Cards: []gamedata.Card{rare}},
		},
		RareThreshold: 3,
		DrawsPerRound: 4,
		DrawCost:      gamedata.ParcelAmount{Parcel: coinKey, Amount: 5},
	}
}

func TestSimulateOpenAllDrawsFullAllowance(t *testing.T) {
	result := Simulate(table(), Config{Rounds: 3, Strategy: StrategyOpenAll, Runs: 200}, rng.NewSeeded(1))

	// openAll always draws 4 per round, 3 rounds.
	if math.Abs(result.AvgDraws-12) > 1e-9 {
		t.Errorf("AvgDraws = %v, expected 12", result.AvgDraws)
	}
	if got := result.AvgCosts[coinKey]; math.Abs(got-60) > 1e-9 {
		t.Errorf("cost = %v, expected 60", got)
	}
}

func TestSimulateOpenOneDrawsOncePerRound(t *testing.T) {
	result := Simulate(table(), Config{Rounds: 5, Strategy: StrategyOpenOne, Runs: 100}, rng.NewSeeded(2))

	if math.Abs(result.AvgDraws-5) > 1e-9 {
		t.Errorf("AvgDraws = %v, expected 5", result.AvgDraws)
	}
}

func TestSimulateStopOnRareDrawsFewer(t *testing.T) {
	openAll := Simulate(table(), Config{Rounds: 10, Strategy: StrategyOpenAll, Runs: 1000}, rng.NewSeeded(3))
	stopping := Simulate(table(), Config{Rounds: 10, Strategy: StrategyStopOnRare, Runs: 1000}, rng.NewSeeded(3))

	if stopping.AvgDraws >= openAll.AvgDraws {
		t.Errorf("stopOnRare draws %v, not below openAll %v", stopping.AvgDraws, openAll.AvgDraws)
	}
}

func TestSimulateGroupAdvancesOnlyOnNonRare(t *testing.T) {
	// Group 0 holds only common cards and group 2 only rare cards; the first
	// draw is always common, so with one draw per round the second round draws
	// from group 1.
	result := Simulate(table(), Config{Rounds: 1, Strategy: StrategyOpenOne, Runs: 50}, rng.NewSeeded(4))

	// One draw from group 0 is always the common card.
	if got := result.AvgRewards[commonKey]; math.Abs(got-1) > 1e-9 {
		t.Errorf("common reward = %v, expected 1", got)
	}
	if _, ok := result.AvgRewards[rareKey]; ok {
		t.Errorf("rare card drawn from the all-common first group")
	}
}

func TestSimulateDefaultDrawAllowance(t *testing.T) {
	tbl := table()
	tbl.DrawsPerRound = 0 // defaults to 4

	result := Simulate(tbl, Config{Rounds: 1, Strategy: StrategyOpenAll, Runs: 10}, rng.NewSeeded(5))
	if math.Abs(result.AvgDraws-4) > 1e-9 {
		t.Errorf("AvgDraws = %v, expected default allowance 4", result.AvgDraws)
	}
}

func TestSimulateGuards(t *testing.T) {
	tests := []struct {
		name  string
		table *gamedata.CardShopTable
		cfg   Config
	}{
		{"Nil table", nil, Config{Rounds: 1, Runs: 10}},
		{"No groups", &gamedata.CardShopTable{}, Config{Rounds: 1, Runs: 10}},
		{"Zero runs", table(), Config{Rounds: 1, Runs: 0}},
		{"Zero rounds", table(), Config{Rounds: 0, Runs: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Simulate(tt.table, tt.cfg, rng.NewSeeded(1))
			if result.AvgDraws != 0 || len(result.AvgRewards) != 0 {
				t.Errorf("expected zero result, got %+v", result)
			}
		})
	}
}
