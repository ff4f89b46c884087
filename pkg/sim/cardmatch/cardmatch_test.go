package cardmatch

import (
	"math"
	"testing"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

var (
	coinKey  = parcel.Key{Type: parcel.TypeCurrency, ID: 100}
	prizeKey = parcel.Key{Type: parcel.TypeItem, ID: 200}
)

func TestSimulateFlipAverageBand(t *testing.T) {
	result := Simulate(Config{Clears: 1, Runs: 2000}, rng.NewSeeded(1))

	// A perfect-memory agent on 6 pairs needs at least 12 flips and with
	// exploration overhead stays well under 18 on average.
	if result.AvgFlips < 10 || result.AvgFlips > 18 {
		t.Errorf("AvgFlips = %v, expected within [10, 18]", result.AvgFlips)
	}
}

func TestSimulateCostsScaleWithClears(t *testing.T) {
	cfg := Config{
		Clears:   3,
		Runs:     1000,
		FlipCost: gamedata.ParcelAmount{Parcel: coinKey, Amount: 2},
		ClearRewards: []gamedata.ParcelAmount{
			{Parcel: prizeKey, Amount: 5},
		},
	}
	result := Simulate(cfg, rng.NewSeeded(2))

	wantCost := 2 * result.AvgFlips * 3
	if got := result.AvgCosts[coinKey]; math.Abs(got-wantCost) > 1e-9 {
		t.Errorf("cost = %v, expected %v", got, wantCost)
	}
	if got := result.AvgRewards[prizeKey]; math.Abs(got-15) > 1e-9 {
		t.Errorf("reward = %v, expected 15", got)
	}
}

func TestSimulateZeroClearsEstimatesOnly(t *testing.T) {
	cfg := Config{
		Clears:   0,
		Runs:     100,
		FlipCost: gamedata.ParcelAmount{Parcel: coinKey, Amount: 2},
	}
	result := Simulate(cfg, rng.NewSeeded(3))

	if result.AvgFlips <= 0 {
		t.Errorf("AvgFlips = %v, expected positive estimate", result.AvgFlips)
	}
	if len(result.AvgCosts) != 0 || len(result.AvgRewards) != 0 {
		t.Errorf("zero clears produced flows: %+v", result)
	}
}

func TestSimulateZeroRuns(t *testing.T) {
	result := Simulate(Config{Clears: 1, Runs: 0}, rng.NewSeeded(4))
	if result.AvgFlips != 0 || len(result.AvgCosts) != 0 {
		t.Errorf("expected zero result, got %+v", result)
	}
}

func TestSimulateSeededReproducible(t *testing.T) {
	cfg := Config{Clears: 1, Runs: 500}
	first := Simulate(cfg, rng.NewSeeded(11))
	second := Simulate(cfg, rng.NewSeeded(11))

	if first.AvgFlips != second.AvgFlips {
		t.Errorf("seeded runs diverged: %v vs %v", first.AvgFlips, second.AvgFlips)
	}
}

func TestPlayBoardTerminatesAndIsBounded(t *testing.T) {
	src := rng.NewSeeded(5)
	for i := 0; i < 500; i++ {
		flips := playBoard(src)
		// Every pair costs at least two flips; a perfect-memory agent never
		// needs more flips than twice the worst-case exploration.
		if flips < BoardCards {
			t.Fatalf("playBoard() = %d flips, below the %d minimum", flips, BoardCards)
		}
		if flips > 3*BoardCards {
			t.Fatalf("playBoard() = %d flips, above any plausible bound", flips)
		}
	}
}
