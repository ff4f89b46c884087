package farming

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

func baseStage() gamedata.Stage {
	return gamedata.Stage{
		ID:       1,
		Name:     "Quest 1",
		APCost:   20,
		Farmable: true,
		Rewards: []gamedata.RewardRule{
			{
				Parcel:        coinKey,
				Amount:        5,
				Probability:   5000, // 50%
				Category:      gamedata.RewardEvent,
				BonusEligible: true,
			},
		},
	}
}

func TestCalculateExpectedYield(t *testing.T) {
	result := Calculate(nil, []gamedata.Stage{baseStage()}, RunPlan{
		Runs: map[int]int{1: 10},
	}, nil, nil)

	// 10 runs × 5 × 0.5 = 25 expected drops, 10 × 20 AP spent.
	if got := result.TotalItems[coinKey].Amount; math.Abs(got-25) > 1e-9 {
		t.Errorf("yield = %v, expected 25", got)
	}
	if math.Abs(result.TotalAPUsed-200) > 1e-9 {
		t.Errorf("AP used = %v, expected 200", result.TotalAPUsed)
	}
	if result.TotalItems[coinKey].BonusApplied {
		t.Errorf("bonus flag set without a bonus")
	}
}

func TestCalculateBonusCeilsEventCurrencyOnly(t *testing.T) {
	bonus := BonusMap{coinKey: 2500} // +25%
	eventCurrency := map[parcel.Key]bool{coinKey: true}

	t.Run("Event currency on farmable stage is ceiled", func(t *testing.T) {
		result := Calculate(nil, []gamedata.Stage{baseStage()}, RunPlan{
			Runs: map[int]int{1: 3},
		}, bonus, eventCurrency)

		// 3 × 5 × 0.5 × 1.25 = 9.375, ceiled to 10.
		if got := result.TotalItems[coinKey].Amount; math.Abs(got-10) > 1e-9 {
			t.Errorf("yield = %v, expected 10", got)
		}
		if !result.TotalItems[coinKey].BonusApplied {
			t.Errorf("bonus flag not set")
		}
	})

	t.Run("Non-event parcel keeps the fraction", func(t *testing.T) {
		stage := baseStage()
		stage.Rewards[0].Parcel = itemKey
		result := Calculate(nil, []gamedata.Stage{stage}, RunPlan{
			Runs: map[int]int{1: 3},
		}, BonusMap{itemKey: 2500}, eventCurrency)

		if got := result.TotalItems[itemKey].Amount; math.Abs(got-9.375) > 1e-9 {
			t.Errorf("yield = %v, expected 9.375", got)
		}
	})

	t.Run("Non-farmable stage keeps the fraction", func(t *testing.T) {
		stage := baseStage()
		stage.Farmable = false
		result := Calculate(nil, []gamedata.Stage{stage}, RunPlan{
			Runs: map[int]int{1: 3},
		}, bonus, eventCurrency)

		if got := result.TotalItems[coinKey].Amount; math.Abs(got-9.375) > 1e-9 {
			t.Errorf("yield = %v, expected 9.375", got)
		}
	})
}

func TestCalculateOneTimeRewards(t *testing.T) {
	stage := baseStage()
	stage.Rewards = append(stage.Rewards, gamedata.RewardRule{
		Parcel:      itemKey,
		Amount:      100,
		Probability: 10000,
		Category:    gamedata.RewardFirstClear,
	})

	t.Run("Granted once with first clear regardless of runs", func(t *testing.T) {
		result := Calculate(nil, []gamedata.Stage{stage}, RunPlan{
			Runs:        map[int]int{1: 10},
			FirstClears: map[int]bool{1: true},
		}, nil, nil)

		if got := result.TotalItems[itemKey].Amount; math.Abs(got-100) > 1e-9 {
			t.Errorf("one-time reward = %v, expected 100", got)
		}
	})

	t.Run("Withheld without first clear", func(t *testing.T) {
		result := Calculate(nil, []gamedata.Stage{stage}, RunPlan{
			Runs: map[int]int{1: 10},
		}, nil, nil)

		if _, ok := result.TotalItems[itemKey]; ok {
			t.Errorf("one-time reward granted without first clear")
		}
	})

	t.Run("First clear at zero runs still costs one run", func(t *testing.T) {
		result := Calculate(nil, []gamedata.Stage{stage}, RunPlan{
			FirstClears: map[int]bool{1: true},
		}, nil, nil)

		if math.Abs(result.TotalAPUsed-20) > 1e-9 {
			t.Errorf("AP used = %v, expected 20", result.TotalAPUsed)
		}
		if got := result.TotalItems[itemKey].Amount; math.Abs(got-100) > 1e-9 {
			t.Errorf("one-time reward = %v, expected 100", got)
		}
		// No repeatable yield without repeat runs.
		if _, ok := result.TotalItems[coinKey]; ok {
			t.Errorf("repeatable reward granted at zero runs")
		}
	})
}

func TestCalculateClampsNegativeRuns(t *testing.T) {
	result := Calculate(nil, []gamedata.Stage{baseStage()}, RunPlan{
		Runs: map[int]int{1: -5},
	}, nil, nil)

	if result.TotalAPUsed != 0 {
		t.Errorf("AP used = %v, expected 0", result.TotalAPUsed)
	}
	if len(result.TotalItems) != 0 {
		t.Errorf("negative runs yielded items: %v", result.TotalItems)
	}
}

func TestExpectedDropPerRun(t *testing.T) {
	stage := baseStage()

	if got := ExpectedDropPerRun(stage, coinKey, nil); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected drop = %v, expected 2.5", got)
	}
	if got := ExpectedDropPerRun(stage, coinKey, BonusMap{coinKey: 2500}); math.Abs(got-3.125) > 1e-9 {
		t.Errorf("bonus drop = %v, expected 3.125", got)
	}
	if got := ExpectedDropPerRun(stage, itemKey, nil); got != 0 {
		t.Errorf("drop for absent parcel = %v, expected 0", got)
	}
}

func TestPlanRunsClosesDeficit(t *testing.T) {
	stages := []gamedata.Stage{baseStage()}
	deficits := parcel.AmountMap{coinKey: 10}

	additional, err := PlanRuns(nil, stages, RunPlan{}, deficits, nil)
	if err != nil {
		t.Fatalf("PlanRuns() error = %v", err)
	}

	// 10 needed / 2.5 per run = 4 runs.
	if additional[1] != 4 {
		t.Errorf("additional runs = %v, expected 4 on stage 1", additional)
	}
}

func TestPlanRunsHonorsExclusion(t *testing.T) {
	cheap := baseStage()
	expensive := baseStage()
	expensive.ID = 2
	expensive.APCost = 40

	additional, err := PlanRuns(nil, []gamedata.Stage{cheap, expensive}, RunPlan{
		Priorities: map[int]Priority{1: PriorityExclude},
	}, parcel.AmountMap{coinKey: 5}, nil)
	if err != nil {
		t.Fatalf("PlanRuns() error = %v", err)
	}

	if _, ok := additional[1]; ok {
		t.Errorf("excluded stage received allocation: %v", additional)
	}
	if additional[2] == 0 {
		t.Errorf("remaining stage received no allocation")
	}
}

func TestPlanRunsEmptyDeficits(t *testing.T) {
	additional, err := PlanRuns(nil, []gamedata.Stage{baseStage()}, RunPlan{}, parcel.AmountMap{}, nil)
	if err != nil {
		t.Fatalf("PlanRuns() error = %v", err)
	}
	if len(additional) != 0 {
		t.Errorf("expected no additional runs, got %v", additional)
	}
}
