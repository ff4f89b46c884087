// Package farming computes expected yields and AP usage for planned stage
// runs, and back-calculates additional run counts that close item deficits
// via the covering solver.
package farming

import (
	"math"
	"sort"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/solver"
	"go.uber.org/zap"
)

// Priority is the tri-state per-stage allocation preference.
type Priority string

const (
	// PriorityInclude lets the solver allocate to the stage.
	PriorityInclude Priority = "include"
	// PriorityExclude forbids any solver allocation to the stage.
	PriorityExclude Priority = "exclude"
	// PriorityPreferred wins cost-per-unit ties in the solver.
	PriorityPreferred Priority = "priority"
)

// RunPlan is the user's per-stage plan for one farming-like channel.
type RunPlan struct {
	// Runs maps stage id to a non-negative run count.
	Runs map[int]int `yaml:"runs"`
	// Priorities maps stage id to its solver preference; absent means
	// include.
	Priorities map[int]Priority `yaml:"priorities"`
	// FirstClears maps stage id to whether the one-time clear is claimed in
	// this plan.
	FirstClears map[int]bool `yaml:"firstClears"`
}

// BonusMap maps Item/Currency parcels to an aggregate drop-rate bonus in
// hundredths of a percent (2500 = +25%), aggregated externally from
// per-student selections.
type BonusMap map[parcel.Key]int

// Result is the farming channel output.
type Result struct {
	TotalItems  parcel.FlowMap
	TotalAPUsed float64
}

// Calculate sums expected yields across all planned stages. Repeatable
// rewards (Event/Default/Rare) yield runs × amount × probability, scaled by
// the drop bonus when eligible; the scaled value is ceiling-rounded only when
// the reward is event currency on a farmable stage. That asymmetry is the
// deliberate source of "expected, not guaranteed" overcounting the UI
// surfaces and must not be normalized. One-time rewards yield once, gated
// strictly on the first-clear flag, independent of run count.
func Calculate(logger *zap.Logger, stages []gamedata.Stage, plan RunPlan, bonus BonusMap, eventCurrency map[parcel.Key]bool) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Result{TotalItems: make(parcel.FlowMap)}
	for _, stage := range stages {
		runs := plan.Runs[stage.ID]
		if runs < 0 {
			logger.Warn("clamping negative run count to zero",
				zap.String("op", "farming.Calculate"),
				zap.Int("stage", stage.ID),
				zap.Int("runs", runs),
			)
			runs = 0
		}
		firstClear := plan.FirstClears[stage.ID]

		if stage.APCost > 0 {
			result.TotalAPUsed += float64(runs) * stage.APCost
			// Claiming the first clear with no repeat runs still costs the
			// clearing run itself.
			if firstClear && runs == 0 {
				result.TotalAPUsed += stage.APCost
			}
		}

		for _, rule := range stage.Rewards {
			prob := float64(rule.Probability) / constants.ProbabilityDenominator

			if rule.Category.Repeatable() {
				if runs == 0 {
					continue
				}
				yield := float64(runs) * rule.Amount * prob
				bonusApplied := false
				if rule.BonusEligible {
					if pct, ok := bonus[rule.Parcel]; ok && pct != 0 {
						yield *= 1 + float64(pct)/constants.BonusDenominator
						bonusApplied = true
					}
				}
				if bonusApplied && stage.Farmable && eventCurrency[rule.Parcel] {
					yield = math.Ceil(yield)
				}
				result.TotalItems.Add(rule.Parcel, yield, bonusApplied)
				continue
			}

			// One-time reward, independent of run count.
			if firstClear {
				result.TotalItems.Add(rule.Parcel, rule.Amount*prob, false)
			}
		}
	}
	return result
}

// ExpectedDropPerRun returns the bonus-scaled expected yield of one run for a
// single parcel; the building block of the auto-plan drop matrix.
func ExpectedDropPerRun(stage gamedata.Stage, key parcel.Key, bonus BonusMap) float64 {
	total := 0.0
	for _, rule := range stage.Rewards {
		if rule.Parcel != key || !rule.Category.Repeatable() {
			continue
		}
		yield := rule.Amount * float64(rule.Probability) / constants.ProbabilityDenominator
		if rule.BonusEligible {
			if pct, ok := bonus[key]; ok && pct != 0 {
				yield *= 1 + float64(pct)/constants.BonusDenominator
			}
		}
		total += yield
	}
	return total
}

// PlanRuns asks the solver for additional runs covering the given deficits.
// Stages marked exclude receive no allocation; the returned map holds only
// the additional counts and is merged additively by the caller, never
// overwriting manually entered runs.
func PlanRuns(logger *zap.Logger, stages []gamedata.Stage, plan RunPlan, deficits parcel.AmountMap, bonus BonusMap) (map[int]int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(deficits) == 0 || len(stages) == 0 {
		return map[int]int{}, nil
	}

	keys := make([]parcel.Key, 0, len(deficits))
	for k, amount := range deficits {
		if amount > 0 {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)

	input := solver.Input{
		DropRates: make([][]float64, len(stages)),
		Costs:     make([]float64, len(stages)),
		Needed:    make([]float64, len(keys)),
		Priority:  make([]bool, len(stages)),
		Exclude:   make([]bool, len(stages)),
	}
	for i, k := range keys {
		input.Needed[i] = deficits[k]
	}
	for s, stage := range stages {
		input.Costs[s] = stage.APCost
		row := make([]float64, len(keys))
		for i, k := range keys {
			row[i] = ExpectedDropPerRun(stage, k, bonus)
		}
		input.DropRates[s] = row
		switch plan.Priorities[stage.ID] {
		case PriorityExclude:
			input.Exclude[s] = true
		case PriorityPreferred:
			input.Priority[s] = true
		}
	}

	runs, err := solver.Solve(input)
	if err != nil {
		return nil, err
	}

	additional := make(map[int]int)
	for s, count := range runs {
		if count > 0 {
			additional[stages[s].ID] = count
		}
	}
	logger.Debug("auto-planned additional runs",
		zap.String("op", "farming.PlanRuns"),
		zap.Int("stagesAllocated", len(additional)),
	)
	return additional, nil
}

// sortKeys orders parcel keys by type then id so the solver sees a stable
// item ordering regardless of map iteration order.
func sortKeys(keys []parcel.Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].ID < keys[j].ID
	})
}
