// Package dreammaker simulates the dream-maker life-sim channel: a fixed
// horizon of days × actions, stats shifted probabilistically by each chosen
// action, daily event points from a piecewise function of summed stats, and
// loop endings gated by stat thresholds with first-time versus repeat reward
// tiers. Stats carry over between loops at a configured rate, so one trial
// simulates a whole chain of loops.
package dreammaker

import (
	"math"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// Strategy selects which action the simulated player takes each step.
type Strategy string

const (
	// StrategyMissionPriority pushes the stat furthest below the next
	// unreached ending threshold.
	StrategyMissionPriority Strategy = "missionPriority"
	// StrategyPointOptimal maximizes expected total stat gain, and thereby
	// daily event points.
	StrategyPointOptimal Strategy = "pointOptimal"
)

// Config controls one simulation.
type Config struct {
	Runs     int      `yaml:"runs"`
	Loops    int      `yaml:"loops"`
	Strategy Strategy `yaml:"strategy"`
}

// Result is the per-trial average outcome. AvgPoints duplicates the point
// parcel inside AvgRewards for channel-specific detail views.
type Result struct {
	AvgCosts   parcel.AmountMap
	AvgRewards parcel.AmountMap
	AvgPoints  float64
}

// Simulate runs cfg.Runs trials of cfg.Loops loops each. A nil table, an
// empty action list, or a non-positive run count yields a zero result.
func Simulate(table *gamedata.DreamTable, cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if table == nil || len(table.Actions) == 0 || len(table.Parameters) == 0 ||
		cfg.Runs <= 0 || cfg.Loops <= 0 || table.Days <= 0 || table.ActionsPerDay <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}

	totalCosts := make(parcel.AmountMap)
	totalRewards := make(parcel.AmountMap)
	totalPoints := 0.0

	for run := 0; run < cfg.Runs; run++ {
		trial := newTrial(table, cfg.Strategy, src)
		for loop := 0; loop < cfg.Loops; loop++ {
			trial.playLoop()
		}
		totalCosts.Merge(trial.costs)
		totalRewards.Merge(trial.rewards)
		totalPoints += trial.points
	}

	runs := float64(cfg.Runs)
	for k, v := range totalCosts {
		result.AvgCosts[k] = v / runs
	}
	for k, v := range totalRewards {
		result.AvgRewards[k] = v / runs
	}
	result.AvgPoints = totalPoints / runs
	if table.PointParcel != (parcel.Key{}) {
		result.AvgRewards.Add(table.PointParcel, result.AvgPoints)
	}
	return result
}

type trial struct {
	table    *gamedata.DreamTable
	strategy Strategy
	src      rng.Source

	base       []float64 // loop starting values, advanced by carryover
	stats      []float64 // current loop values
	seenEnding map[string]bool

	costs   parcel.AmountMap
	rewards parcel.AmountMap
	points  float64
}

func newTrial(table *gamedata.DreamTable, strategy Strategy, src rng.Source) *trial {
	base := make([]float64, len(table.Parameters))
	for i, param := range table.Parameters {
		base[i] = clamp(param.Base, param.Min, param.Max)
	}
	return &trial{
		table:      table,
		strategy:   strategy,
		src:        src,
		base:       base,
		seenEnding: make(map[string]bool),
		costs:      make(parcel.AmountMap),
		rewards:    make(parcel.AmountMap),
	}
}

// playLoop runs one full loop: every action of every day, daily points, the
// ending evaluated strictly after the last action of the last day, then the
// carryover into the next loop's base.
func (t *trial) playLoop() {
	t.stats = append([]float64(nil), t.base...)

	for day := 0; day < t.table.Days; day++ {
		for step := 0; step < t.table.ActionsPerDay; step++ {
			t.takeAction(t.chooseAction())
		}
		t.points += t.dailyPoints()
	}

	t.resolveEnding()
	t.carryOver()
}

func (t *trial) takeAction(action gamedata.DreamAction) {
	if action.Cost.Amount > 0 {
		t.costs.Add(action.Cost.Parcel, action.Cost.Amount)
	}
	for _, effect := range action.Effects {
		if effect.Param < 0 || effect.Param >= len(t.stats) {
			continue
		}
		if !rng.Chance(t.src, effect.Probability) {
			continue
		}
		shift := effect.Min + t.src.Float64()*(effect.Max-effect.Min)
		param := t.table.Parameters[effect.Param]
		t.stats[effect.Param] = clamp(t.stats[effect.Param]+shift, param.Min, param.Max)
	}
	for _, reward := range action.Rewards {
		t.rewards.Add(reward.Parcel, reward.Amount)
	}
}

// chooseAction applies the configured strategy to the current stats.
func (t *trial) chooseAction() gamedata.DreamAction {
	if t.strategy == StrategyMissionPriority {
		if target := t.neediestParam(); target >= 0 {
			return t.bestActionFor(target)
		}
	}
	// Point-optimal: maximize expected total stat gain.
	best := 0
	bestGain := math.Inf(-1)
	for i, action := range t.table.Actions {
		gain := 0.0
		for _, effect := range action.Effects {
			gain += expectedShift(effect)
		}
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	return t.table.Actions[best]
}

// neediestParam returns the parameter furthest below the first not-yet-seen
// ending's threshold, or -1 when every threshold is already met.
func (t *trial) neediestParam() int {
	for _, ending := range t.table.Endings {
		if t.seenEnding[ending.Name] {
			continue
		}
		target := -1
		worst := 0.0
		for i, threshold := range ending.Thresholds {
			if i >= len(t.stats) {
				break
			}
			gap := threshold - t.stats[i]
			if gap > worst {
				target, worst = i, gap
			}
		}
		if target >= 0 {
			return target
		}
	}
	return -1
}

func (t *trial) bestActionFor(param int) gamedata.DreamAction {
	best := 0
	bestGain := math.Inf(-1)
	for i, action := range t.table.Actions {
		gain := 0.0
		for _, effect := range action.Effects {
			if effect.Param == param {
				gain += expectedShift(effect)
			}
		}
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	return t.table.Actions[best]
}

func expectedShift(effect gamedata.DreamEffect) float64 {
	return effect.Probability * (effect.Min + effect.Max) / 2
}

// dailyPoints returns the points of the highest band whose summed-stat floor
// is met.
func (t *trial) dailyPoints() float64 {
	total := 0.0
	for _, v := range t.stats {
		total += v
	}
	points := 0.0
	floor := math.Inf(-1)
	for _, band := range t.table.PointBands {
		if total >= band.MinTotal && band.MinTotal >= floor {
			points = band.Points
			floor = band.MinTotal
		}
	}
	return points
}

// resolveEnding grants the first ending whose thresholds the final stats
// meet, using the first-time tier once per ending type within the trial.
// With no matching thresholds the last declared ending is the fallback.
func (t *trial) resolveEnding() {
	if len(t.table.Endings) == 0 {
		return
	}
	chosen := t.table.Endings[len(t.table.Endings)-1]
	for _, ending := range t.table.Endings {
		if t.meetsThresholds(ending) {
			chosen = ending
			break
		}
	}

	tier := chosen.RepeatRewards
	if !t.seenEnding[chosen.Name] {
		tier = chosen.FirstRewards
		t.seenEnding[chosen.Name] = true
	}
	for _, reward := range tier {
		t.rewards.Add(reward.Parcel, reward.Amount)
	}
}

func (t *trial) meetsThresholds(ending gamedata.DreamEnding) bool {
	for i, threshold := range ending.Thresholds {
		if i >= len(t.stats) {
			break
		}
		if t.stats[i] < threshold {
			return false
		}
	}
	return true
}

// carryOver advances the loop base: base + floor(final × rate), capped at
// the parameter maximum and clamped to its range.
func (t *trial) carryOver() {
	for i, param := range t.table.Parameters {
		carried := t.base[i] + math.Floor(t.stats[i]*param.CarryoverRate)
		if carried > param.Max {
			carried = param.Max
		}
		t.base[i] = clamp(carried, param.Min, param.Max)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
