// Package dicerace simulates the dice-race minigame: a random walk on a
// circular board whose nodes grant rewards, force moves, or do nothing.
// Fixed dice held in inventory are spent preferentially when their landing
// node is in the user's priority set; otherwise a fair six-sided die is
// rolled. A hard roll ceiling guarantees termination even when the target is
// unreachable.
package dicerace

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// Config controls one simulation.
type Config struct {
	Runs int `yaml:"runs"`
	// FixedDice are deterministic move values held in inventory per trial.
	FixedDice []int `yaml:"fixedDice"`
	// PriorityNodes are board indices worth spending a fixed die to land on.
	PriorityNodes []int `yaml:"priorityNodes"`
	// TargetLaps/TargetPosition terminate a trial once the walker has
	// completed TargetLaps laps and sits at or past TargetPosition. A zero
	// TargetLaps disables the positional target.
	TargetLaps     int `yaml:"targetLaps"`
	TargetPosition int `yaml:"targetPosition"`
	// TargetItem terminates a trial once the accumulated amount of its
	// parcel reaches its amount. A zero amount disables the item target.
	TargetItem gamedata.ParcelAmount `yaml:"targetItem"`
}

// Result is the per-trial average outcome.
type Result struct {
	AvgRolls   float64
	AvgCosts   parcel.AmountMap
	AvgRewards parcel.AmountMap
}

// Simulate runs cfg.Runs trials. A nil board, an empty node list, or a
// non-positive run count yields a zero result. Every trial returns within
// the roll ceiling regardless of the configured targets.
func Simulate(board *gamedata.DiceRaceBoard, cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if board == nil || len(board.Nodes) == 0 || cfg.Runs <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}

	priority := make(map[int]bool, len(cfg.PriorityNodes))
	for _, node := range cfg.PriorityNodes {
		priority[node] = true
	}

	totalRolls := 0
	totalRewards := make(parcel.AmountMap)

	for run := 0; run < cfg.Runs; run++ {
		trial := trialState{
			board:    board,
			priority: priority,
			dice:     append([]int(nil), cfg.FixedDice...),
			gained:   make(parcel.AmountMap),
			src:      src,
		}
		trial.run(cfg)
		totalRolls += trial.rolls
		totalRewards.Merge(trial.gained)
	}

	runs := float64(cfg.Runs)
	result.AvgRolls = float64(totalRolls) / runs
	if board.RollCost.Amount > 0 {
		result.AvgCosts.Add(board.RollCost.Parcel, board.RollCost.Amount*result.AvgRolls)
	}
	for k, v := range totalRewards {
		result.AvgRewards[k] = v / runs
	}
	return result
}

type trialState struct {
	board    *gamedata.DiceRaceBoard
	priority map[int]bool
	dice     []int
	gained   parcel.AmountMap
	src      rng.Source

	pos   int
	lap   int
	rolls int
}

func (t *trialState) run(cfg Config) {
	for t.rolls < constants.MaxDiceRaceRolls {
		if t.done(cfg) {
			return
		}
		move := t.pickMove()
		t.rolls++
		t.advance(move)
		t.applyNode()
	}
}

// done checks both termination targets; with neither configured the trial
// runs to the ceiling.
func (t *trialState) done(cfg Config) bool {
	if cfg.TargetLaps > 0 {
		if t.lap > cfg.TargetLaps || (t.lap == cfg.TargetLaps && t.pos >= cfg.TargetPosition) {
			return true
		}
	}
	if cfg.TargetItem.Amount > 0 && t.gained[cfg.TargetItem.Parcel] >= cfg.TargetItem.Amount {
		return true
	}
	return false
}

// pickMove spends the first held fixed die whose landing node is in the
// priority set, otherwise rolls a fair d6.
func (t *trialState) pickMove() int {
	n := len(t.board.Nodes)
	for i, value := range t.dice {
		if t.priority[(t.pos+value)%n] {
			t.dice = append(t.dice[:i], t.dice[i+1:]...)
			return value
		}
	}
	return 1 + t.src.IntN(6)
}

// advance moves the walker, counting laps and granting the lap bonus on each
// completed circuit.
func (t *trialState) advance(move int) {
	n := len(t.board.Nodes)
	t.pos += move
	for t.pos >= n {
		t.pos -= n
		t.lap++
		for _, bonus := range t.board.LapBonus {
			t.gained.Add(bonus.Parcel, bonus.Amount)
		}
	}
	for t.pos < 0 {
		// Backward forced moves wrap without un-counting a lap.
		t.pos += n
	}
}

// applyNode resolves the landing node's effect. Forced moves resolve the
// destination node's rewards but do not chain further forced moves.
func (t *trialState) applyNode() {
	node := t.board.Nodes[t.pos]
	switch node.Effect {
	case gamedata.DiceEffectReward:
		for _, reward := range node.Rewards {
			t.gained.Add(reward.Parcel, reward.Amount)
		}
	case gamedata.DiceEffectMove:
		if node.Move == 0 {
			return
		}
		t.advance(node.Move)
		landed := t.board.Nodes[t.pos]
		if landed.Effect == gamedata.DiceEffectReward {
			for _, reward := range landed.Rewards {
				t.gained.Add(reward.Parcel, reward.Amount)
			}
		}
	}
}
