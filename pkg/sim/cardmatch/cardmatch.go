// Package cardmatch simulates the memory/concentration minigame on a
// 12-card, 6-pair board. The simulated agent has perfect memory: it always
// matches a fully-known pair before exploring, and in the endgame it deduces
// the final pairs instead of guessing. The reported flip average is therefore
// a lower bound on real play, not an estimate of it.
package cardmatch

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// BoardCards and BoardPairs fix the board shape the event runs.
const (
	BoardCards = 12
	BoardPairs = 6
)

// Config controls one simulation.
type Config struct {
	// Clears is how many boards the plan intends to clear.
	Clears int `yaml:"clears"`
	// Runs is the Monte Carlo iteration count for the flip average.
	Runs int `yaml:"runs"`
	// FlipCost is charged per flip.
	FlipCost gamedata.ParcelAmount `yaml:"flipCost"`
	// ClearRewards are granted once per cleared board.
	ClearRewards []gamedata.ParcelAmount `yaml:"clearRewards"`
}

// Result is the averaged outcome.
type Result struct {
	AvgFlips   float64
	AvgCosts   parcel.AmountMap
	AvgRewards parcel.AmountMap
}

// Simulate estimates the average flips to clear one board, then scales the
// plan's clear count into expected costs and rewards. Runs <= 0 yields a
// zero result.
func Simulate(cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if cfg.Runs <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}

	totalFlips := 0
	for run := 0; run < cfg.Runs; run++ {
		totalFlips += playBoard(src)
	}
	result.AvgFlips = float64(totalFlips) / float64(cfg.Runs)

	if cfg.Clears > 0 {
		clears := float64(cfg.Clears)
		if cfg.FlipCost.Amount > 0 {
			result.AvgCosts.Add(cfg.FlipCost.Parcel, cfg.FlipCost.Amount*result.AvgFlips*clears)
		}
		for _, reward := range cfg.ClearRewards {
			result.AvgRewards.Add(reward.Parcel, reward.Amount*clears)
		}
	}
	return result
}

// playBoard runs one perfect-memory clear and returns the flips used.
func playBoard(src rng.Source) int {
	values := make([]int, BoardCards)
	for i := range values {
		values[i] = i / 2
	}
	rng.Shuffle(src, values)

	matched := make([]bool, BoardCards)
	knownValue := make([]int, BoardCards) // -1 when the position was never revealed
	for i := range knownValue {
		knownValue[i] = -1
	}

	flips := 0
	remaining := BoardPairs
	for remaining > 0 {
		// A fully-known pair is a guaranteed match.
		if a, b, ok := knownPair(values, matched, knownValue); ok {
			flips += 2
			matched[a], matched[b] = true, true
			remaining--
			continue
		}

		unknown := unmatchedUnknown(matched, knownValue)
		known := unmatchedKnown(matched, knownValue)

		// Endgame deduction: with two known singles and two unknown cards
		// left, the first unknown reveal identifies both remaining pairs, so
		// the last pair needs no exploratory flip.
		if len(unknown) == 2 && len(known) == 2 {
			x := unknown[0]
			flips++
			knownValue[x] = values[x]
			partner := known[0]
			if values[partner] != values[x] {
				partner = known[1]
			}
			flips++
			matched[x], matched[partner] = true, true
			remaining--
			// The final two cards are deduced, flip them straight off.
			flips += 2
			for i := range matched {
				if !matched[i] {
					matched[i] = true
				}
			}
			remaining--
			continue
		}

		// Explore: reveal a random unknown card.
		x := unknown[src.IntN(len(unknown))]
		flips++
		knownValue[x] = values[x]

		// Its partner may already be known.
		if p := partnerOf(x, values, matched, knownValue); p >= 0 {
			flips++
			matched[x], matched[p] = true, true
			remaining--
			continue
		}

		// Reveal a second unknown card; a lucky match clears the pair, any
		// other value simply becomes knowledge for a later turn.
		rest := unmatchedUnknown(matched, knownValue)
		if len(rest) == 0 {
			continue
		}
		y := rest[src.IntN(len(rest))]
		flips++
		knownValue[y] = values[y]
		if values[y] == values[x] {
			matched[x], matched[y] = true, true
			remaining--
		}
	}
	return flips
}

// knownPair finds two distinct known unmatched positions holding the same
// value.
func knownPair(values []int, matched []bool, knownValue []int) (int, int, bool) {
	seen := make(map[int]int, BoardPairs)
	for pos := range values {
		if matched[pos] || knownValue[pos] < 0 {
			continue
		}
		if prior, ok := seen[knownValue[pos]]; ok {
			return prior, pos, true
		}
		seen[knownValue[pos]] = pos
	}
	return 0, 0, false
}

// partnerOf returns a known unmatched position holding the same value as
// pos, or -1.
func partnerOf(pos int, values []int, matched []bool, knownValue []int) int {
	for p := range values {
		if p == pos || matched[p] || knownValue[p] < 0 {
			continue
		}
		if knownValue[p] == values[pos] {
			return p
		}
	}
	return -1
}

func unmatchedUnknown(matched []bool, knownValue []int) []int {
	var out []int
	for pos := range matched {
		if !matched[pos] && knownValue[pos] < 0 {
			out = append(out, pos)
		}
	}
	return out
}

func unmatchedKnown(matched []bool, knownValue []int) []int {
	var out []int
	for pos := range matched {
		if !matched[pos] && knownValue[pos] >= 0 {
			out = append(out, pos)
		}
	}
	return out
}
