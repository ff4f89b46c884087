// Package solver computes additional run counts that close per-item deficits
// at minimum AP cost. It is a greedy iterative heuristic over a covering
// problem, not an exact LP: it repeatedly satisfies the most deficient item
// via the cheapest stage for that item. The specific tie-break rules
// (cost-per-unit, then priority flag, then stage index) are part of the
// contract; an exact solver would produce different, equally feasible
// allocations and downstream displays depend on this one's.
package solver

import (
	"fmt"
	"math"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/mathutil"
)

// Input describes one covering problem.
type Input struct {
	// DropRates[s][i] is the expected yield of item i per run of stage s.
	DropRates [][]float64
	// Costs[s] is the AP cost of one run of stage s. Stages with a
	// non-positive cost would make the objective unbounded and are skipped.
	Costs []float64
	// Needed[i] is the outstanding deficit of item i; non-positive entries
	// are already satisfied.
	Needed []float64
	// Priority marks stages preferred on cost-per-unit ties.
	Priority []bool
	// Exclude marks stages that must receive zero allocation.
	Exclude []bool
}

// Solve returns the additional run count per stage. Items no non-excluded
// stage can supply are left unresolved silently; the projected balance
// downstream still reports the shortfall honestly. The result is always
// non-negative and deterministic for identical inputs.
func Solve(in Input) ([]int, error) {
	stages := len(in.Costs)
	items := len(in.Needed)
	if len(in.DropRates) != stages {
		return nil, fmt.Errorf("drop matrix has %d stages, costs have %d", len(in.DropRates), stages)
	}
	for s, row := range in.DropRates {
		if len(row) != items {
			return nil, fmt.Errorf("drop matrix stage %d has %d items, needed has %d", s, len(row), items)
		}
	}
	if in.Priority != nil && len(in.Priority) != stages {
		return nil, fmt.Errorf("priority flags have %d stages, costs have %d", len(in.Priority), stages)
	}
	if in.Exclude != nil && len(in.Exclude) != stages {
		return nil, fmt.Errorf("exclude flags have %d stages, costs have %d", len(in.Exclude), stages)
	}

	runs := make([]int, stages)
	covered := make([]float64, items)
	unreachable := make([]bool, items)

	for {
		target := pickDeficientItem(in.Needed, covered, unreachable)
		if target < 0 {
			break
		}

		stage := pickStage(in, target)
		if stage < 0 {
			// No stage drops this item; leave the shortfall in place.
			unreachable[target] = true
			continue
		}

		remaining := in.Needed[target] - covered[target]
		alloc := int(mathutil.CeilPositive(remaining / in.DropRates[stage][target]))
		if alloc < 1 {
			alloc = 1
		}
		runs[stage] += alloc
		for i := 0; i < items; i++ {
			covered[i] += float64(alloc) * in.DropRates[stage][i]
		}
	}

	return runs, nil
}

// pickDeficientItem returns the index of the largest unmet deficit, or -1
// when every item is satisfied or unreachable. Ties resolve to the lower item
// index for determinism.
func pickDeficientItem(needed, covered []float64, unreachable []bool) int {
	best := -1
	bestRemaining := 0.0
	for i := range needed {
		if unreachable[i] || needed[i] <= 0 {
			continue
		}
		remaining := needed[i] - covered[i]
		if !mathutil.IsPositive(remaining) {
			continue
		}
		if best < 0 || remaining > bestRemaining {
			best = i
			bestRemaining = remaining
		}
	}
	return best
}

// pickStage returns the stage with the best AP-per-unit ratio for the target
// item among stages that are not excluded, have a positive cost, and actually
// drop the item. Ties prefer the priority flag, then the lower stage index.
func pickStage(in Input, target int) int {
	best := -1
	bestRatio := math.Inf(1)
	for s := range in.Costs {
		if in.Exclude != nil && in.Exclude[s] {
			continue
		}
		if in.Costs[s] <= 0 {
			continue
		}
		drop := in.DropRates[s][target]
		if !mathutil.IsPositive(drop) {
			continue
		}
		ratio := in.Costs[s] / drop
		switch {
		case best < 0 || ratio < bestRatio-1e-12:
			best = s
			bestRatio = ratio
		case mathutil.WithinTolerance(ratio, bestRatio, 1e-12):
			if in.Priority != nil && in.Priority[s] && !(in.Priority[best]) {
				best = s
				bestRatio = ratio
			}
		}
	}
	return best
}
