// Package treasure simulates the treasure-hunt minigame: rectangular
// treasures hidden on a grid, opened one cell at a time. Placement uses
// rejection sampling with a bounded retry budget; an infeasible packing falls
// back to the full-board worst case rather than silently reporting zero.
// Completing partially-found treasures always takes priority over
// exploration, whatever the search strategy.
package treasure

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
)

// Strategy selects how unexplored cells are chosen.
type Strategy string

const (
	// StrategyCheckerboard scans alternating cells first, then the rest.
	StrategyCheckerboard Strategy = "checkerboard"
	// StrategyProbability opens the cell most likely to cover an unfound
	// treasure given everything opened so far.
	StrategyProbability Strategy = "probability"
	// StrategyCustom follows a user-recorded click sequence, falling back to
	// checkerboard once it is exhausted.
	StrategyCustom Strategy = "custom"
)

// Goal selects the termination condition.
type Goal string

const (
	// GoalAll stops once every treasure is found.
	GoalAll Goal = "all"
	// GoalLargest stops once the largest-footprint treasure is found.
	GoalLargest Goal = "largest"
)

// Config controls one simulation.
type Config struct {
	Runs     int      `yaml:"runs"`
	Strategy Strategy `yaml:"strategy"`
	Goal     Goal     `yaml:"goal"`
	// CustomSequence holds row-major cell indices for StrategyCustom.
	CustomSequence []int `yaml:"customSequence"`
}

// Result is the per-trial average outcome.
type Result struct {
	AvgOpens   float64
	AvgCosts   parcel.AmountMap
	AvgRewards parcel.AmountMap
}

// Simulate runs cfg.Runs trials. A nil map, an empty grid, or a non-positive
// run count yields a zero result.
func Simulate(table *gamedata.TreasureMap, cfg Config, src rng.Source) Result {
	result := Result{
		AvgCosts:   make(parcel.AmountMap),
		AvgRewards: make(parcel.AmountMap),
	}
	if table == nil || table.Width <= 0 || table.Height <= 0 || cfg.Runs <= 0 {
		return result
	}
	if src == nil {
		src = rng.Default()
	}

	totalOpens := 0
	totalRewards := make(parcel.AmountMap)

	for run := 0; run < cfg.Runs; run++ {
		opens, rewards := runTrial(table, cfg, src)
		totalOpens += opens
		totalRewards.Merge(rewards)
	}

	runs := float64(cfg.Runs)
	result.AvgOpens = float64(totalOpens) / runs
	if table.OpenCost.Amount > 0 {
		result.AvgCosts.Add(table.OpenCost.Parcel, table.OpenCost.Amount*result.AvgOpens)
	}
	for k, v := range totalRewards {
		result.AvgRewards[k] = v / runs
	}
	return result
}

// board holds one trial's hidden layout and open state. cellOwner is -1 for
// empty cells, else the treasure index covering the cell.
type board struct {
	table     *gamedata.TreasureMap
	cellOwner []int
	opened    []bool
	foundCell []int // opened cells per treasure
	cells     []int // total cells per treasure
}

func runTrial(table *gamedata.TreasureMap, cfg Config, src rng.Source) (int, parcel.AmountMap) {
	b, ok := placeTreasures(table, src)
	if !ok {
		// Conservative fallback for an infeasible packing: the full board is
		// opened and every treasure reward granted.
		rewards := make(parcel.AmountMap)
		for _, treasure := range table.Treasures {
			for _, reward := range treasure.Rewards {
				rewards.Add(reward.Parcel, reward.Amount)
			}
		}
		return table.Width * table.Height, rewards
	}

	rewards := make(parcel.AmountMap)
	opens := 0
	customNext := 0
	totalCells := table.Width * table.Height

	for opens < totalCells && !b.goalMet(cfg.Goal) {
		cell := b.nextIncompleteNeighbor()
		if cell < 0 {
			cell, customNext = b.nextExploreCell(cfg, customNext, src)
		}
		if cell < 0 {
			break
		}
		b.opened[cell] = true
		opens++
		if owner := b.cellOwner[cell]; owner >= 0 {
			b.foundCell[owner]++
			if b.foundCell[owner] == b.cells[owner] {
				for _, reward := range table.Treasures[owner].Rewards {
					rewards.Add(reward.Parcel, reward.Amount)
				}
			}
		}
	}
	return opens, rewards
}

// placeTreasures rejection-samples non-overlapping placements, rebuilding
// the whole board when a treasure exhausts its per-treasure budget. Returns
// false when the rebuild budget is exhausted too.
func placeTreasures(table *gamedata.TreasureMap, src rng.Source) (*board, bool) {
	for rebuild := 0; rebuild < constants.MaxTreasureBoardRebuilds; rebuild++ {
		b := &board{
			table:     table,
			cellOwner: make([]int, table.Width*table.Height),
			opened:    make([]bool, table.Width*table.Height),
			foundCell: make([]int, len(table.Treasures)),
			cells:     make([]int, len(table.Treasures)),
		}
		for i := range b.cellOwner {
			b.cellOwner[i] = -1
		}
		if b.tryPlaceAll(src) {
			return b, true
		}
	}
	return nil, false
}

func (b *board) tryPlaceAll(src rng.Source) bool {
	for ti, treasure := range b.table.Treasures {
		if treasure.Width <= 0 || treasure.Height <= 0 ||
			treasure.Width > b.table.Width || treasure.Height > b.table.Height {
			return false
		}
		placed := false
		for try := 0; try < constants.MaxTreasurePlacementTries; try++ {
			x := src.IntN(b.table.Width - treasure.Width + 1)
			y := src.IntN(b.table.Height - treasure.Height + 1)
			if b.fits(x, y, treasure.Width, treasure.Height) {
				b.occupy(ti, x, y, treasure.Width, treasure.Height)
				b.cells[ti] = treasure.Width * treasure.Height
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

func (b *board) fits(x, y, w, h int) bool {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if b.cellOwner[(y+dy)*b.table.Width+(x+dx)] >= 0 {
				return false
			}
		}
	}
	return true
}

func (b *board) occupy(owner, x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			b.cellOwner[(y+dy)*b.table.Width+(x+dx)] = owner
		}
	}
}

func (b *board) goalMet(goal Goal) bool {
	if goal == GoalLargest {
		largest := -1
		area := 0
		for i, treasure := range b.table.Treasures {
			if a := treasure.Width * treasure.Height; a > area {
				largest, area = i, a
			}
		}
		if largest < 0 {
			return true
		}
		return b.foundCell[largest] == b.cells[largest]
	}
	for i := range b.table.Treasures {
		if b.foundCell[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// nextIncompleteNeighbor returns an unopened cell adjacent to a hit cell of
// a partially-found treasure, or -1. Finishing a started treasure always
// beats exploring.
func (b *board) nextIncompleteNeighbor() int {
	w, h := b.table.Width, b.table.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := y*w + x
			if !b.opened[cell] {
				continue
			}
			owner := b.cellOwner[cell]
			if owner < 0 || b.foundCell[owner] == b.cells[owner] {
				continue
			}
			for _, next := range []int{neighbor(cell, -1, 0, w, h), neighbor(cell, 1, 0, w, h), neighbor(cell, 0, -1, w, h), neighbor(cell, 0, 1, w, h)} {
				if next >= 0 && !b.opened[next] {
					return next
				}
			}
		}
	}
	return -1
}

func neighbor(cell, dx, dy, w, h int) int {
	x := cell%w + dx
	y := cell/w + dy
	if x < 0 || x >= w || y < 0 || y >= h {
		return -1
	}
	return y*w + x
}

// nextExploreCell picks the next cell under the configured strategy,
// returning the cell and the advanced custom-sequence cursor.
func (b *board) nextExploreCell(cfg Config, customNext int, src rng.Source) (int, int) {
	switch cfg.Strategy {
	case StrategyProbability:
		return b.maxProbabilityCell(), customNext
	case StrategyCustom:
		for customNext < len(cfg.CustomSequence) {
			cell := cfg.CustomSequence[customNext]
			customNext++
			if cell >= 0 && cell < len(b.opened) && !b.opened[cell] {
				return cell, customNext
			}
		}
		return b.checkerboardCell(), customNext
	default:
		return b.checkerboardCell(), customNext
	}
}

// checkerboardCell scans alternating cells first; every footprint of width
// or height >= 2 must touch one, so the sparse pass finds everything the
// dense pass would.
func (b *board) checkerboardCell() int {
	w := b.table.Width
	for pass := 0; pass < 2; pass++ {
		for cell := range b.opened {
			if b.opened[cell] {
				continue
			}
			parity := (cell%w + cell/w) % 2
			if parity == pass {
				return cell
			}
		}
	}
	return -1
}

// maxProbabilityCell counts, for every unopened cell, how many placements of
// the unfound treasures could cover it given the opened-empty evidence, and
// opens the highest count. Ties resolve to the lower index for determinism.
func (b *board) maxProbabilityCell() int {
	w, h := b.table.Width, b.table.Height
	counts := make([]int, len(b.opened))

	for ti, treasure := range b.table.Treasures {
		if b.foundCell[ti] > 0 {
			// Partially-found treasures are handled by the completion rule.
			continue
		}
		if b.cells[ti] > 0 && b.foundCell[ti] == b.cells[ti] {
			continue
		}
		for y := 0; y+treasure.Height <= h; y++ {
			for x := 0; x+treasure.Width <= w; x++ {
				if !b.placementConsistent(x, y, treasure.Width, treasure.Height) {
					continue
				}
				for dy := 0; dy < treasure.Height; dy++ {
					for dx := 0; dx < treasure.Width; dx++ {
						counts[(y+dy)*w+(x+dx)]++
					}
				}
			}
		}
	}

	best := -1
	for cell, count := range counts {
		if b.opened[cell] {
			continue
		}
		if best < 0 || count > counts[best] {
			best = cell
		}
	}
	return best
}

// placementConsistent reports whether a footprint at (x,y) contradicts any
// opened cell: opened empty cells rule the placement out, as do opened cells
// of other treasures.
func (b *board) placementConsistent(x, y, w, h int) bool {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			cell := (y+dy)*b.table.Width + (x + dx)
			if b.opened[cell] {
				return false
			}
		}
	}
	return true
}
