package gamedata

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

// GroupIndex indexes gacha groups by id for resolution.
type GroupIndex map[int]*GachaGroup

// IndexGroups builds the resolution index. Later declarations win on
// duplicate ids, matching last-write-wins table loading.
func IndexGroups(groups []GachaGroup) GroupIndex {
	idx := make(GroupIndex, len(groups))
	for i := range groups {
		idx[groups[i].ID] = &groups[i]
	}
	return idx
}

// Resolve flattens one group into expected per-item amounts: each entry
// contributes weight/totalWeight × amount, and entries referencing another
// group recurse into that group's expected contents. Recursion depth is
// capped; contributions beyond the cap are dropped so malformed or
// deliberately self-referential data still terminates.
func (idx GroupIndex) Resolve(groupID int) parcel.AmountMap {
	out := make(parcel.AmountMap)
	idx.resolveInto(groupID, 1, out, constants.MaxGroupResolveDepth)
	return out
}

func (idx GroupIndex) resolveInto(groupID int, scale float64, out parcel.AmountMap, depth int) {
	if depth <= 0 {
		return
	}
	group, ok := idx[groupID]
	if !ok {
		return
	}
	total := 0.0
	for _, entry := range group.Entries {
		if entry.Weight > 0 {
			total += entry.Weight
		}
	}
	if total <= 0 {
		return
	}
	for _, entry := range group.Entries {
		if entry.Weight <= 0 {
			continue
		}
		share := scale * entry.Weight / total * entry.Amount
		if entry.Parcel.Type == parcel.TypeGachaGroup {
			idx.resolveInto(entry.Parcel.ID, share, out, depth-1)
			continue
		}
		out.Add(entry.Parcel, share)
	}
}
