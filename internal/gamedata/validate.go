package gamedata

import "fmt"

// Validate inspects the bundle for suspicious data and returns warnings. All
// findings are advisory: the calculators guard against every condition listed
// here, so a warned bundle still computes (with neutral results where the
// data is unusable).
func (e *Event) Validate() []string {
	var warnings []string

	for _, stage := range e.Stages {
		if stage.APCost < 0 {
			warnings = append(warnings, fmt.Sprintf("stage %d (%s) has negative AP cost %.1f", stage.ID, stage.Name, stage.APCost))
		}
		for i, rule := range stage.Rewards {
			if rule.Probability < 0 || rule.Probability > 10000 {
				warnings = append(warnings, fmt.Sprintf("stage %d reward %d has probability %d outside [0,10000]", stage.ID, i, rule.Probability))
			}
			if rule.Amount < 0 {
				warnings = append(warnings, fmt.Sprintf("stage %d reward %d has negative amount %.1f", stage.ID, i, rule.Amount))
			}
		}
	}

	for _, shop := range e.Shops {
		for _, entry := range shop.Entries {
			if entry.PurchaseLimit < 0 {
				warnings = append(warnings, fmt.Sprintf("shop %d entry %d has negative purchase limit", shop.ID, entry.ID))
			}
			if entry.Cost.Amount < 0 || entry.Reward.Amount < 0 {
				warnings = append(warnings, fmt.Sprintf("shop %d entry %d has a negative cost or reward amount", shop.ID, entry.ID))
			}
		}
	}

	if box := e.BoxGacha; box != nil {
		if len(box.Rounds) == 0 {
			warnings = append(warnings, "box gacha table has no rounds")
		} else if box.LoopFrom < 0 || box.LoopFrom >= len(box.Rounds) {
			warnings = append(warnings, fmt.Sprintf("box gacha loop index %d outside rounds [0,%d)", box.LoopFrom, len(box.Rounds)))
		}
	}

	if cs := e.CardShop; cs != nil {
		for gi, group := range cs.Groups {
			total := 0.0
			for _, card := range group.Cards {
				total += card.Weight
			}
			if total <= 0 {
				warnings = append(warnings, fmt.Sprintf("card shop group %d has no positive card weights", gi))
			}
		}
	}

	if f := e.Fortune; f != nil {
		total := 0.0
		for _, entry := range f.Entries {
			total += entry.Weight
		}
		if total <= 0 {
			warnings = append(warnings, "fortune gacha pool has no positive weights")
		}
		if f.PityLimit < 0 || f.PityStep < 0 {
			warnings = append(warnings, "fortune gacha pity step/limit must be non-negative")
		}
	}

	if t := e.Treasure; t != nil {
		for i, tr := range t.Treasures {
			if tr.Width > t.Width || tr.Height > t.Height {
				warnings = append(warnings, fmt.Sprintf("treasure %d footprint %dx%d exceeds %dx%d grid", i, tr.Width, tr.Height, t.Width, t.Height))
			}
			if tr.Width <= 0 || tr.Height <= 0 {
				warnings = append(warnings, fmt.Sprintf("treasure %d has a non-positive footprint", i))
			}
		}
	}

	if d := e.Dream; d != nil {
		if d.Days <= 0 || d.ActionsPerDay <= 0 {
			warnings = append(warnings, "dream maker horizon must be positive in days and actions per day")
		}
		for i, action := range d.Actions {
			for _, eff := range action.Effects {
				if eff.Param < 0 || eff.Param >= len(d.Parameters) {
					warnings = append(warnings, fmt.Sprintf("dream action %d (%s) references parameter %d outside table", i, action.Name, eff.Param))
				}
			}
		}
		for i, ending := range d.Endings {
			if len(ending.Thresholds) > len(d.Parameters) {
				warnings = append(warnings, fmt.Sprintf("dream ending %d (%s) has more thresholds than parameters", i, ending.Name))
			}
		}
	}

	seen := make(map[int]bool, len(e.Groups))
	for _, group := range e.Groups {
		if seen[group.ID] {
			warnings = append(warnings, fmt.Sprintf("gacha group %d declared more than once", group.ID))
		}
		seen[group.ID] = true
	}

	return warnings
}
