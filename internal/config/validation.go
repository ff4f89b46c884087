package config

import (
	"fmt"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/farming"
)

// ValidateConfiguration performs general validation of the plan and returns
// warnings. Everything warned about is also guarded in the calculators, so a
// warned plan still computes.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.EventID <= 0 {
		warnings = append(warnings, "eventId is not set; the planner cannot locate an event bundle without it")
	}

	for _, entry := range c.Owned {
		if entry.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf("owned amount for %s is negative", entry.Parcel))
		}
	}

	warnings = append(warnings, c.validateFarming()...)
	warnings = append(warnings, c.validateShops()...)
	warnings = append(warnings, c.validateSims()...)

	for _, ex := range c.CustomExchanges {
		if ex.Count < 0 {
			warnings = append(warnings, fmt.Sprintf("custom exchange of %s has a negative count", ex.Reward.Parcel))
		}
	}
	if c.CumulativePoints < 0 {
		warnings = append(warnings, "cumulativePoints is negative")
	}

	switch c.Output.Format {
	case "", "pretty", "csv":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown output format %q; pretty will be used", c.Output.Format))
	}

	return warnings
}

func (c *Configuration) validateFarming() []string {
	if c.Farming == nil {
		return nil
	}
	var warnings []string
	seen := make(map[int]bool, len(c.Farming.Stages))
	for _, stage := range c.Farming.Stages {
		if stage.Runs < 0 {
			warnings = append(warnings, fmt.Sprintf("stage %d has a negative run count", stage.StageID))
		}
		if seen[stage.StageID] {
			warnings = append(warnings, fmt.Sprintf("stage %d planned more than once; the last entry wins", stage.StageID))
		}
		seen[stage.StageID] = true
		switch stage.Priority {
		case "", farming.PriorityInclude, farming.PriorityExclude, farming.PriorityPreferred:
		default:
			warnings = append(warnings, fmt.Sprintf("stage %d has unknown priority %q", stage.StageID, stage.Priority))
		}
	}
	for _, bonus := range c.Farming.Bonuses {
		if bonus.Percent < 0 {
			warnings = append(warnings, fmt.Sprintf("drop bonus for %s is negative", bonus.Parcel))
		}
	}
	return warnings
}

func (c *Configuration) validateShops() []string {
	var warnings []string
	for _, shop := range c.Shops {
		for _, purchase := range shop.Purchases {
			if purchase.Count < 0 {
				warnings = append(warnings, fmt.Sprintf("shop %d entry %d has a negative purchase count", shop.ShopID, purchase.EntryID))
			}
			if purchase.AlreadyPurchased < 0 {
				warnings = append(warnings, fmt.Sprintf("shop %d entry %d has a negative purchased-already count", shop.ShopID, purchase.EntryID))
			}
		}
	}
	return warnings
}

func (c *Configuration) validateSims() []string {
	var warnings []string
	if c.BoxGacha != nil && c.BoxGacha.ToBox < c.BoxGacha.FromBox {
		warnings = append(warnings, "box gacha range is inverted; no boxes will be opened")
	}
	check := func(name string, runs int) {
		if runs < 0 {
			warnings = append(warnings, fmt.Sprintf("%s runs is negative; the channel will be skipped", name))
		}
	}
	if c.CardShop != nil {
		check("cardShop", c.CardShop.Runs)
	}
	if c.FortuneGacha != nil {
		check("fortuneGacha", c.FortuneGacha.Runs)
	}
	if c.DiceRace != nil {
		check("diceRace", c.DiceRace.Runs)
	}
	if c.TreasureHunt != nil {
		check("treasureHunt", c.TreasureHunt.Runs)
	}
	if c.CardMatch != nil {
		check("cardMatch", c.CardMatch.Runs)
	}
	if c.DreamMaker != nil {
		check("dreamMaker", c.DreamMaker.Runs)
	}
	return warnings
}
