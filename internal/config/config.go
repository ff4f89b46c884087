// Package config defines the user plan configuration, everything the planner
// computes from, and loads it from YAML via viper. Static game data lives in
// internal/gamedata instead: plans change per user, tables do not.
package config

import (
	"fmt"
	"io"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/exchange"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/farming"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/boxgacha"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/cardmatch"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/cardshop"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/dicerace"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/dreammaker"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/fortune"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/treasure"
	"github.com/spf13/viper"
)

// Configuration holds one complete plan for one event.
type Configuration struct {
	EventID int
	DataDir string

	// Owned is the user-declared current inventory.
	Owned []gamedata.ParcelAmount

	Farming          *FarmingPlan
	Shops            []ShopPlan
	BoxGacha         *boxgacha.Config
	CardShop         *cardshop.Config
	FortuneGacha     *fortune.Config
	DiceRace         *dicerace.Config
	TreasureHunt     *treasure.Config
	CardMatch        *cardmatch.Config
	DreamMaker       *dreammaker.Config
	CustomExchanges  []exchange.CustomExchange
	ClaimedMissions  []int
	CumulativePoints float64

	// Seed makes every stochastic channel reproducible when set; unset, the
	// planner uses the entropy-backed source.
	Seed *uint64

	Logging LoggingConfig
	Output  OutputConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string // pretty, csv
}

// StagePlan is the per-stage slice of the farming plan.
type StagePlan struct {
	StageID    int
	Runs       int
	Priority   farming.Priority
	FirstClear bool
}

// BonusEntry declares one aggregated drop-rate bonus in hundredths of a
// percent.
type BonusEntry struct {
	Parcel  parcel.Key
	Percent int
}

// FarmingPlan holds the farming channel's plan.
type FarmingPlan struct {
	Stages  []StagePlan
	Bonuses []BonusEntry
	// AutoFill asks the planner to close remaining deficits with
	// solver-computed additional runs.
	AutoFill bool
}

// RunPlan converts the declarative stage list into the calculator's plan
// maps. Duplicate stage ids resolve to the last entry.
func (p *FarmingPlan) RunPlan() farming.RunPlan {
	plan := farming.RunPlan{
		Runs:        make(map[int]int, len(p.Stages)),
		Priorities:  make(map[int]farming.Priority, len(p.Stages)),
		FirstClears: make(map[int]bool, len(p.Stages)),
	}
	for _, stage := range p.Stages {
		plan.Runs[stage.StageID] = stage.Runs
		if stage.Priority != "" {
			plan.Priorities[stage.StageID] = stage.Priority
		}
		if stage.FirstClear {
			plan.FirstClears[stage.StageID] = true
		}
	}
	return plan
}

// BonusMap converts the declared bonuses for the calculator.
func (p *FarmingPlan) BonusMap() farming.BonusMap {
	bonus := make(farming.BonusMap, len(p.Bonuses))
	for _, entry := range p.Bonuses {
		bonus[entry.Parcel] = entry.Percent
	}
	return bonus
}

// PurchasePlan is one shop entry's planned purchase.
type PurchasePlan struct {
	EntryID          int
	Count            int
	AlreadyPurchased int
}

// ShopPlan holds one shop's planned purchases.
type ShopPlan struct {
	ShopID    int
	Purchases []PurchasePlan
}

// Counts splits the purchase plan into the calculator's two maps.
func (p *ShopPlan) Counts() (map[int]int, map[int]int) {
	counts := make(map[int]int, len(p.Purchases))
	already := make(map[int]int, len(p.Purchases))
	for _, purchase := range p.Purchases {
		counts[purchase.EntryID] = purchase.Count
		already[purchase.EntryID] = purchase.AlreadyPurchased
	}
	return counts, already
}

// OwnedAmounts converts the owned list into the projector's map.
func (c *Configuration) OwnedAmounts() parcel.AmountMap {
	owned := make(parcel.AmountMap, len(c.Owned))
	for _, entry := range c.Owned {
		owned.Add(entry.Parcel, entry.Amount)
	}
	return owned
}

// ClaimedMissionSet converts the claimed mission ids into a set.
func (c *Configuration) ClaimedMissionSet() map[int]bool {
	claimed := make(map[int]bool, len(c.ClaimedMissions))
	for _, id := range c.ClaimedMissions {
		claimed[id] = true
	}
	return claimed
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// plan there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted plan from an in-memory
// reader; the server path for request bodies.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
