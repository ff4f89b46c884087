// Package gamedata defines the static, read-only event data tables every
// channel calculator consumes: stages, shops, and the minigame tables. Data
// is authored in YAML, keyed by small integer ids, and assumed immutable once
// loaded.
package gamedata

import "github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"

// ParcelAmount pairs a parcel key with a quantity; the building block of
// every cost and reward declaration in the tables.
type ParcelAmount struct {
	Parcel parcel.Key `yaml:"parcel"`
	Amount float64    `yaml:"amount"`
}

// RewardCategory tags a stage reward rule. Event, Default, and Rare rewards
// repeat every run; every other category is a one-time first-clear or
// clear-rank reward granted independent of run count.
type RewardCategory string

const (
	RewardEvent      RewardCategory = "Event"
	RewardDefault    RewardCategory = "Default"
	RewardRare       RewardCategory = "Rare"
	RewardFirstClear RewardCategory = "FirstClear"
	RewardClearRank  RewardCategory = "ClearRank"
)

// Repeatable reports whether the category yields per run rather than once.
func (c RewardCategory) Repeatable() bool {
	return c == RewardEvent || c == RewardDefault || c == RewardRare
}

// RewardRule is one drop rule on a stage. Probability is expressed in
// hundredths of a percent (5000 = 50%) as the tables author it.
type RewardRule struct {
	Parcel        parcel.Key     `yaml:"parcel"`
	Amount        float64        `yaml:"amount"`
	Probability   int            `yaml:"probability"`
	Category      RewardCategory `yaml:"category"`
	BonusEligible bool           `yaml:"bonusEligible,omitempty"`
}

// Stage is one farmable or story node of the event map.
type Stage struct {
	ID       int          `yaml:"id"`
	Name     string       `yaml:"name"`
	APCost   float64      `yaml:"apCost"`
	Farmable bool         `yaml:"farmable"`
	Rewards  []RewardRule `yaml:"rewards"`
}

// ShopEntry is one purchasable good. PurchaseLimit of 0 means unlimited
// stock.
type ShopEntry struct {
	ID            int          `yaml:"id"`
	Cost          ParcelAmount `yaml:"cost"`
	Reward        ParcelAmount `yaml:"reward"`
	PurchaseLimit int          `yaml:"purchaseLimit,omitempty"`
}

// Shop is one exchange catalog.
type Shop struct {
	ID      int         `yaml:"id"`
	Name    string      `yaml:"name"`
	Entries []ShopEntry `yaml:"entries"`
}

// BoxGachaRound is one sequential box: a fixed cost and a fixed reward set,
// no randomness within the round.
type BoxGachaRound struct {
	Cost    ParcelAmount   `yaml:"cost"`
	Rewards []ParcelAmount `yaml:"rewards"`
}

// BoxGachaTable lists the ordered rounds; rounds at LoopFrom and beyond
// repeat indefinitely once the numbered sequence is exhausted.
type BoxGachaTable struct {
	Rounds   []BoxGachaRound `yaml:"rounds"`
	LoopFrom int             `yaml:"loopFrom"`
}

// Card is one entry of a card-shop group pool.
type Card struct {
	Rarity int          `yaml:"rarity"`
	Weight float64      `yaml:"weight"`
	Reward ParcelAmount `yaml:"reward"`
}

// CardShopGroup is one group-indexed weighted pool.
type CardShopGroup struct {
	Cards []Card `yaml:"cards"`
}

// CardShopTable describes the card-shop minigame: up to DrawsPerRound draws
// per round, group advancing only while drawn cards stay below
// RareThreshold.
type CardShopTable struct {
	Groups        []CardShopGroup `yaml:"groups"`
	RareThreshold int             `yaml:"rareThreshold"`
	DrawsPerRound int             `yaml:"drawsPerRound"`
	DrawCost      ParcelAmount    `yaml:"drawCost"`
}

// FortuneEntry is one weighted outcome of the fortune gacha.
type FortuneEntry struct {
	Weight  float64        `yaml:"weight"`
	Grade   int            `yaml:"grade"`
	Rewards []ParcelAmount `yaml:"rewards"`
}

// FortuneTable describes the fortune gacha pool and its pity mechanic: once
// the per-pull miss streak exceeds PityThreshold, the target grade's weight
// gains PityStep per further pull, clamped at PityLimit; streak and weights
// reset whenever a target-grade entry is drawn.
type FortuneTable struct {
	Entries       []FortuneEntry `yaml:"entries"`
	PullCost      ParcelAmount   `yaml:"pullCost"`
	TargetGrade   int            `yaml:"targetGrade"`
	PityThreshold int            `yaml:"pityThreshold"`
	PityStep      float64        `yaml:"pityStep"`
	PityLimit     float64        `yaml:"pityLimit"`
}

// DiceNodeEffect enumerates what landing on a board node does.
type DiceNodeEffect string

const (
	DiceEffectNone   DiceNodeEffect = "none"
	DiceEffectReward DiceNodeEffect = "reward"
	DiceEffectMove   DiceNodeEffect = "move"
)

// DiceNode is one node of the circular race board.
type DiceNode struct {
	Effect  DiceNodeEffect `yaml:"effect"`
	Rewards []ParcelAmount `yaml:"rewards,omitempty"`
	Move    int            `yaml:"move,omitempty"`
}

// DiceRaceBoard describes the dice-race minigame board.
type DiceRaceBoard struct {
	Nodes    []DiceNode     `yaml:"nodes"`
	RollCost ParcelAmount   `yaml:"rollCost"`
	LapBonus []ParcelAmount `yaml:"lapBonus,omitempty"`
}

// Treasure is one rectangular footprint hidden on the treasure-hunt grid.
type Treasure struct {
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Rewards []ParcelAmount `yaml:"rewards"`
}

// TreasureMap describes the treasure-hunt grid.
type TreasureMap struct {
	Width     int          `yaml:"width"`
	Height    int          `yaml:"height"`
	Treasures []Treasure   `yaml:"treasures"`
	OpenCost  ParcelAmount `yaml:"openCost"`
}

// DreamParameter is one life-sim stat with its value range, starting base,
// and the carryover rate applied between loops.
type DreamParameter struct {
	Name          string  `yaml:"name"`
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
	Base          float64 `yaml:"base"`
	CarryoverRate float64 `yaml:"carryoverRate"`
}

// DreamEffect is one probabilistic stat alteration of an action: with
// Probability, the parameter shifts by a uniform draw in [Min,Max].
type DreamEffect struct {
	Param       int     `yaml:"param"`
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	Probability float64 `yaml:"probability"`
}

// DreamAction is one selectable action per step.
type DreamAction struct {
	Name    string         `yaml:"name"`
	Cost    ParcelAmount   `yaml:"cost"`
	Effects []DreamEffect  `yaml:"effects"`
	Rewards []ParcelAmount `yaml:"rewards,omitempty"`
}

// DreamPointBand maps a summed-stat floor to daily event points; the highest
// band whose floor is met applies.
type DreamPointBand struct {
	MinTotal float64 `yaml:"minTotal"`
	Points   float64 `yaml:"points"`
}

// DreamEnding is one loop outcome gated by per-parameter thresholds, with
// separate first-time and repeat reward tiers.
type DreamEnding struct {
	Name          string         `yaml:"name"`
	Thresholds    []float64      `yaml:"thresholds"`
	FirstRewards  []ParcelAmount `yaml:"firstRewards"`
	RepeatRewards []ParcelAmount `yaml:"repeatRewards"`
}

// DreamTable describes the dream-maker life-sim: a fixed horizon of Days ×
// ActionsPerDay steps, endings evaluated strictly after the last action of
// the last day.
type DreamTable struct {
	Parameters    []DreamParameter `yaml:"parameters"`
	Actions       []DreamAction    `yaml:"actions"`
	Days          int              `yaml:"days"`
	ActionsPerDay int              `yaml:"actionsPerDay"`
	PointBands    []DreamPointBand `yaml:"pointBands"`
	Endings       []DreamEnding    `yaml:"endings"`
	PointParcel   parcel.Key       `yaml:"pointParcel"`
}

// Mission is one claimable mission with flat rewards.
type Mission struct {
	ID      int            `yaml:"id"`
	Name    string         `yaml:"name"`
	Rewards []ParcelAmount `yaml:"rewards"`
}

// CumulativeTier is one cumulative-point reward tier.
type CumulativeTier struct {
	Threshold float64        `yaml:"threshold"`
	Rewards   []ParcelAmount `yaml:"rewards"`
}

// GachaGroupEntry is one weighted entry of a gacha group; its parcel may
// reference another group (parcel type GachaGroup), which the resolver
// flattens with a bounded depth.
type GachaGroupEntry struct {
	Parcel parcel.Key `yaml:"parcel"`
	Amount float64    `yaml:"amount"`
	Weight float64    `yaml:"weight"`
}

// GachaGroup is one self-referential reward group.
type GachaGroup struct {
	ID      int               `yaml:"id"`
	Entries []GachaGroupEntry `yaml:"entries"`
}

// Event is one complete event data bundle. Minigame tables are optional;
// channels whose table is absent contribute nothing to the plan.
type Event struct {
	ID          int             `yaml:"id"`
	Name        string          `yaml:"name"`
	CurrencyIDs []parcel.Key    `yaml:"currencyIds"`
	Stages      []Stage         `yaml:"stages"`
	Shops       []Shop          `yaml:"shops"`
	BoxGacha    *BoxGachaTable  `yaml:"boxGacha,omitempty"`
	CardShop    *CardShopTable  `yaml:"cardShop,omitempty"`
	Fortune     *FortuneTable   `yaml:"fortuneGacha,omitempty"`
	DiceRace    *DiceRaceBoard  `yaml:"diceRace,omitempty"`
	Treasure    *TreasureMap    `yaml:"treasureHunt,omitempty"`
	Dream       *DreamTable     `yaml:"dreamMaker,omitempty"`
	Missions    []Mission       `yaml:"missions"`
	Cumulative  []CumulativeTier `yaml:"cumulative"`
	Groups      []GachaGroup    `yaml:"gachaGroups"`
}

// StageByID returns the stage with the given id, or nil.
func (e *Event) StageByID(id int) *Stage {
	for i := range e.Stages {
		if e.Stages[i].ID == id {
			return &e.Stages[i]
		}
	}
	return nil
}

// EventCurrencySet returns the event currency keys as a set for the farming
// calculator's asymmetric rounding rule.
func (e *Event) EventCurrencySet() map[parcel.Key]bool {
	set := make(map[parcel.Key]bool, len(e.CurrencyIDs))
	for _, k := range e.CurrencyIDs {
		set[k] = true
	}
	return set
}
