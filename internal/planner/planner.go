// Package planner orchestrates one full plan computation: it runs every
// configured channel in the fixed declared order, aggregates their results
// into the ledger, projects balances against owned amounts, and optionally
// auto-fills farming runs to close remaining deficits.
package planner

import (
	"encoding/json"
	"fmt"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/config"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/exchange"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/farming"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/calc/shop"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/ledger"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/boxgacha"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/cardmatch"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/cardshop"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/dicerace"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/dreammaker"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/fortune"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/rng"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/sim/treasure"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/store"
	"go.uber.org/zap"
)

// ResultField is the store field the planner writes its summary back to.
const ResultField = "result"

// Planner runs plan computations against loaded event data.
type Planner struct {
	logger *zap.Logger
	store  store.Store
}

// New returns a Planner. A nil store disables result write-back.
func New(logger *zap.Logger, st store.Store) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{logger: logger, store: st}
}

// Result is one complete plan computation.
type Result struct {
	Summary     ledger.Summary   `json:"summary"`
	Balances    parcel.AmountMap `json:"balances"`
	Deficits    parcel.AmountMap `json:"deficits"`
	TotalAPUsed float64          `json:"totalApUsed"`
	// AutoRuns holds the solver's additional farming runs per stage id when
	// auto-fill is enabled, empty otherwise.
	AutoRuns map[int]int `json:"autoRuns,omitempty"`
}

// Plan computes the full ledger for one event and plan. Channels run in the
// fixed declared order so the transaction log is reproducible; unconfigured
// channels are skipped. With farming auto-fill enabled the computation runs
// twice: once to measure deficits, once with the solver's additional runs
// merged in.
func (p *Planner) Plan(event *gamedata.Event, cfg *config.Configuration) (*Result, error) {
	if event == nil {
		return nil, fmt.Errorf("no event data loaded")
	}
	if cfg == nil {
		return nil, fmt.Errorf("no plan configuration")
	}

	src := rng.Default()
	if cfg.Seed != nil {
		src = rng.NewSeeded(*cfg.Seed)
	}

	var runPlan farming.RunPlan
	var bonus farming.BonusMap
	if cfg.Farming != nil {
		runPlan = cfg.Farming.RunPlan()
		bonus = cfg.Farming.BonusMap()
	}

	result := p.compute(event, cfg, runPlan, bonus, src)

	if cfg.Farming != nil && cfg.Farming.AutoFill {
		deficits := ledger.Deficits(result.Balances)
		if len(deficits) > 0 {
			additional, err := farming.PlanRuns(p.logger, event.Stages, runPlan, deficits, bonus)
			if err != nil {
				return nil, fmt.Errorf("auto-planning farming runs: %w", err)
			}
			if len(additional) > 0 {
				for id, runs := range additional {
					runPlan.Runs[id] += runs
				}
				result = p.compute(event, cfg, runPlan, bonus, src)
				result.AutoRuns = additional
			}
		}
	}

	p.logger.Info("plan computed",
		zap.String("op", "planner.Plan"),
		zap.Int("event", event.ID),
		zap.Int("transactions", len(result.Summary.Transactions)),
		zap.Float64("apUsed", result.TotalAPUsed),
	)

	if p.store != nil {
		if err := p.writeBack(event.ID, result); err != nil {
			p.logger.Warn("failed to write result back to store",
				zap.String("op", "planner.Plan"),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

// compute runs every channel once in the declared order and folds the results.
func (p *Planner) compute(event *gamedata.Event, cfg *config.Configuration, runPlan farming.RunPlan, bonus farming.BonusMap, src rng.Source) *Result {
	var channels []*ledger.ChannelResult
	apUsed := 0.0

	if cfg.Farming != nil {
		farmed := farming.Calculate(p.logger, event.Stages, runPlan, bonus, event.EventCurrencySet())
		apUsed += farmed.TotalAPUsed
		channels = append(channels, &ledger.ChannelResult{
			Source:  "farming",
			Rewards: farmed.TotalItems,
		})
	}

	if len(cfg.Shops) > 0 {
		costs := make(parcel.FlowMap)
		rewards := make(parcel.FlowMap)
		for _, plan := range cfg.Shops {
			catalog := shopByID(event, plan.ShopID)
			if catalog == nil {
				p.logger.Warn("plan references unknown shop",
					zap.String("op", "planner.compute"),
					zap.Int("shop", plan.ShopID),
				)
				continue
			}
			counts, already := plan.Counts()
			r := shop.Calculate(p.logger, *catalog, counts, already)
			costs.Merge(r.Costs)
			rewards.Merge(r.Rewards)
		}
		channels = append(channels, &ledger.ChannelResult{Source: "shop", Cost: costs, Rewards: rewards})
	}

	if cfg.BoxGacha != nil {
		r := boxgacha.Calculate(event.BoxGacha, *cfg.BoxGacha)
		channels = append(channels, &ledger.ChannelResult{Source: "boxGacha", Cost: r.Costs, Rewards: r.Rewards})
	}

	if cfg.CardShop != nil {
		r := cardshop.Simulate(event.CardShop, *cfg.CardShop, src)
		channels = append(channels, simChannel("cardShop", r.AvgCosts, r.AvgRewards))
	}

	if cfg.FortuneGacha != nil {
		r := fortune.Simulate(event.Fortune, *cfg.FortuneGacha, src)
		channels = append(channels, simChannel("fortuneGacha", r.AvgCosts, r.AvgRewards))
	}

	if cfg.DiceRace != nil {
		r := dicerace.Simulate(event.DiceRace, *cfg.DiceRace, src)
		channels = append(channels, simChannel("diceRace", r.AvgCosts, r.AvgRewards))
	}

	if cfg.TreasureHunt != nil {
		r := treasure.Simulate(event.Treasure, *cfg.TreasureHunt, src)
		channels = append(channels, simChannel("treasureHunt", r.AvgCosts, r.AvgRewards))
	}

	if cfg.CardMatch != nil {
		r := cardmatch.Simulate(*cfg.CardMatch, src)
		channels = append(channels, simChannel("cardMatch", r.AvgCosts, r.AvgRewards))
	}

	if cfg.DreamMaker != nil {
		r := dreammaker.Simulate(event.Dream, *cfg.DreamMaker, src)
		channels = append(channels, simChannel("dreamMaker", r.AvgCosts, r.AvgRewards))
	}

	if len(cfg.CustomExchanges) > 0 {
		r := exchange.CalculateCustom(cfg.CustomExchanges)
		channels = append(channels, &ledger.ChannelResult{Source: "customExchange", Cost: r.Costs, Rewards: r.Rewards})
	}

	if len(cfg.ClaimedMissions) > 0 {
		r := exchange.CalculateMissions(event.Missions, cfg.ClaimedMissionSet())
		channels = append(channels, &ledger.ChannelResult{Source: "mission", Rewards: r.Rewards})
	}

	if cfg.CumulativePoints > 0 {
		r := exchange.CalculateCumulative(event.Cumulative, cfg.CumulativePoints)
		channels = append(channels, &ledger.ChannelResult{Source: "cumulative", Rewards: r.Rewards})
	}

	summary := ledger.Aggregate(channels)
	balances := ledger.Project(cfg.OwnedAmounts(), summary.TotalItems)
	return &Result{
		Summary:     summary,
		Balances:    balances,
		Deficits:    ledger.Deficits(balances),
		TotalAPUsed: apUsed,
	}
}

// simChannel wraps a simulator's averaged amount maps as a channel result.
func simChannel(source string, costs, rewards parcel.AmountMap) *ledger.ChannelResult {
	return &ledger.ChannelResult{
		Source:  source,
		Cost:    parcel.FromAmounts(costs),
		Rewards: parcel.FromAmounts(rewards),
	}
}

func shopByID(event *gamedata.Event, id int) *gamedata.Shop {
	for i := range event.Shops {
		if event.Shops[i].ID == id {
			return &event.Shops[i]
		}
	}
	return nil
}

// writeBack stores the JSON-encoded result under the event's result field,
// last write winning.
func (p *Planner) writeBack(eventID int, result *Result) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	p.store.Set(eventID, ResultField, string(encoded))
	return nil
}
