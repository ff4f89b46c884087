// Package ledger folds per-channel calculator results into a single running
// ledger of signed quantities per parcel, preserving transaction provenance,
// and projects final balances against owned amounts.
package ledger

import (
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/mathutil"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

// ChannelResult is the normalized output of one acquisition/consumption
// channel. Cost carries positive magnitudes; the aggregator negates them
// exactly once. A nil result, or a result with empty maps, contributes
// nothing — channels that have not been configured yet are expected to be
// skipped, not treated as errors.
type ChannelResult struct {
	Source  string
	Cost    parcel.FlowMap
	Rewards parcel.FlowMap
}

// TransactionEntry records one directed contribution to the ledger. Entries
// are created fresh on every aggregation, never mutated afterward, and
// discarded on the next recompute.
type TransactionEntry struct {
	Source string         `json:"source"`
	Items  parcel.FlowMap `json:"items"`
}

// Summary is the canonical aggregation result surfaced to any display layer.
type Summary struct {
	TotalItems   parcel.FlowMap     `json:"totalItems"`
	Transactions []TransactionEntry `json:"transactions"`
}

// Aggregate merges channel results into a total-items map and an ordered
// transaction log. Results must be supplied in the fixed declared channel
// order; reproducibility of the log depends on that ordering, while totals
// are order-independent by construction. Aggregate never mutates its inputs
// and has no hidden state: identical inputs yield identical output.
func Aggregate(results []*ChannelResult) Summary {
	summary := Summary{
		TotalItems:   make(parcel.FlowMap),
		Transactions: make([]TransactionEntry, 0, 2*len(results)),
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		if items := negate(result.Cost); len(items) > 0 {
			summary.Transactions = append(summary.Transactions, TransactionEntry{
				Source: result.Source + "_cost",
				Items:  items,
			})
			summary.TotalItems.Merge(items)
		}
		if items := nonEmpty(result.Rewards); len(items) > 0 {
			summary.Transactions = append(summary.Transactions, TransactionEntry{
				Source: result.Source + "_reward",
				Items:  items,
			})
			summary.TotalItems.Merge(items)
		}
	}

	return summary
}

// negate copies a cost map with every magnitude flipped to a consumption
// delta, dropping effectively-zero entries so empty transactions are never
// recorded.
func negate(costs parcel.FlowMap) parcel.FlowMap {
	out := make(parcel.FlowMap, len(costs))
	for k, f := range costs {
		if mathutil.IsZero(f.Amount) {
			continue
		}
		out[k] = parcel.Flow{Amount: -f.Amount, BonusApplied: f.BonusApplied}
	}
	return out
}

// nonEmpty copies a reward map, dropping effectively-zero entries.
func nonEmpty(rewards parcel.FlowMap) parcel.FlowMap {
	out := make(parcel.FlowMap, len(rewards))
	for k, f := range rewards {
		if mathutil.IsZero(f.Amount) {
			continue
		}
		out[k] = f
	}
	return out
}

// Project computes final per-parcel balances from user-declared owned
// quantities and the aggregated ledger totals, restricted to Item and
// Currency parcels. A negative balance for a key means a deficit of that
// magnitude. Pure function: neither input is mutated.
func Project(owned parcel.AmountMap, totals parcel.FlowMap) parcel.AmountMap {
	balances := make(parcel.AmountMap)
	for k, amount := range owned {
		if !k.CurrencyLike() {
			continue
		}
		balances[k] += amount
	}
	for k, f := range totals {
		if !k.CurrencyLike() {
			continue
		}
		balances[k] += f.Amount
	}
	return balances
}

// Deficits extracts the negative portion of a projected balance as positive
// needed amounts. This is the feedback signal every channel's "fill the
// deficit" auto-calculation reads.
func Deficits(balances parcel.AmountMap) parcel.AmountMap {
	needed := make(parcel.AmountMap)
	for k, amount := range balances {
		if mathutil.IsNegative(amount) {
			needed[k] = -amount
		}
	}
	return needed
}
