// Package output provides utilities for formatting and displaying plan results.
package output

import (
	"fmt"
	"sort"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/planner"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *planner.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Ledger totals ---\n")
	fmt.Printf("Parcel          | Net amount    | Bonus\n")
	fmt.Printf("______          | __________    | _____\n")
	for _, key := range sortedFlowKeys(result.Summary.TotalItems) {
		flow := result.Summary.TotalItems[key]
		bonus := ""
		if flow.BonusApplied {
			bonus = "yes"
		}
		_, _ = p.Printf("%-15s | %13.2f | %s\n", key, flow.Amount, bonus)
	}

	fmt.Printf("\n--- Transactions ---\n")
	for _, tx := range result.Summary.Transactions {
		fmt.Printf("%s:\n", tx.Source)
		for _, key := range sortedFlowKeys(tx.Items) {
			_, _ = p.Printf("  %-15s %13.2f\n", key, tx.Items[key].Amount)
		}
	}

	fmt.Printf("\n--- Balances ---\n")
	for _, key := range sortedAmountKeys(result.Balances) {
		_, _ = p.Printf("%-15s | %13.2f\n", key, result.Balances[key])
	}

	if len(result.Deficits) > 0 {
		fmt.Printf("\n--- Deficits ---\n")
		for _, key := range sortedAmountKeys(result.Deficits) {
			_, _ = p.Printf("%-15s | %13.2f\n", key, result.Deficits[key])
		}
	}

	if len(result.AutoRuns) > 0 {
		fmt.Printf("\n--- Auto-planned additional runs ---\n")
		stages := make([]int, 0, len(result.AutoRuns))
		for id := range result.AutoRuns {
			stages = append(stages, id)
		}
		sort.Ints(stages)
		for _, id := range stages {
			fmt.Printf("stage %d: %d runs\n", id, result.AutoRuns[id])
		}
	}

	_, _ = p.Printf("\nTotal AP used: %.2f\n", result.TotalAPUsed)
}

// CsvFormat outputs in comma-separated value format, one row per transaction
// item.
func CsvFormat(result *planner.Result) {
	fmt.Printf("\"source\",\"parcelType\",\"parcelId\",\"amount\",\"bonusApplied\"\n")
	for _, tx := range result.Summary.Transactions {
		for _, key := range sortedFlowKeys(tx.Items) {
			flow := tx.Items[key]
			fmt.Printf("\"%s\",\"%s\",\"%d\",\"%.4f\",\"%t\"\n",
				tx.Source, key.Type, key.ID, flow.Amount, flow.BonusApplied)
		}
	}
	for _, key := range sortedAmountKeys(result.Balances) {
		fmt.Printf("\"balance\",\"%s\",\"%d\",\"%.4f\",\"false\"\n",
			key.Type, key.ID, result.Balances[key])
	}
	fmt.Printf("\"apUsed\",\"\",\"\",\"%.4f\",\"false\"\n", result.TotalAPUsed)
}

func sortedFlowKeys(m parcel.FlowMap) []parcel.Key {
	keys := make([]parcel.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

func sortedAmountKeys(m parcel.AmountMap) []parcel.Key {
	keys := make([]parcel.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

func sortKeys(keys []parcel.Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].ID < keys[j].ID
	})
}
