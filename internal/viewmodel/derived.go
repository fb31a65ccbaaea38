package viewmodel

import (
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/shopspring/decimal"
)

// Typed is implemented by entities that are either an expense or an income.
type Typed interface {
	EntryType() model.EntryType
}

// FilterByType keeps the items of type t, preserving order.
func FilterByType[E Typed](items []E, t model.EntryType) []E {
	out := make([]E, 0, len(items))
	for _, item := range items {
		if item.EntryType() == t {
			out = append(out, item)
		}
	}
	return out
}

// FilterByTab keeps expenses for tab 0 and incomes for any other tab.
func FilterByTab[E Typed](items []E, tab int) []E {
	return FilterByType(items, model.EntryTypeForTab(tab))
}

// FilterByPeriod keeps the transactions dated inside period as seen from now.
func FilterByPeriod(items []model.Transaction, period model.Period, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(items))
	for _, txn := range items {
		if period.Contains(txn.Date, now) {
			out = append(out, txn)
		}
	}
	return out
}

// Total sums the amounts of txns exactly and rounds once at the end.
func Total(txns []model.Transaction) float64 {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.DecimalAmount())
	}
	return sum.InexactFloat64()
}
