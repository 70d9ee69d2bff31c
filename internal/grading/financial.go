package grading

import (
	"sort"
	"time"
)

// RevenueRate is the share of a legitimate transaction's amount earned when
// it is correctly let through.
const RevenueRate = 0.02

// Record is one joined transaction with its derived financial columns.
type Record struct {
	TransactionID string
	True          int
	Pred          int
	Amount        float64
	Date          time.Time

	Revenue          float64
	Loss             float64
	CumulativeImpact float64
}

// SortByDate orders records by ascending date. Records with equal dates keep
// their join order.
func SortByDate(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})
}

// ApplyFinancials fills Revenue, Loss and CumulativeImpact in slice order and
// returns the final cumulative value. Recomputing is idempotent.
func ApplyFinancials(recs []Record) float64 {
	var running float64
	for i := range recs {
		r := &recs[i]
		r.Revenue, r.Loss = 0, 0
		if r.Pred == 0 {
			switch r.True {
			case 0:
				r.Revenue = r.Amount * RevenueRate
			case 1:
				r.Loss = r.Amount
			}
		}
		running += r.Revenue - r.Loss
		r.CumulativeImpact = running
	}
	return running
}
