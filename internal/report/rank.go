// Package report ranks graded submissions and renders them as a console
// table and a cumulative-impact chart.
package report

import (
	"sort"

	"github.com/abhisek/fraudgrade/internal/grading"
)

// Rank returns results ordered by net financial impact, highest first.
// Equal impacts keep their incoming order. The input is not modified.
func Rank(results []grading.Result) []grading.Result {
	ranked := make([]grading.Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetFinancialImpact > ranked[j].NetFinancialImpact
	})
	return ranked
}
