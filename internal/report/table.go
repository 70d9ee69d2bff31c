package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fraudgrade/internal/grading"
	"github.com/abhisek/fraudgrade/internal/ui/theme"
)

// NoResultsMessage is printed instead of a table when nothing was graded.
const NoResultsMessage = "No valid submissions found"

// Columns of the results table, in display order.
var Columns = []string{
	"student",
	"overall_accuracy",
	"roc_auc",
	"fraud_accuracy",
	"net_financial_impact",
	"submission_file",
}

// FormatFloat renders a metric with 20 decimal places.
func FormatFloat(v float64) string {
	return fmt.Sprintf("%.20f", v)
}

// WriteSkips prints one line per skipped submission.
func WriteSkips(w io.Writer, skipped []grading.Reason) error {
	for _, r := range skipped {
		if _, err := lipgloss.Fprintln(w, theme.Skipped.Render(r.Message())); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable ranks results and prints them. Each row is labelled with the
// submission's discovery index. With no results only NoResultsMessage is
// written.
func WriteTable(w io.Writer, results []grading.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, NoResultsMessage)
		return err
	}

	if _, err := lipgloss.Fprintln(w, "\n"+theme.Heading.Render("Grading Results:")); err != nil {
		return err
	}
	_, err := io.WriteString(w, formatTable(Rank(results)))
	return err
}

func formatTable(ranked []grading.Result) string {
	index := make([]string, len(ranked))
	cells := make([][]string, len(ranked))
	for i, r := range ranked {
		index[i] = strconv.Itoa(r.Order)
		cells[i] = []string{
			r.Student,
			FormatFloat(r.OverallAccuracy),
			FormatFloat(r.ROCAUC),
			FormatFloat(r.FraudAccuracy),
			FormatFloat(r.NetFinancialImpact),
			r.SubmissionFile,
		}
	}

	indexWidth := 0
	for _, s := range index {
		indexWidth = max(indexWidth, len(s))
	}
	widths := make([]int, len(Columns))
	for c, name := range Columns {
		widths[c] = len(name)
		for _, row := range cells {
			widths[c] = max(widths[c], len(row[c]))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indexWidth))
	for c, name := range Columns {
		fmt.Fprintf(&b, "  %*s", widths[c], name)
	}
	b.WriteString("\n")

	for i, row := range cells {
		fmt.Fprintf(&b, "%-*s", indexWidth, index[i])
		for c, cell := range row {
			fmt.Fprintf(&b, "  %*s", widths[c], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
