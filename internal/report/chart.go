package report

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/abhisek/fraudgrade/internal/grading"
	"github.com/abhisek/fraudgrade/internal/ui/theme"
)

// Chart labels and size.
const (
	ChartTitle  = "Financial Predictions Over Time"
	ChartXLabel = "Transaction Date"
	ChartYLabel = "Cumulative Financial Impact ($)"

	ChartWidth  = 12 * vg.Inch
	ChartHeight = 6 * vg.Inch
)

type series struct {
	student string
	records []grading.Record
}

// chartSeries keeps one series per student. A later result for the same
// student replaces the earlier series but keeps its legend position.
func chartSeries(results []grading.Result) []series {
	pos := make(map[string]int, len(results))
	var out []series
	for _, r := range results {
		if i, ok := pos[r.Student]; ok {
			out[i].records = r.Records
			continue
		}
		pos[r.Student] = len(out)
		out = append(out, series{student: r.Student, records: r.Records})
	}
	return out
}

// NewChart plots cumulative financial impact against transaction date, one
// line per student, in the order the results were graded.
func NewChart(results []grading.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ChartTitle
	p.X.Label.Text = ChartXLabel
	p.Y.Label.Text = ChartYLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, s := range chartSeries(results) {
		xys := make(plotter.XYs, len(s.records))
		for j, rec := range s.records {
			xys[j].X = float64(rec.Date.Unix())
			xys[j].Y = rec.CumulativeImpact
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", s.student, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.student, line)
	}
	return p, nil
}

// RenderChart writes the chart for results to path. The image format follows
// the file extension.
func RenderChart(results []grading.Result, path string) error {
	p, err := NewChart(results)
	if err != nil {
		return err
	}
	if err := p.Save(ChartWidth, ChartHeight, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// WriteChartSaved tells the user where the chart went.
func WriteChartSaved(w io.Writer, path string) error {
	msg := fmt.Sprintf("Financial prediction graph saved as '%s'", path)
	_, err := lipgloss.Fprintln(w, "\n"+theme.Saved.Render(msg))
	return err
}
