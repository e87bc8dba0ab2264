package viz

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simpson/internal/analysis"
)

// errorFloor stands in for exact zeros on the log scale.
const errorFloor = 1e-17

// LogErrors returns log10 of each level's absolute error. Non-finite errors
// map to NaN, which asciigraph leaves as a gap.
func LogErrors(levels []analysis.Level) []float64 {
	out := make([]float64, len(levels))
	for i, l := range levels {
		if math.IsNaN(l.AbsError) || math.IsInf(l.AbsError, 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log10(math.Max(l.AbsError, errorFloor))
	}
	return out
}

// ConvergencePlot draws log10|error| against the level index.
func ConvergencePlot(levels []analysis.Level, caption string) string {
	if len(levels) == 0 {
		return ""
	}

	data := LogErrors(levels)
	finite := 0
	for _, v := range data {
		if !math.IsNaN(v) {
			finite++
		}
	}
	if finite == 0 {
		return Subtle.Render("no finite errors to plot")
	}
	if len(data) == 1 {
		// asciigraph needs two points to draw a line
		data = append(data, data[0])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// ConvergenceTable renders levels as an aligned text table.
func ConvergenceTable(levels []analysis.Level, expectedOrder float64) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tVALUE\tABS ERROR\tRATIO\tORDER")
	for _, l := range levels {
		ratio := "-"
		if l.Ratio > 0 {
			ratio = fmt.Sprintf("%.2f", l.Ratio)
		}
		fmt.Fprintf(w, "%d\t%.16g\t%.3e\t%s\t%s\n",
			l.N, l.Value, l.AbsError, ratio, OrderBadge(l.Order, expectedOrder))
	}
	w.Flush()
	return b.String()
}
