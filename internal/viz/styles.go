package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simpson/internal/analysis"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Metric renders an aligned "label  value" line.
func Metric(label string, value any) string {
	return MetricLabel.Render(fmt.Sprintf("%-10s", label)) + " " + MetricValue.Render(fmt.Sprint(value))
}

// OrderBadge colors an observed convergence order against the expected one.
func OrderBadge(order, expected float64) string {
	text := fmt.Sprintf("%.3f", order)
	switch {
	case order == 0:
		return Subtle.Render("-")
	case order >= expected-0.1:
		return SparkHigh.Render(text)
	case order >= expected/2:
		return SparkMid.Render(text)
	default:
		return SparkLow.Render(text)
	}
}

// ErrorSparkline draws one bar per level, taller for smaller error, so a
// converging table climbs left to right. Levels without a finite error
// draw as a dot.
func ErrorSparkline(levels []analysis.Level) string {
	if len(levels) == 0 {
		return ""
	}

	bars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	logs := LogErrors(levels)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range logs {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var out strings.Builder
	for _, v := range logs {
		if math.IsNaN(v) {
			out.WriteString(Subtle.Render("·"))
			continue
		}

		// 1 at the smallest error, 0 at the largest
		height := 1.0
		if hi > lo {
			height = (hi - v) / (hi - lo)
		}
		c := string(bars[int(math.Round(height*float64(len(bars)-1)))])
		switch {
		case height > 0.7:
			out.WriteString(SparkHigh.Render(c))
		case height > 0.3:
			out.WriteString(SparkMid.Render(c))
		default:
			out.WriteString(SparkLow.Render(c))
		}
	}

	return out.String()
}
