package viz

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/simpson/internal/analysis"
)

func sampleLevels() []analysis.Level {
	return []analysis.Level{
		{N: 4, Value: 1.71828, AbsError: 1e-6},
		{N: 8, Value: 1.71828, AbsError: 6.25e-8, Ratio: 16, Order: 4},
		{N: 16, Value: 1.71828, AbsError: 0, Ratio: 0, Order: 0},
	}
}

func TestLogErrors(t *testing.T) {
	got := LogErrors(sampleLevels())
	assert.InDelta(t, -6, got[0], 1e-12)
	assert.InDelta(t, math.Log10(6.25e-8), got[1], 1e-12)
	assert.InDelta(t, -17, got[2], 1e-12)
}

func TestConvergencePlot(t *testing.T) {
	assert.Empty(t, ConvergencePlot(nil, "x"))

	out := ConvergencePlot(sampleLevels(), "log10 error")
	assert.Contains(t, out, "log10 error")

	single := ConvergencePlot(sampleLevels()[:1], "one")
	assert.NotEmpty(t, single)
}

func TestConvergenceTable(t *testing.T) {
	out := ConvergenceTable(sampleLevels(), 4)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ABS ERROR")
	assert.Contains(t, lines[2], "16.00")
}

func TestLogErrorsNonFinite(t *testing.T) {
	got := LogErrors([]analysis.Level{
		{N: 4, AbsError: math.Inf(1)},
		{N: 8, AbsError: math.NaN()},
		{N: 16, AbsError: 1e-3},
	})
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, -3, got[2], 1e-12)
}

func TestConvergencePlotWithOverflowedLevel(t *testing.T) {
	levels := []analysis.Level{
		{N: 4, AbsError: math.Inf(1)},
		{N: 8, AbsError: 1e-4},
		{N: 16, AbsError: 6.25e-6},
	}

	var out string
	assert.NotPanics(t, func() { out = ConvergencePlot(levels, "mixed") })
	assert.Contains(t, out, "mixed")
	assert.NotContains(t, out, "-9223372036854775808")
}

func TestConvergencePlotNoFiniteErrors(t *testing.T) {
	levels := []analysis.Level{
		{N: 4, AbsError: math.Inf(1)},
		{N: 8, AbsError: math.NaN()},
	}

	out := ConvergencePlot(levels, "none")
	assert.Contains(t, out, "no finite errors to plot")
	assert.NotContains(t, out, "-9223372036854775808")
}

func TestErrorSparkline(t *testing.T) {
	assert.Empty(t, ErrorSparkline(nil))

	out := ErrorSparkline(sampleLevels())
	assert.Equal(t, 3, utf8.RuneCountInString(stripANSI(out)))
	assert.True(t, strings.HasSuffix(stripANSI(out), "█"), out)

	mixed := ErrorSparkline([]analysis.Level{{AbsError: math.Inf(1)}, {AbsError: 1e-2}, {AbsError: 1e-8}})
	plain := stripANSI(mixed)
	assert.True(t, strings.HasPrefix(plain, "·"), plain)
	assert.True(t, strings.HasSuffix(plain, "█"), plain)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
