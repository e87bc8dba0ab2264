package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/simpson/internal/quad"
)

// Level is one row of a convergence table.
type Level struct {
	N        int
	Value    float64
	AbsError float64
	// Ratio is the previous level's error divided by this one; zero on the
	// first level or when either error is zero or not finite.
	Ratio float64
	// Order is log2(Ratio), the observed convergence order.
	Order float64
}

// Converge integrates f with rule at startN, 2*startN, ... for the given
// number of levels and compares each result against exact.
//
// Levels run concurrently, so f must be safe for concurrent use.
func Converge(rule quad.Rule, f quad.Integrand, exact, a, b float64, startN, levels int) ([]Level, error) {
	if startN < 1 {
		return nil, fmt.Errorf("converge: start n must be at least 1, got %d", startN)
	}
	if levels < 1 {
		return nil, fmt.Errorf("converge: levels must be at least 1, got %d", levels)
	}
	if levels > 1 && startN > math.MaxInt>>(levels-1) {
		return nil, fmt.Errorf("converge: %d levels from n=%d overflow the panel count", levels, startN)
	}

	out := make([]Level, levels)
	errs := make([]error, levels)

	ParallelFor(levels, 1, func(start, end int) {
		for i := start; i < end; i++ {
			n := startN << i
			v, err := rule.Integrate(a, b, n, f)
			if err != nil {
				errs[i] = err
				continue
			}
			out[i] = Level{N: n, Value: v, AbsError: math.Abs(v - exact)}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("converge: %w", err)
		}
	}

	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1].AbsError, out[i].AbsError
		if usableError(prev) && usableError(cur) {
			out[i].Ratio = prev / cur
			out[i].Order = math.Log2(out[i].Ratio)
		}
	}

	return out, nil
}

// usableError reports whether e can enter an error ratio.
func usableError(e float64) bool {
	return e > 0 && !math.IsInf(e, 0)
}

// AsymptoticOrder returns the observed order of the last level whose ratio
// is defined, or zero when no level has one.
func AsymptoticOrder(levels []Level) float64 {
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i].Ratio > 0 {
			return levels[i].Order
		}
	}
	return 0
}
