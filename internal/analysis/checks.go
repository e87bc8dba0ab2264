package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/simpson/internal/quad"
)

// Discrepancy compares two quantities that should agree up to rounding.
type Discrepancy struct {
	Name  string
	Left  float64
	Right float64
	Diff  float64
}

// CheckReversal compares the integral over [b, a] with the negated
// integral over [a, b].
func CheckReversal(rule quad.Rule, f quad.Integrand, a, b float64, n int) (Discrepancy, error) {
	fwd, err := rule.Integrate(a, b, n, f)
	if err != nil {
		return Discrepancy{}, err
	}
	rev, err := rule.Integrate(b, a, n, f)
	if err != nil {
		return Discrepancy{}, err
	}
	return Discrepancy{
		Name:  "reversal",
		Left:  rev,
		Right: -fwd,
		Diff:  math.Abs(rev + fwd),
	}, nil
}

// CheckAdditivity splits [a, b] after the first n1 of n panels and compares
// the sum of the two partial integrals with the whole.
func CheckAdditivity(rule quad.Rule, f quad.Integrand, a, b float64, n, n1 int) (Discrepancy, error) {
	if n1 < 1 || n1 >= n {
		return Discrepancy{}, fmt.Errorf("additivity: split %d must lie in [1, %d)", n1, n)
	}

	c := a + float64(n1)*(b-a)/float64(n)

	whole, err := rule.Integrate(a, b, n, f)
	if err != nil {
		return Discrepancy{}, err
	}
	left, err := rule.Integrate(a, c, n1, f)
	if err != nil {
		return Discrepancy{}, err
	}
	right, err := rule.Integrate(c, b, n-n1, f)
	if err != nil {
		return Discrepancy{}, err
	}

	return Discrepancy{
		Name:  "additivity",
		Left:  left + right,
		Right: whole,
		Diff:  math.Abs(left + right - whole),
	}, nil
}
