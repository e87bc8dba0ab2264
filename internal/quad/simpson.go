package quad

import "math"

// Rule approximates the integral of f over [a, b] using n panels.
type Rule interface {
	Integrate(a, b float64, n int, f Integrand) (float64, error)
}

// SimpsonRule is the composite Simpson's 1/3 rule as a [Rule].
type SimpsonRule struct{}

func NewSimpson() *SimpsonRule {
	return &SimpsonRule{}
}

func (s *SimpsonRule) Integrate(a, b float64, n int, f Integrand) (float64, error) {
	return Simpson(a, b, n, f)
}

// Simpson integrates f over [a, b] with the composite Simpson's 1/3 rule on
// n panels of width dx = (b-a)/n. Each panel contributes
// dx/6 * (f(left) + 4*f(mid) + f(right)), summed left to right in float64.
//
// The panel count is a Go int, so on 64-bit platforms it is not limited to
// the 2^31-1 panels of a 32-bit count. b may be less than a, in which case the
// result is negated. f is evaluated exactly 3n times, in panel order, and
// NaN or infinite samples propagate into the result unchanged.
//
// A non-positive n, a non-finite bound or a nil f returns a *BoundsError and
// no integrand evaluation takes place.
func Simpson(a, b float64, n int, f Integrand) (float64, error) {
	if err := checkArgs(a, b, n, f); err != nil {
		return 0, err
	}

	dx := (b - a) / float64(n)
	result := 0.0
	for i := 1; i <= n; i++ {
		fi := float64(i)
		left := f(a + (fi-1)*dx)
		mid := f(a + (fi-0.5)*dx)
		right := f(a + fi*dx)
		result += dx * (left + 4*mid + right) / 6
	}

	return result, nil
}

// MustSimpson is like Simpson but panics if the arguments are invalid.
// It is meant for drivers whose inputs are fixed.
func MustSimpson(a, b float64, n int, f Integrand) float64 {
	v, err := Simpson(a, b, n, f)
	if err != nil {
		panic(err)
	}
	return v
}

func checkArgs(a, b float64, n int, f Integrand) error {
	var err error
	switch {
	case n < 1:
		err = ErrInvalidPanels
	case !isFinite(a) || !isFinite(b):
		err = ErrNonFiniteBound
	case f == nil:
		err = ErrNilIntegrand
	default:
		return nil
	}
	return &BoundsError{A: a, B: b, N: n, Wrapped: err}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
