package quad

import (
	"errors"
	"fmt"
)

// Precondition errors for quadrature calls.
var (
	// ErrInvalidPanels indicates a panel count below one.
	ErrInvalidPanels = errors.New("quad: panel count must be at least 1")

	// ErrNonFiniteBound indicates an interval endpoint that is NaN or infinite.
	ErrNonFiniteBound = errors.New("quad: interval bounds must be finite")

	// ErrNilIntegrand indicates a missing integrand.
	ErrNilIntegrand = errors.New("quad: integrand is nil")
)

// BoundsError wraps a precondition error with the arguments of the call.
type BoundsError struct {
	A, B    float64
	N       int
	Wrapped error
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v (a=%g, b=%g, n=%d)", e.Wrapped, e.A, e.B, e.N)
}

func (e *BoundsError) Unwrap() error {
	return e.Wrapped
}
