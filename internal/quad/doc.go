// Package quad provides one-dimensional numerical quadrature.
//
// The package defines the integrand type and the composite Simpson rule
// used throughout the simpson lab:
//
//   - [Integrand]: real-to-real function sampled by a rule
//   - [Simpson]: composite Simpson's 1/3 rule over n uniform panels
//   - [Rule]: interface implemented by [SimpsonRule]
//   - [Memoize], [Counter]: integrand wrappers for expensive or audited functions
//
// # Example
//
//	area, err := quad.Simpson(0, 1, 100, math.Exp)
//	if err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// [Simpson] holds no state and may be called from any number of
// goroutines, provided the integrand is itself safe for concurrent use.
// The [Memoize] and [Counter] wrappers are NOT safe for concurrent use.
package quad
