// Package analysis provides accuracy studies for quadrature rules.
//
// The package includes tools for characterizing a rule on a given integrand:
//
//   - [Converge]: error table over successively doubled panel counts
//   - [CheckReversal]: discrepancy between forward and reversed integrals
//   - [CheckAdditivity]: discrepancy when the interval is split on a panel boundary
//
// # Convergence Order
//
// For smooth integrands composite Simpson's rule is fourth order, so each
// doubling of n should shrink the error about sixteenfold:
//
//	levels, _ := analysis.Converge(quad.NewSimpson(), math.Exp, math.E-1, 0, 1, 4, 6)
//	for _, l := range levels {
//	    fmt.Println(l.N, l.AbsError, l.Order)
//	}
//
// Once n is large (around 10^6 for e^x on [0, 1]) rounding error dominates
// and the observed order decays.
package analysis
