package quad

import "math"

// Integrand is a deterministic, side-effect free function of one real
// variable. Rules treat it as a black box.
type Integrand func(x float64) float64

// Scale returns x -> alpha*f(x).
func Scale(alpha float64, f Integrand) Integrand {
	return func(x float64) float64 {
		return alpha * f(x)
	}
}

// Sum returns x -> f(x) + g(x).
func Sum(f, g Integrand) Integrand {
	return func(x float64) float64 {
		return f(x) + g(x)
	}
}

// Memoize caches f by the bit pattern of its argument, so abscissae shared
// by adjacent panels are evaluated once.
func Memoize(f Integrand) Integrand {
	cache := make(map[uint64]float64)
	return func(x float64) float64 {
		key := math.Float64bits(x)
		if v, ok := cache[key]; ok {
			return v
		}
		v := f(x)
		cache[key] = v
		return v
	}
}

// Counter records how many times an integrand is evaluated.
type Counter struct {
	f     Integrand
	calls int
}

func NewCounter(f Integrand) *Counter {
	return &Counter{f: f}
}

func (c *Counter) Eval(x float64) float64 {
	c.calls++
	return c.f(x)
}

func (c *Counter) Calls() int {
	return c.calls
}

func (c *Counter) Reset() {
	c.calls = 0
}
