package integrands

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/simpson/internal/quad"
)

// Spec is a named integrand together with an antiderivative used for exact
// reference values. Antiderivative is nil when no closed form is known.
type Spec struct {
	Name           string
	Description    string
	F              quad.Integrand
	Antiderivative func(x float64) float64
	Params         map[string]float64
}

// Exact returns F(b) - F(a), or false when no antiderivative is known.
func (s *Spec) Exact(a, b float64) (float64, bool) {
	if s.Antiderivative == nil {
		return 0, false
	}
	return s.Antiderivative(b) - s.Antiderivative(a), true
}

type entry struct {
	description string
	defaults    map[string]float64
	build       func(p map[string]float64) (quad.Integrand, func(float64) float64)
}

type Registry struct {
	integrands map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{integrands: make(map[string]entry)}

	r.integrands["exp"] = entry{
		description: "e^x",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			return math.Exp, math.Exp
		},
	}
	r.integrands["sin"] = entry{
		description: "sin(x)",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			return math.Sin, func(x float64) float64 { return -math.Cos(x) }
		},
	}
	r.integrands["cos"] = entry{
		description: "cos(x)",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			return math.Cos, math.Sin
		},
	}
	r.integrands["poly"] = entry{
		description: "c0 + c1*x + c2*x^2 + c3*x^3",
		defaults:    map[string]float64{"c0": 1, "c1": 1, "c2": 1, "c3": 1},
		build: func(p map[string]float64) (quad.Integrand, func(float64) float64) {
			c0, c1, c2, c3 := p["c0"], p["c1"], p["c2"], p["c3"]
			f := func(x float64) float64 { return c0 + x*(c1+x*(c2+x*c3)) }
			F := func(x float64) float64 { return x * (c0 + x*(c1/2+x*(c2/3+x*c3/4))) }
			return f, F
		},
	}
	r.integrands["const"] = entry{
		description: "k",
		defaults:    map[string]float64{"k": 1},
		build: func(p map[string]float64) (quad.Integrand, func(float64) float64) {
			k := p["k"]
			return func(float64) float64 { return k }, func(x float64) float64 { return k * x }
		},
	}
	r.integrands["gauss"] = entry{
		description: "e^(-x^2)",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			f := func(x float64) float64 { return math.Exp(-x * x) }
			F := func(x float64) float64 { return math.Sqrt(math.Pi) / 2 * math.Erf(x) }
			return f, F
		},
	}
	r.integrands["recip"] = entry{
		description: "1/(1+x), x > -1",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			f := func(x float64) float64 { return 1 / (1 + x) }
			return f, math.Log1p
		},
	}
	r.integrands["sqrt"] = entry{
		description: "sqrt(x), x >= 0",
		build: func(map[string]float64) (quad.Integrand, func(float64) float64) {
			F := func(x float64) float64 { return 2.0 / 3.0 * x * math.Sqrt(x) }
			return math.Sqrt, F
		},
	}

	return r
}

// Get builds the named integrand. Params override the integrand's defaults;
// unknown parameter names are rejected.
func (r *Registry) Get(name string, params map[string]float64) (*Spec, error) {
	e, ok := r.integrands[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrand: %s", name)
	}

	p := make(map[string]float64, len(e.defaults))
	for k, v := range e.defaults {
		p[k] = v
	}
	for k, v := range params {
		if _, ok := e.defaults[k]; !ok {
			return nil, fmt.Errorf("integrand %s: unknown parameter %q", name, k)
		}
		p[k] = v
	}

	f, F := e.build(p)
	return &Spec{
		Name:           name,
		Description:    e.description,
		F:              f,
		Antiderivative: F,
		Params:         p,
	}, nil
}

func (r *Registry) Describe(name string) string {
	return r.integrands[name].description
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.integrands))
	for name := range r.integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
