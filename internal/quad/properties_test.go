package quad_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simpson/internal/quad"
)

func smooth(x float64) float64 {
	return math.Exp(-x) * math.Cos(2*x)
}

var _ = Describe("Simpson", func() {
	Describe("linearity", func() {
		DescribeTable("combines integrands linearly",
			func(alpha, beta float64, n int) {
				g := quad.Integrand(math.Sin)
				combined := quad.Sum(quad.Scale(alpha, smooth), quad.Scale(beta, g))

				rc := quad.MustSimpson(-1, 2, n, combined)
				rf := quad.MustSimpson(-1, 2, n, smooth)
				rg := quad.MustSimpson(-1, 2, n, g)

				tol := 1e-13 * (math.Abs(alpha) + math.Abs(beta)) * float64(n)
				Expect(rc).To(BeNumerically("~", alpha*rf+beta*rg, tol))
			},
			Entry("unit weights", 1.0, 1.0, 10),
			Entry("mixed signs", 3.5, -2.0, 100),
			Entry("small weights", 1e-3, 7e-4, 1000),
		)
	})

	Describe("additivity on subintervals", func() {
		It("splits at a panel boundary", func() {
			a, b := 0.0, 3.0
			n, n1 := 30, 12
			c := a + float64(n1)*(b-a)/float64(n)

			whole := quad.MustSimpson(a, b, n, smooth)
			left := quad.MustSimpson(a, c, n1, smooth)
			right := quad.MustSimpson(c, b, n-n1, smooth)

			Expect(left + right).To(BeNumerically("~", whole, 1e-13))
		})
	})

	Describe("sign reversal", func() {
		DescribeTable("negates when bounds are swapped",
			func(a, b float64, n int) {
				fwd := quad.MustSimpson(a, b, n, smooth)
				rev := quad.MustSimpson(b, a, n, smooth)
				Expect(rev).To(BeNumerically("~", -fwd, 1e-12*math.Max(1, math.Abs(fwd))))
			},
			Entry("unit interval", 0.0, 1.0, 7),
			Entry("negative range", -4.0, -1.5, 64),
			Entry("wide range", -10.0, 10.0, 500),
		)
	})

	Describe("polynomial exactness", func() {
		cubic := func(c0, c1, c2, c3 float64) (quad.Integrand, func(float64) float64) {
			f := func(x float64) float64 { return c0 + x*(c1+x*(c2+x*c3)) }
			F := func(x float64) float64 {
				return x * (c0 + x*(c1/2+x*(c2/3+x*c3/4)))
			}
			return f, F
		}

		DescribeTable("is exact for degree three and below",
			func(c0, c1, c2, c3, a, b float64, n int) {
				f, F := cubic(c0, c1, c2, c3)
				exact := F(b) - F(a)
				got := quad.MustSimpson(a, b, n, f)
				Expect(got).To(BeNumerically("~", exact, 1e-12*math.Max(1, math.Abs(exact))))
			},
			Entry("cubic, one panel", 1.0, 1.0, 1.0, 1.0, -1.0, 1.0, 1),
			Entry("cubic, many panels", -2.0, 0.5, 3.0, -1.25, 0.0, 4.0, 37),
			Entry("quadratic", 0.0, 0.0, 1.0, 0.0, -3.0, 2.0, 2),
			Entry("linear", 4.0, -2.0, 0.0, 0.0, 1.0, 9.0, 5),
		)

		It("integrates constants to k*(b-a)", func() {
			k := 2.75
			got := quad.MustSimpson(-1.5, 6.0, 13, func(float64) float64 { return k })
			Expect(got).To(BeNumerically("~", k*7.5, 1e-13))
		})
	})

	Describe("convergence rate", func() {
		It("reduces the error roughly sixteenfold when n doubles", func() {
			exact := math.E - 1
			prev := math.Abs(quad.MustSimpson(0, 1, 4, math.Exp) - exact)
			for _, n := range []int{8, 16, 32} {
				cur := math.Abs(quad.MustSimpson(0, 1, n, math.Exp) - exact)
				Expect(prev / cur).To(BeNumerically("~", 16, 0.5))
				prev = cur
			}
		})
	})

	Describe("zero-width interval", func() {
		DescribeTable("returns positive zero",
			func(a float64, n int) {
				got := quad.MustSimpson(a, a, n, smooth)
				Expect(got).To(BeZero())
				Expect(math.Signbit(got)).To(BeFalse())
			},
			Entry("origin", 0.0, 1),
			Entry("negative point", -3.0, 9),
			Entry("large n", 1.25, 10000),
		)
	})

	Describe("preconditions", func() {
		It("fails observably for n = 0", func() {
			_, err := quad.Simpson(0, 1, 0, math.Exp)
			Expect(err).To(MatchError(quad.ErrInvalidPanels))
		})

		It("rejects non-finite bounds", func() {
			_, err := quad.Simpson(0, math.Inf(1), 10, math.Exp)
			Expect(err).To(MatchError(quad.ErrNonFiniteBound))
		})
	})
})
