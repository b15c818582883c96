package maps_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

func params(p1, p2, p3, p4 float64) dynamo.Params {
	return maps.NewParams(p1, p2, p3, p4)
}

var _ = Describe("Gamma", func() {
	It("is 1 at tau = 1", func() {
		Expect(maps.Gamma(1, 1.3, 0.5)).To(Equal(1.0))
	})

	It("takes the tau -> 0+ limit at zero", func() {
		Expect(maps.Gamma(0, 0.6, 0.5)).To(BeNumerically("~", math.Pow(10, -0.6), 1e-15))
		Expect(maps.Gamma(0, 0.6, -0.5)).To(BeNumerically("~", math.Pow(10, 0.6), 1e-12))
		Expect(maps.Gamma(1e-300, 0.6, 0.5)).To(BeNumerically("~", maps.Gamma(0, 0.6, 0.5), 1e-12))
	})

	It("stays within [10^-p3, 10^p3]", func() {
		for _, tau := range []float64{1e-6, 0.01, 0.5, 3, 250} {
			g := maps.Gamma(tau, 2, 0.5)
			Expect(g).To(BeNumerically(">=", 0.01-1e-15))
			Expect(g).To(BeNumerically("<=", 100+1e-12))
		}
	})
})

var _ = Describe("Guillot", func() {
	m := maps.NewGuillot()

	It("maps the singular start onto p1", func() {
		for _, p1 := range []float64{0.01, 0.2, 0.4} {
			p := params(p1, 30, 0.8, 0.5)
			Expect(m.Next(0, p)).To(BeNumerically("~", p1, p1*1e-12))
		}
	})

	It("is constant p1 when p3 = 0", func() {
		p := params(0.3, 25, 0, 0.5)
		for _, tau := range []float64{1e-3, 0.7, 1, 12} {
			Expect(m.Next(tau, p)).To(BeNumerically("~", 0.3, 1e-12))
		}
	})

	It("returns finite positive values over the sampled ranges", func() {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 500; i++ {
			p := params(0.01+rng.Float64()*0.39, 20+rng.Float64()*20, rng.Float64()*2, 0.5)
			tau := math.Pow(10, -4+rng.Float64()*6)
			next, err := dynamo.Apply(m, tau, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(BeNumerically(">", 0))
			Expect(math.IsInf(next, 0)).To(BeFalse())
		}
	})
})

var _ = Describe("Pierrehumbert", func() {
	m := maps.NewPierrehumbert()

	It("agrees with Guillot when gamma = 1", func() {
		p := params(0.25, 38, 0.6, 0.5)
		Expect(m.Next(1, p)).To(BeNumerically("~", maps.NewGuillot().Next(1, p), 1e-12))
	})

	It("differs from Guillot away from tau = 1", func() {
		p := params(0.25, 38, 0.6, 0.5)
		Expect(m.Next(0.1, p)).NotTo(BeNumerically("~", maps.NewGuillot().Next(0.1, p), 1e-9))
	})

	It("evaluates the closed form at the singular start", func() {
		p := params(0.25, 38, 0.6, 0.5)
		want := p[0] * math.Exp(-38*math.Pow(2, -0.25))
		Expect(m.Next(0, p)).To(BeNumerically("~", want, want*1e-12))
	})
})

var _ = Describe("reference values", func() {
	p := params(0.08, 38, 0.6, 0.5)

	DescribeTable("match high-precision evaluations",
		func(m dynamo.Map, tau, want float64) {
			Expect(m.Next(tau, p)).To(BeNumerically("~", want, want*1e-6))
		},
		Entry("guillot tau=1e-3", maps.NewGuillot(), 1e-3, 0.08054204504033495),
		Entry("guillot tau=0.3", maps.NewGuillot(), 0.3, 0.65499653031270211),
		Entry("guillot tau=2.5", maps.NewGuillot(), 2.5, 0.22320334812885467),
		Entry("pierrehumbert tau=1e-3", maps.NewPierrehumbert(), 1e-3, 4.2752394441747184),
		Entry("pierrehumbert tau=0.3", maps.NewPierrehumbert(), 0.3, 8.6712514363165702),
		Entry("pierrehumbert tau=2.5", maps.NewPierrehumbert(), 2.5, 0.21918205397299528),
	)
})

var _ = Describe("Apply", func() {
	m := maps.NewGuillot()
	p := params(0.2, 30, 0.6, 0.5)

	DescribeTable("rejects states outside the domain",
		func(tau float64) {
			_, err := dynamo.Apply(m, tau, p)
			Expect(err).To(MatchError(dynamo.ErrDomain))
		},
		Entry("negative", -1e-9),
		Entry("NaN", math.NaN()),
		Entry("+Inf", math.Inf(1)),
	)

	It("accepts zero", func() {
		next, err := dynamo.Apply(m, 0, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(next).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("flags non-finite output as unstable", func() {
		_, err := dynamo.Apply(m, 1, dynamo.Params{math.Inf(1), 30, 0.6, 0.5})
		Expect(err).To(MatchError(dynamo.ErrUnstable))
	})
})

var _ = Describe("Registry", func() {
	It("lists maps in sorted order", func() {
		Expect(maps.Names()).To(Equal([]string{"guillot", "pierrehumbert"}))
	})

	It("resolves known names", func() {
		m, err := maps.Get("pierrehumbert")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Name()).To(Equal("pierrehumbert"))
	})

	It("rejects unknown names", func() {
		_, err := maps.Get("logistic")
		Expect(err).To(MatchError(ContainSubstring("unknown map")))
	})
})
