package analysis_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

var _ = Describe("Derivative", func() {
	DescribeTable("recovers the slope of a linear map",
		func(c, x float64) {
			d, err := analysis.Derivative(linearMap{c}, x, dynamo.Params{}, analysis.DefaultStep)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeNumerically("~", c, math.Abs(c)*1e-3))
		},
		Entry("c = 2", 2.0, 1.5),
		Entry("c = 0.3", 0.3, 10.0),
		Entry("c = 7 at zero", 7.0, 0.0),
	)

	It("propagates domain errors", func() {
		_, err := analysis.Derivative(maps.NewGuillot(), -0.5, maps.NewParams(0.1, 30, 0.6, 0.5), analysis.DefaultStep)
		Expect(err).To(MatchError(dynamo.ErrDomain))
	})

	It("rejects a non-positive step", func() {
		_, err := analysis.Derivative(linearMap{2}, 1, dynamo.Params{}, 0)
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})
})

var _ = Describe("Estimator", func() {
	est := analysis.NewEstimator(analysis.DefaultStep, analysis.ShortWindow)

	It("returns ln|c| for a contracting linear map", func() {
		lambda, err := est.Estimate(linearMap{0.5}, 1, dynamo.Params{})
		Expect(err).NotTo(HaveOccurred())
		Expect(lambda).To(BeNumerically("~", math.Log(0.5), 1e-6))
	})

	It("is deterministic", func() {
		p := maps.NewParams(0.08, 38, 0.6, 0.5)
		a, errA := est.Estimate(maps.NewGuillot(), 0, p)
		b, errB := est.Estimate(maps.NewGuillot(), 0, p)
		Expect(errA).NotTo(HaveOccurred())
		Expect(errB).NotTo(HaveOccurred())
		Expect(math.Float64bits(a)).To(Equal(math.Float64bits(b)))
	})

	It("accepts the singular start x0 = 0", func() {
		_, err := est.Estimate(maps.NewGuillot(), 0, maps.NewParams(0.2, 30, 1.2, 0.5))
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports divergence as unstable with the failing step", func() {
		_, err := est.Estimate(linearMap{2}, 1, dynamo.Params{})
		Expect(err).To(MatchError(dynamo.ErrUnstable))

		var se *dynamo.StepError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Step).To(Equal(1023))
	})

	It("reports a negative state as a domain error", func() {
		_, err := est.Estimate(linearMap{-1}, 1, dynamo.Params{})
		Expect(err).To(MatchError(dynamo.ErrDomain))
		Expect(dynamo.Kind(err)).To(Equal("domain"))
	})

	It("returns -Inf for a superstable orbit", func() {
		lambda, err := est.Estimate(constantMap{0.3}, 1, dynamo.Params{})
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsInf(lambda, -1)).To(BeTrue())
	})

	It("validates its window", func() {
		bad := analysis.NewEstimator(analysis.DefaultStep, analysis.Window{Transient: 10, Averaging: 0})
		_, err := bad.Estimate(linearMap{0.5}, 1, dynamo.Params{})
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})

	It("keeps the sign under the long window", func() {
		long := analysis.NewEstimator(analysis.DefaultStep, analysis.LongWindow)
		lambda, err := long.Estimate(maps.NewGuillot(), 0, maps.NewParams(0.08, 38, 0.6, 0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(lambda).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Classify", func() {
	est := analysis.NewEstimator(analysis.DefaultStep, analysis.ShortWindow)
	guillot := maps.NewGuillot()

	It("uses a strict zero threshold", func() {
		Expect(analysis.IsChaotic(0)).To(BeFalse())
		Expect(analysis.IsChaotic(math.SmallestNonzeroFloat64)).To(BeTrue())
		Expect(analysis.IsChaotic(math.Inf(-1))).To(BeFalse())
	})

	It("classifies a contracting point as regular", func() {
		c, err := analysis.Classify(est, guillot, 0, maps.NewParams(0.005, 38, 0.6, 0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Exponent).To(BeNumerically("<", 0))
		Expect(c.Chaotic).To(BeFalse())
	})

	It("classifies a stretching point as chaotic", func() {
		c, err := analysis.Classify(est, guillot, 0, maps.NewParams(0.08, 38, 0.6, 0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Exponent).To(BeNumerically(">", 0))
		Expect(c.Chaotic).To(BeTrue())
	})

	It("treats estimation failures as unclassifiable", func() {
		c, err := analysis.Classify(est, linearMap{2}, 1, dynamo.Params{})
		Expect(err).To(HaveOccurred())
		Expect(c.Chaotic).To(BeFalse())
	})
})
