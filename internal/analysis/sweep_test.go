package analysis_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/maps"
)

var _ = Describe("Linspace", func() {
	It("includes both ends", func() {
		Expect(analysis.Linspace(0, 1, 5)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})

	It("handles degenerate sizes", func() {
		Expect(analysis.Linspace(0, 1, 0)).To(BeEmpty())
		Expect(analysis.Linspace(3, 9, 1)).To(Equal([]float64{3}))
	})
})

var _ = Describe("Sweep", func() {
	est := analysis.NewEstimator(analysis.DefaultStep, analysis.ShortWindow)
	s := analysis.Slice{P2: slice38.P2, P3: slice38.P3, P4: slice38.P4}

	It("changes sign between the contracting and chaotic ends", func() {
		p1s := []float64{0.005, 0.01, 0.02, 0.08}
		points, err := analysis.Sweep(context.Background(), est, maps.NewGuillot(), 0, s, p1s)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(len(p1s)))

		for i, pt := range points {
			Expect(pt.P1).To(Equal(p1s[i]))
			Expect(pt.Err).NotTo(HaveOccurred())
		}
		Expect(points[0].Exponent).To(BeNumerically("<", 0))
		Expect(points[3].Exponent).To(BeNumerically(">", 0))
	})

	It("finds a sign change over a fine grid", func() {
		points, err := analysis.Sweep(context.Background(), est, maps.NewGuillot(), 0, s, analysis.Linspace(0.005, 0.4, 40))
		Expect(err).NotTo(HaveOccurred())

		var negative, positive int
		for _, pt := range points {
			if pt.Err != nil {
				continue
			}
			if pt.Chaotic {
				positive++
			} else {
				negative++
			}
		}
		Expect(negative).To(BeNumerically(">", 0))
		Expect(positive).To(BeNumerically(">", 0))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := analysis.Sweep(ctx, est, maps.NewGuillot(), 0, s, analysis.Linspace(0.01, 0.4, 64))
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("OrbitDiagram", func() {
	s := analysis.Slice{P2: slice38.P2, P3: slice38.P3, P4: slice38.P4}

	It("collapses a stable point and spreads a chaotic one", func() {
		cfg := analysis.DefaultOrbitConfig()
		cfg.Resolution = 1e-6

		points, err := analysis.OrbitDiagram(context.Background(), maps.NewGuillot(), s, []float64{0.005, 0.08}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(2))

		Expect(points[0].Err).NotTo(HaveOccurred())
		Expect(len(points[0].Values)).To(BeNumerically("<=", 2))
		Expect(len(points[1].Values)).To(BeNumerically(">", 50))
	})

	It("keeps every state without a resolution", func() {
		cfg := analysis.OrbitConfig{StartScales: []float64{1}, Iterations: 30, Discard: 10}
		points, err := analysis.OrbitDiagram(context.Background(), maps.NewGuillot(), s, []float64{0.2}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(points[0].Values).To(HaveLen(20))
	})
})
