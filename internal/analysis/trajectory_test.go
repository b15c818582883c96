package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

var _ = Describe("Trajectory", func() {
	It("starts at x0 and holds n iterates", func() {
		traj, err := analysis.Trajectory(linearMap{0.5}, 8, dynamo.Params{}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(Equal([]float64{8, 4, 2, 1}))
	})

	It("maps the singular start onto p1", func() {
		traj, err := analysis.Trajectory(maps.NewGuillot(), 0, maps.NewParams(0.3, 35, 0.6, 0.5), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj[1]).To(BeNumerically("~", 0.3, 1e-12))
	})

	It("returns the prefix on failure", func() {
		traj, err := analysis.Trajectory(linearMap{-1}, 1, dynamo.Params{}, 5)
		Expect(err).To(MatchError(dynamo.ErrDomain))
		Expect(traj).To(Equal([]float64{1, -1}))
	})
})

var _ = Describe("Cobweb", func() {
	It("alternates between the map and the diagonal", func() {
		pts := analysis.Cobweb([]float64{1, 2, 3}, 0)
		Expect(pts).To(Equal([]analysis.Point{{1, 0}, {1, 2}, {2, 2}, {2, 3}, {3, 3}}))
	})

	It("is empty for an empty trajectory", func() {
		Expect(analysis.Cobweb(nil, 0)).To(BeEmpty())
	})
})

var _ = Describe("Separation", func() {
	const delta = 1e-10

	It("grows for a chaotic orbit", func() {
		dist, err := analysis.Separation(maps.NewGuillot(), 0, maps.NewParams(0.08, 38, 0.6, 0.5), 300, delta, 30)
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(HaveLen(31))
		Expect(dist[0]).To(BeNumerically("~", delta, 1e-12))
		Expect(dist[30]).To(BeNumerically(">", 100*delta))
	})

	It("shrinks for a stable orbit", func() {
		dist, err := analysis.Separation(maps.NewGuillot(), 0, maps.NewParams(0.005, 38, 0.6, 0.5), 300, delta, 30)
		Expect(err).NotTo(HaveOccurred())
		Expect(dist[30]).To(BeNumerically("<", delta))
	})

	It("predicts exponential growth", func() {
		pred := analysis.PredictedSeparation(1e-3, math.Log(2), 3)
		Expect(pred[3]).To(BeNumerically("~", 8e-3, 1e-12))
	})
})

var _ = Describe("PowerSpectrum", func() {
	It("peaks at the Nyquist bin for a period-2 orbit", func() {
		series := make([]float64, 64)
		for i := range series {
			series[i] = 0.4
			if i%2 == 1 {
				series[i] = 0.9
			}
		}
		ps := analysis.PowerSpectrum(series)
		Expect(ps).To(HaveLen(33))
		Expect(analysis.DominantBin(ps)).To(Equal(32))
	})

	It("is flat for a fixed point", func() {
		ps := analysis.PowerSpectrum([]float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2})
		for _, v := range ps {
			Expect(v).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("is nil for an empty series", func() {
		Expect(analysis.PowerSpectrum(nil)).To(BeNil())
	})
})
