package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/dynamo"
)

// OrbitPlot draws every visited state against its p1 value.
func OrbitPlot(points []analysis.BifurcationPoint, w, h int) string {
	if len(points) == 0 {
		return ""
	}
	xmin, xmax := points[0].Param, points[len(points)-1].Param
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, pt := range points {
		for _, v := range pt.Values {
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}
	if math.IsInf(ymin, 0) {
		return ""
	}

	plot := NewPlot(w, h, xmin, xmax, ymin, ymax)
	for _, pt := range points {
		for _, v := range pt.Values {
			plot.Point(pt.Param, v)
		}
	}
	return frame(plot, "p1", "tau")
}

// CobwebPlot draws the map curve, the diagonal and the staircase of a
// trajectory in the (tau_i, tau_{i+1}) plane.
func CobwebPlot(m dynamo.Map, p dynamo.Params, traj []float64, w, h int) string {
	if len(traj) == 0 {
		return ""
	}
	hi := 0.0
	for _, v := range traj {
		hi = math.Max(hi, v)
	}
	hi *= 1.1
	if hi == 0 {
		hi = 1
	}

	plot := NewPlot(w, h, 0, hi, 0, hi)
	plot.Line(0, 0, hi, hi)

	steps := plot.PixelWidth()
	prevX, prevY := math.NaN(), math.NaN()
	for i := 0; i <= steps; i++ {
		x := hi * float64(i) / float64(steps)
		y, err := dynamo.Apply(m, x, p)
		if err != nil {
			prevX = math.NaN()
			continue
		}
		if !math.IsNaN(prevX) {
			plot.Line(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}

	pts := analysis.Cobweb(traj, 0)
	for i := 0; i+1 < len(pts); i++ {
		plot.Line(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y)
	}
	return frame(plot, "tau_i", "tau_i+1")
}

func frame(p *Plot, xLabel, yLabel string) string {
	var b strings.Builder
	b.WriteString(Subtle.Render(fmt.Sprintf("%s %.4g..%.4g", yLabel, p.YMin, p.YMax)))
	b.WriteByte('\n')
	b.WriteString(p.String())
	b.WriteString(Subtle.Render(fmt.Sprintf("%s %.4g..%.4g", xLabel, p.XMin, p.XMax)))
	return b.String()
}
