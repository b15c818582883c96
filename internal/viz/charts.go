package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 12
)

// SeriesPlot renders data as a line chart. Non-finite values are dropped.
func SeriesPlot(data []float64, caption string) string {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return asciigraph.Plot(clean,
		asciigraph.Height(DefaultPlotHeight),
		asciigraph.Width(DefaultPlotWidth),
		asciigraph.Caption(caption),
	)
}

// SeriesPlotMany overlays several series of the same length.
func SeriesPlotMany(series [][]float64, caption string) string {
	if len(series) == 0 || len(series[0]) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(DefaultPlotHeight),
		asciigraph.Width(DefaultPlotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
	)
}

// Histogram counts finite values into bins equal-width bins over their range.
func Histogram(values []float64, bins int) (counts []int, lo, hi float64) {
	if bins < 1 {
		bins = 1
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	counts = make([]int, bins)
	if math.IsInf(lo, 0) {
		return counts, 0, 0
	}

	width := (hi - lo) / float64(bins)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		i := bins - 1
		if width > 0 {
			i = int((v - lo) / width)
		}
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts, lo, hi
}

// HistogramPlot renders the histogram of values as a line chart.
func HistogramPlot(values []float64, bins int, label string) string {
	counts, lo, hi := Histogram(values, bins)
	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(DefaultPlotHeight),
		asciigraph.Width(DefaultPlotWidth),
		asciigraph.Caption(fmt.Sprintf("%s histogram, %d bins over [%.4g, %.4g]", label, len(counts), lo, hi)),
	)
}
