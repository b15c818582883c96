package viz

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/chaosmap/internal/sampler"
	"github.com/san-kum/chaosmap/internal/store"
)

// RenderStats summarizes a finished sampling run.
func RenderStats(s sampler.Stats, output string) string {
	pairs := [][2]string{
		{"trials", fmt.Sprintf("%d", s.Trials)},
		{"chaotic", ChaoticStyle.Render(fmt.Sprintf("%d (%.1f%%)", s.Chaotic, 100*s.Fraction()))},
		{"regular", RegularStyle.Render(fmt.Sprintf("%d", s.Regular))},
		{"failed", FailedStyle.Render(fmt.Sprintf("%d domain, %d unstable, %d other", s.Domain, s.Unstable, s.Other))},
		{"elapsed", s.Elapsed.Round(time.Millisecond).String()},
	}
	if output != "" {
		pairs = append(pairs, [2]string{"output", output})
	}
	return Box("sampling run", KeyValues(pairs))
}

// TableSummary holds the column ranges of a chaotic table.
type TableSummary struct {
	Rows          int
	P1, P2, P3    [2]float64
	Exponent      [2]float64
	MeanExponent  float64
	StrongChaotic int // exponent above 0.5
}

func SummarizeTable(records []store.Record) TableSummary {
	s := TableSummary{Rows: len(records)}
	if len(records) == 0 {
		return s
	}
	inf := math.Inf(1)
	s.P1, s.P2, s.P3, s.Exponent = [2]float64{inf, -inf}, [2]float64{inf, -inf}, [2]float64{inf, -inf}, [2]float64{inf, -inf}
	sum := 0.0
	for _, r := range records {
		widen(&s.P1, r.P1)
		widen(&s.P2, r.P2)
		widen(&s.P3, r.P3)
		widen(&s.Exponent, r.Exponent)
		sum += r.Exponent
		if r.Exponent > 0.5 {
			s.StrongChaotic++
		}
	}
	s.MeanExponent = sum / float64(len(records))
	return s
}

func widen(r *[2]float64, v float64) {
	r[0] = math.Min(r[0], v)
	r[1] = math.Max(r[1], v)
}

func RenderTableSummary(path string, s TableSummary) string {
	if s.Rows == 0 {
		return Box(path, Subtle.Render("no chaotic points"))
	}
	span := func(r [2]float64) string { return fmt.Sprintf("%.4g .. %.4g", r[0], r[1]) }
	return Box(path, KeyValues([][2]string{
		{"rows", fmt.Sprintf("%d", s.Rows)},
		{"p1", span(s.P1)},
		{"p2", span(s.P2)},
		{"p3", span(s.P3)},
		{"exponent", span(s.Exponent)},
		{"mean exponent", fmt.Sprintf("%.5f", s.MeanExponent)},
		{"exponent > 0.5", fmt.Sprintf("%d", s.StrongChaotic)},
	}))
}
