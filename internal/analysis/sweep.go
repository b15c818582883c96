package analysis

import (
	"context"

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

// Slice fixes p2, p3 and p4 while p1 varies.
type Slice struct {
	P2 float64 `yaml:"p2"`
	P3 float64 `yaml:"p3"`
	P4 float64 `yaml:"p4"`
}

// Params returns the parameter vector at p1 on this slice.
func (s Slice) Params(p1 float64) dynamo.Params {
	return maps.NewParams(p1, s.P2, s.P3, s.P4)
}

// SweepPoint is the classification of one grid value of p1.
// Err is set when the point could not be classified.
type SweepPoint struct {
	P1 float64
	Classification
	Err error
}

// Sweep classifies every p1 in p1s along the slice. Points are independent
// and evaluated in parallel; the result keeps the order of p1s.
func Sweep(ctx context.Context, est *Estimator, m dynamo.Map, x0 float64, s Slice, p1s []float64) ([]SweepPoint, error) {
	if err := est.Window.Validate(); err != nil {
		return nil, err
	}

	results := make([]SweepPoint, len(p1s))
	err := dynamo.ParallelFor(ctx, len(p1s), 4, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			c, err := Classify(est, m, x0, s.Params(p1s[i]))
			results[i] = SweepPoint{P1: p1s[i], Classification: c, Err: err}
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
