package analysis

import (
	"context"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// BifurcationPoint holds the attractor states visited at one value of p1.
type BifurcationPoint struct {
	Param  float64
	Values []float64
	Err    error
}

// OrbitConfig controls an orbit diagram.
type OrbitConfig struct {
	// StartScales are initial states as multiples of p1.
	StartScales []float64
	Iterations  int
	Discard     int
	// Resolution quantizes values for de-duplication; 0 keeps every state.
	Resolution float64
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		StartScales: []float64{0, 0.5, 1, 1.5, 2},
		Iterations:  200,
		Discard:     100,
	}
}

// OrbitDiagram sweeps p1 along the slice and records the states visited
// after the transient, from every configured start. This is useful for
// visualizing the period-doubling route to chaos.
//
// A start whose trajectory fails is abandoned; the first such error is kept
// on the point and the states collected so far are retained.
func OrbitDiagram(ctx context.Context, m dynamo.Map, s Slice, p1s []float64, cfg OrbitConfig) ([]BifurcationPoint, error) {
	results := make([]BifurcationPoint, len(p1s))

	err := dynamo.ParallelFor(ctx, len(p1s), 8, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			results[i] = orbitAt(m, s, p1s[i], cfg)
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func orbitAt(m dynamo.Map, s Slice, p1 float64, cfg OrbitConfig) BifurcationPoint {
	p := s.Params(p1)
	kept := cfg.Iterations - cfg.Discard
	if kept < 0 {
		kept = 0
	}
	point := BifurcationPoint{Param: p1, Values: make([]float64, 0, len(cfg.StartScales)*kept)}

	seen := make(map[int64]bool)
	for _, scale := range cfg.StartScales {
		x := scale * p1
		for i := 0; i < cfg.Iterations; i++ {
			next, err := dynamo.Apply(m, x, p)
			if err != nil {
				if point.Err == nil {
					point.Err = &dynamo.StepError{Step: i, Tau: x, Wrapped: err}
				}
				break
			}
			x = next
			if i < cfg.Discard {
				continue
			}

			if cfg.Resolution > 0 {
				key := int64(x / cfg.Resolution)
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			point.Values = append(point.Values, x)
		}
	}

	return point
}
