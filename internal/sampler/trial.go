package sampler

import (
	"math/rand"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

// Trial is one sampled parameter point.
type Trial struct {
	Index int
	P1    float64
	P2    float64
	P3    float64
}

// Params derives the map parameters of t with the given p4.
func (t Trial) Params(p4 float64) dynamo.Params {
	return maps.NewParams(t.P1, t.P2, t.P3, p4)
}

// Draw returns a uniform value in r, or r.Min when r is pinned.
// A pinned range consumes no randomness.
func Draw(rng *rand.Rand, r config.Range) float64 {
	if r.Pinned() {
		return r.Min
	}
	return r.Min + rng.Float64()*r.Width()
}

// DrawTrials draws n trials sequentially from a source seeded with seed,
// in the order p1, p2, p3 per trial.
func DrawTrials(cfg *config.Config, n int) []Trial {
	rng := rand.New(rand.NewSource(cfg.Seed))
	trials := make([]Trial, n)
	for i := range trials {
		trials[i] = Trial{
			Index: i,
			P1:    Draw(rng, cfg.P1),
			P2:    Draw(rng, cfg.P2),
			P3:    Draw(rng, cfg.P3),
		}
	}
	return trials
}
