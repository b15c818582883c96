package sampler_test

import (
	"context"
	"math/rand"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/sampler"
)

func sliceConfig(trials int) *config.Config {
	cfg := config.GetPreset("slice")
	cfg.Trials = trials
	cfg.Seed = 1
	return cfg
}

var _ = Describe("Draw", func() {
	It("stays inside the range", func() {
		rng := rand.New(rand.NewSource(3))
		r := config.Range{Min: 20, Max: 40}
		for i := 0; i < 1000; i++ {
			v := sampler.Draw(rng, r)
			Expect(v).To(BeNumerically(">=", 20))
			Expect(v).To(BeNumerically("<", 40))
		}
	})

	It("returns a pinned value without consuming randomness", func() {
		a := rand.New(rand.NewSource(5))
		b := rand.New(rand.NewSource(5))
		Expect(sampler.Draw(a, config.Range{Min: 38, Max: 38})).To(Equal(38.0))
		Expect(a.Float64()).To(Equal(b.Float64()))
	})
})

var _ = Describe("DrawTrials", func() {
	It("is reproducible for a seed", func() {
		cfg := config.DefaultConfig()
		cfg.Seed = 9
		Expect(sampler.DrawTrials(cfg, 50)).To(Equal(sampler.DrawTrials(cfg, 50)))

		other := cfg.Clone()
		other.Seed = 10
		Expect(sampler.DrawTrials(other, 50)).NotTo(Equal(sampler.DrawTrials(cfg, 50)))
	})

	It("indexes trials in draw order", func() {
		for i, t := range sampler.DrawTrials(config.DefaultConfig(), 10) {
			Expect(t.Index).To(Equal(i))
		}
	})
})

var _ = Describe("Sampler", func() {
	It("rejects an invalid config", func() {
		cfg := sliceConfig(0)
		_, err := sampler.New(cfg)
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})

	It("accepts a fraction strictly between zero and one", func() {
		s, err := sampler.New(sliceConfig(1000))
		Expect(err).NotTo(HaveOccurred())

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Stats.Trials).To(Equal(1000))
		Expect(res.Stats.Chaotic + res.Stats.Regular + res.Stats.Failed()).To(Equal(1000))
		Expect(res.Stats.Fraction()).To(BeNumerically(">", 0.15))
		Expect(res.Stats.Fraction()).To(BeNumerically("<", 0.5))
		Expect(res.Records).To(HaveLen(res.Stats.Chaotic))

		for _, r := range res.Records {
			Expect(r.Exponent).To(BeNumerically(">", 0))
			Expect(r.P1).To(BeNumerically(">=", 0))
			Expect(r.P1).To(BeNumerically("<", 0.4))
			Expect(r.P2).To(Equal(38.0))
			Expect(r.P3).To(Equal(0.6))
		}
	})

	It("produces the same table for any worker count", func() {
		run := func(workers int) *sampler.Result {
			cfg := sliceConfig(300)
			cfg.Workers = workers
			s, err := sampler.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			return res
		}

		serial := run(1)
		parallel := run(8)
		Expect(parallel.Records).To(Equal(serial.Records))
		Expect(parallel.Stats.Chaotic).To(Equal(serial.Stats.Chaotic))
	})

	It("keeps records in trial order", func() {
		cfg := sliceConfig(200)
		s, err := sampler.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		trials := sampler.DrawTrials(cfg, cfg.Trials)
		next := 0
		for _, r := range res.Records {
			for trials[next].P1 != r.P1 {
				next++
				Expect(next).To(BeNumerically("<", len(trials)))
			}
			next++
		}
	})

	It("stops on cancellation", func() {
		s, err := sampler.New(sliceConfig(1000))
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = s.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("stops when canceled mid-run", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s, err := sampler.New(sliceConfig(5000), sampler.WithProgress(func(p sampler.Progress) {
			if p.Done == 10 {
				cancel()
			}
		}))
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("reports progress for every trial", func() {
		var mu sync.Mutex
		var seen []sampler.Progress

		s, err := sampler.New(sliceConfig(50), sampler.WithProgress(func(p sampler.Progress) {
			mu.Lock()
			seen = append(seen, p)
			mu.Unlock()
		}))
		Expect(err).NotTo(HaveOccurred())

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(50))
		last := seen[len(seen)-1]
		Expect(last.Done).To(Equal(50))
		Expect(last.Total).To(Equal(50))
		Expect(last.Chaotic).To(Equal(res.Stats.Chaotic))
	})

	It("counts, logs and skips failing trials", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		rec := metrics.NewRecorder("guillot")

		cfg := sliceConfig(40)
		cfg.P1 = config.Range{Min: -0.2, Max: -0.1}
		s, err := sampler.New(cfg, sampler.WithLogger(zap.New(core)), sampler.WithMetrics(rec))
		Expect(err).NotTo(HaveOccurred())

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Records).To(BeEmpty())
		Expect(res.Stats.Domain).To(Equal(40))
		Expect(res.Stats.Fraction()).To(Equal(0.0))

		skipped := logs.FilterMessage("trial skipped").All()
		Expect(skipped).To(HaveLen(40))
		Expect(skipped[0].ContextMap()).To(HaveKeyWithValue("kind", "domain"))
		Expect(logs.FilterMessage("sampling finished").Len()).To(Equal(1))

		n, err := testutil.GatherAndCount(rec.Registry(), "chaosmap_trials_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
	})

	It("feeds the metrics recorder", func() {
		rec := metrics.NewRecorder("guillot")
		s, err := sampler.New(sliceConfig(200), sampler.WithMetrics(rec))
		Expect(err).NotTo(HaveOccurred())

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		n, err := testutil.GatherAndCount(rec.Registry(), "chaosmap_trials_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">=", 2))
		n, err = testutil.GatherAndCount(rec.Registry(), "chaosmap_lyapunov_exponent")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(res.Stats.Counts()[metrics.OutcomeChaotic]).To(Equal(len(res.Records)))
	})
})
