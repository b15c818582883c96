// Package sampler runs the randomized parameter-space survey: it draws
// trials, classifies each one on a worker pool and collects the chaotic
// points in trial order.
package sampler

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/store"
)

// Stats summarizes a run. Every trial lands in exactly one counter.
type Stats struct {
	Trials   int
	Chaotic  int
	Regular  int
	Domain   int
	Unstable int
	Other    int
	Elapsed  time.Duration
}

func (s Stats) Failed() int { return s.Domain + s.Unstable + s.Other }

// Fraction is the share of all trials that were kept as chaotic.
func (s Stats) Fraction() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Chaotic) / float64(s.Trials)
}

func (s Stats) Counts() map[string]int {
	return map[string]int{
		metrics.OutcomeChaotic:  s.Chaotic,
		metrics.OutcomeRegular:  s.Regular,
		metrics.OutcomeDomain:   s.Domain,
		metrics.OutcomeUnstable: s.Unstable,
		metrics.OutcomeOther:    s.Other,
	}
}

// Progress is reported after every completed trial.
type Progress struct {
	Done    int
	Total   int
	Chaotic int
	Failed  int
	Elapsed time.Duration
}

type Result struct {
	Records []store.Record
	Stats   Stats
}

type Option func(*Sampler)

func WithLogger(l *zap.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Sampler) { s.metrics = r }
}

// WithProgress registers fn to be called from the collecting goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(s *Sampler) { s.progress = fn }
}

type Sampler struct {
	cfg      *config.Config
	m        dynamo.Map
	est      *analysis.Estimator
	logger   *zap.Logger
	metrics  *metrics.Recorder
	progress func(Progress)
}

func New(cfg *config.Config, opts ...Option) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := maps.Get(cfg.Map)
	if err != nil {
		return nil, err
	}
	est, err := cfg.Estimator()
	if err != nil {
		return nil, err
	}

	s := &Sampler{cfg: cfg.Clone(), m: m, est: est, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sampler) workers() int {
	n := s.cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > s.cfg.Trials {
		n = s.cfg.Trials
	}
	return n
}

type outcome struct {
	trial Trial
	class analysis.Classification
	err   error
}

// Run samples cfg.Trials points. Numerical failures of single trials are
// counted and skipped; only cancellation aborts the run.
func (s *Sampler) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	trials := DrawTrials(s.cfg, s.cfg.Trials)
	workers := s.workers()

	s.logger.Info("sampling started",
		zap.String("map", s.m.Name()),
		zap.Int("trials", len(trials)),
		zap.Int("workers", workers),
		zap.Int64("seed", s.cfg.Seed),
		zap.Int("transient", s.est.Window.Transient),
		zap.Int("averaging", s.est.Window.Averaging),
	)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan Trial)
	results := make(chan outcome, workers)

	g.Go(func() error {
		defer close(jobs)
		for _, t := range trials {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- t:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var pool errgroup.Group
	for w := 0; w < workers; w++ {
		pool.Go(func() error {
			for t := range jobs {
				c, err := analysis.Classify(s.est, s.m, s.cfg.X0, t.Params(s.cfg.P4))
				select {
				case results <- outcome{trial: t, class: c, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		err := pool.Wait()
		close(results)
		return err
	})

	slots := make([]*store.Record, len(trials))
	stats := Stats{Trials: len(trials)}
	done := 0
	for o := range results {
		done++
		s.collect(o, slots, &stats)
		if s.progress != nil {
			s.progress(Progress{
				Done:    done,
				Total:   len(trials),
				Chaotic: stats.Chaotic,
				Failed:  stats.Failed(),
				Elapsed: time.Since(start),
			})
		}
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("sampling aborted", zap.Int("completed", done), zap.Error(err))
		return nil, err
	}

	records := make([]store.Record, 0, stats.Chaotic)
	for _, r := range slots {
		if r != nil {
			records = append(records, *r)
		}
	}
	stats.Elapsed = time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveRun(stats.Elapsed)
	}
	s.logger.Info("sampling finished",
		zap.Int("chaotic", stats.Chaotic),
		zap.Int("regular", stats.Regular),
		zap.Int("domain", stats.Domain),
		zap.Int("unstable", stats.Unstable),
		zap.Int("other", stats.Other),
		zap.Float64("fraction", stats.Fraction()),
		zap.Duration("elapsed", stats.Elapsed),
	)

	return &Result{Records: records, Stats: stats}, nil
}

func (s *Sampler) collect(o outcome, slots []*store.Record, stats *Stats) {
	var label string
	switch {
	case o.err != nil:
		label = dynamo.Kind(o.err)
		switch label {
		case metrics.OutcomeDomain:
			stats.Domain++
		case metrics.OutcomeUnstable:
			stats.Unstable++
		default:
			label = metrics.OutcomeOther
			stats.Other++
		}
		s.logger.Debug("trial skipped",
			zap.Int("trial", o.trial.Index),
			zap.Float64("p1", o.trial.P1),
			zap.Float64("p2", o.trial.P2),
			zap.Float64("p3", o.trial.P3),
			zap.String("kind", label),
			zap.Error(o.err),
		)
	case o.class.Chaotic:
		label = metrics.OutcomeChaotic
		stats.Chaotic++
		slots[o.trial.Index] = &store.Record{
			P1:       o.trial.P1,
			P2:       o.trial.P2,
			P3:       o.trial.P3,
			Exponent: o.class.Exponent,
		}
	default:
		label = metrics.OutcomeRegular
		stats.Regular++
	}

	if s.metrics != nil {
		s.metrics.ObserveTrial(label, o.class.Exponent)
	}
}
