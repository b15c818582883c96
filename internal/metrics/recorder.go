// Package metrics exposes sampling runs as Prometheus metrics.
//
// Runs are batch jobs, so the collectors live on a private registry that is
// written out in the node_exporter textfile format instead of being served.
package metrics

import (
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chaosmap"

// Outcome labels for the trials counter.
const (
	OutcomeChaotic  = "chaotic"
	OutcomeRegular  = "regular"
	OutcomeDomain   = "domain"
	OutcomeUnstable = "unstable"
	OutcomeOther    = "other"
)

type Recorder struct {
	registry   *prometheus.Registry
	trials     *prometheus.CounterVec
	exponents  prometheus.Histogram
	acceptance prometheus.Gauge
	duration   prometheus.Gauge
	lastRun    prometheus.Gauge

	mu   sync.Mutex
	rate *Acceptance
}

func NewRecorder(mapName string) *Recorder {
	labels := prometheus.Labels{"map": mapName}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "trials_total",
			Help:        "Sampled parameter points by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		exponents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "lyapunov_exponent",
			Help:        "Finite Lyapunov exponent estimates of classified points.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(-2, 0.25, 13),
		}),
		acceptance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "acceptance_ratio",
			Help:        "Fraction of classified points that were chaotic.",
			ConstLabels: labels,
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_duration_seconds",
			Help:        "Wall time of the last sampling run.",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the last sampling run finished.",
			ConstLabels: labels,
		}),
		rate: NewAcceptance(),
	}
	r.registry.MustRegister(r.trials, r.exponents, r.acceptance, r.duration, r.lastRun)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveTrial counts one trial. The exponent is recorded only for
// classified outcomes with a finite estimate.
func (r *Recorder) ObserveTrial(outcome string, exponent float64) {
	r.trials.WithLabelValues(outcome).Inc()

	if outcome != OutcomeChaotic && outcome != OutcomeRegular {
		return
	}
	if !math.IsInf(exponent, 0) && !math.IsNaN(exponent) {
		r.exponents.Observe(exponent)
	}

	r.mu.Lock()
	r.rate.Observe(outcome == OutcomeChaotic)
	r.acceptance.Set(r.rate.Value())
	r.mu.Unlock()
}

// ObserveRun records the end of a run.
func (r *Recorder) ObserveRun(elapsed time.Duration) {
	r.duration.Set(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
