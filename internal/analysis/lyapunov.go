package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Window is the number of discarded and averaged iterations of one estimate.
type Window struct {
	Transient int `yaml:"transient"`
	Averaging int `yaml:"averaging"`
}

var (
	// ShortWindow matches the parameter-space sampling driver.
	ShortWindow = Window{Transient: 50, Averaging: 1000}
	// LongWindow matches the single-orbit diagnostics.
	LongWindow = Window{Transient: 300, Averaging: 10000}
)

func (w Window) Validate() error {
	if w.Transient < 0 {
		return fmt.Errorf("transient must be non-negative, got %d: %w", w.Transient, dynamo.ErrInvalidConfig)
	}
	if w.Averaging <= 0 {
		return fmt.Errorf("averaging must be positive, got %d: %w", w.Averaging, dynamo.ErrInvalidConfig)
	}
	return nil
}

// Estimator computes finite-sample Lyapunov exponents.
// Larger windows lower the variance of the estimate at proportional cost.
type Estimator struct {
	Step   float64
	Window Window
}

func NewEstimator(step float64, w Window) *Estimator {
	return &Estimator{Step: step, Window: w}
}

// Estimate returns the Lyapunov exponent of m at p, in nats per iteration.
//
// Algorithm (Strogatz ch. 10):
// 1. Iterate Window.Transient times from x0, discarding the states
// 2. Sum ln|f'(tau_i)| over the next Window.Averaging states
// 3. λ ≈ sum / Window.Averaging
//
// A zero derivative contributes -Inf (a superstable orbit) and the estimate
// is -Inf. A NaN or +Inf term fails with dynamo.ErrUnstable.
func (e *Estimator) Estimate(m dynamo.Map, x0 float64, p dynamo.Params) (float64, error) {
	if err := e.Window.Validate(); err != nil {
		return 0, err
	}

	x, err := dynamo.Iterate(m, x0, p, e.Window.Transient)
	if err != nil {
		return 0, err
	}

	sumLog := 0.0
	for i := 0; i < e.Window.Averaging; i++ {
		step := e.Window.Transient + i

		fx, d, err := forward(m, x, p, e.Step)
		if err != nil {
			return 0, &dynamo.StepError{Step: step, Tau: x, Wrapped: err}
		}

		term := math.Log(math.Abs(d))
		if math.IsNaN(term) || math.IsInf(term, 1) {
			return 0, &dynamo.StepError{
				Step:    step,
				Tau:     x,
				Wrapped: fmt.Errorf("ln|f'| = %g: %w", term, dynamo.ErrUnstable),
			}
		}
		sumLog += term
		x = fx
	}

	return sumLog / float64(e.Window.Averaging), nil
}
