package analysis

import (
	"fmt"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// DefaultStep is the forward-difference step used by the sampling driver.
const DefaultStep = 1e-5

// Derivative approximates f'(x) with a forward difference of step h.
// Evaluation errors at x or x+h are returned unchanged in kind.
func Derivative(m dynamo.Map, x float64, p dynamo.Params, h float64) (float64, error) {
	_, d, err := forward(m, x, p, h)
	return d, err
}

// forward returns f(x) alongside the difference quotient so that the
// Lyapunov loop can advance the orbit without a third evaluation.
func forward(m dynamo.Map, x float64, p dynamo.Params, h float64) (float64, float64, error) {
	if h <= 0 {
		return 0, 0, fmt.Errorf("derivative step %g: %w", h, dynamo.ErrInvalidConfig)
	}
	fx, err := dynamo.Apply(m, x, p)
	if err != nil {
		return fx, 0, err
	}
	fxh, err := dynamo.Apply(m, x+h, p)
	if err != nil {
		return fx, 0, err
	}
	return fx, (fxh - fx) / h, nil
}
