package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for map evaluation.
var (
	// ErrDomain indicates a state outside the map's domain (tau < 0, NaN or Inf).
	ErrDomain = errors.New("dynamo: state outside map domain")

	// ErrUnstable indicates the trajectory diverged to NaN or Inf.
	ErrUnstable = errors.New("dynamo: trajectory numerically unstable")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// StepError wraps an error with the iteration it happened at.
type StepError struct {
	Step    int
	Tau     float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (tau=%g): %v", e.Step, e.Tau, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// Kind names the failure class of err for counters and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrUnstable):
		return "unstable"
	case errors.Is(err, ErrInvalidConfig):
		return "config"
	default:
		return "other"
	}
}
