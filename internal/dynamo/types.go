package dynamo

import (
	"fmt"
	"math"
)

// Params is the parameter vector [d, p2, p3, p4] of one map instance.
// It is an array so that every evaluation receives its own copy.
type Params [4]float64

func (p Params) D() float64  { return p[0] }
func (p Params) P2() float64 { return p[1] }
func (p Params) P3() float64 { return p[2] }
func (p Params) P4() float64 { return p[3] }

func (p Params) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p[3] != 0
}

func (p Params) String() string {
	return fmt.Sprintf("[d=%g p2=%g p3=%g p4=%g]", p[0], p[1], p[2], p[3])
}

// Map is a one-dimensional recursion on an optical-depth-like state.
// Next must be a pure function; domain checks live in Apply.
type Map interface {
	Name() string
	Next(tau float64, p Params) float64
}

// Apply evaluates m once. A state below zero or non-finite is rejected with
// ErrDomain before evaluation, and a non-finite result is reported as
// ErrUnstable. tau == 0 is a valid input.
func Apply(m Map, tau float64, p Params) (float64, error) {
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
		return 0, fmt.Errorf("%s(%g): %w", m.Name(), tau, ErrDomain)
	}
	next := m.Next(tau, p)
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return next, fmt.Errorf("%s(%g) = %g: %w", m.Name(), tau, next, ErrUnstable)
	}
	return next, nil
}

// Iterate applies m n times starting at x0 and returns the final state.
func Iterate(m Map, x0 float64, p Params, n int) (float64, error) {
	x := x0
	for i := 0; i < n; i++ {
		next, err := Apply(m, x, p)
		if err != nil {
			return x, &StepError{Step: i, Tau: x, Wrapped: err}
		}
		x = next
	}
	return x, nil
}
