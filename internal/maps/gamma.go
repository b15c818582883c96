package maps

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Gamma returns the opacity ratio 10^(p3*tanh(log10(tau)/p4)).
// At tau == 0 it returns the tau -> 0+ limit.
func Gamma(tau, p3, p4 float64) float64 {
	if tau == 0 {
		return math.Pow(10, -p3*math.Copysign(1, p4))
	}
	return math.Pow(10, p3*math.Tanh(math.Log10(tau)/p4))
}

// Temperature is the radiative-equilibrium temperature factor
// (1 + 1/g + (1 - 1/g) e^(-g tau))^(1/4).
func Temperature(tau, gamma float64) float64 {
	return math.Pow(1+1/gamma+(1-1/gamma)*math.Exp(-gamma*tau), 0.25)
}

// GuillotTemperature is the Guillot variant
// (1 + 1/g + (g - 1/g) e^(-g tau))^(1/4).
func GuillotTemperature(tau, gamma float64) float64 {
	return math.Pow(1+1/gamma+(gamma-1/gamma)*math.Exp(-gamma*tau), 0.25)
}

// DeriveAmplitude maps the sampled coefficient p1 to the amplitude d so that
// the recursion passes through p1 at the reference point:
// d = p1 * exp(p2 * (1 + 10^(-p3))^(-1/4)).
func DeriveAmplitude(p1, p2, p3 float64) float64 {
	return p1 * math.Exp(p2*math.Pow(1+math.Pow(10, -p3), -0.25))
}

// NewParams builds the parameter vector for a sampled point (p1, p2, p3, p4),
// deriving d from p1.
func NewParams(p1, p2, p3, p4 float64) dynamo.Params {
	return dynamo.Params{DeriveAmplitude(p1, p2, p3), p2, p3, p4}
}
