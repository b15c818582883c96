package maps

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

type Guillot struct{}

func NewGuillot() *Guillot {
	return &Guillot{}
}

func (g *Guillot) Name() string { return "guillot" }

func (g *Guillot) Next(tau float64, p dynamo.Params) float64 {
	gm := Gamma(tau, p[2], p[3])
	return p[0] * math.Exp(-p[1]/GuillotTemperature(tau, gm))
}
