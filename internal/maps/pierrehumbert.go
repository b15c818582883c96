package maps

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

type Pierrehumbert struct{}

func NewPierrehumbert() *Pierrehumbert {
	return &Pierrehumbert{}
}

func (m *Pierrehumbert) Name() string { return "pierrehumbert" }

func (m *Pierrehumbert) Next(tau float64, p dynamo.Params) float64 {
	gm := Gamma(tau, p[2], p[3])
	return p[0] * math.Exp(-p[1]/Temperature(tau, gm))
}
