package analysis

import "github.com/san-kum/chaosmap/internal/dynamo"

// Classification is the verdict for one parameter point.
type Classification struct {
	Exponent float64
	Chaotic  bool
}

// IsChaotic is the decision rule: strictly positive exponent, no margin.
func IsChaotic(exponent float64) bool {
	return exponent > 0
}

// Classify estimates the exponent of m at p and applies IsChaotic.
// An estimation error means the point is unclassifiable, never regular.
func Classify(est *Estimator, m dynamo.Map, x0 float64, p dynamo.Params) (Classification, error) {
	lambda, err := est.Estimate(m, x0, p)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Exponent: lambda, Chaotic: IsChaotic(lambda)}, nil
}
