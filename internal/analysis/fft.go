package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the FFT magnitudes of a Hann-windowed, mean-removed
// series for bins 0..n/2. A periodic orbit shows isolated peaks; a chaotic
// one a broadband floor.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 1.0
		if n > 1 {
			w = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantBin returns the index of the largest non-DC bin.
func DominantBin(ps []float64) int {
	best := 0
	for i := 1; i < len(ps); i++ {
		if best == 0 || ps[i] > ps[best] {
			best = i
		}
	}
	return best
}
