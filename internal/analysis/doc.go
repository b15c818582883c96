// Package analysis provides chaos estimators for one-dimensional maps.
//
// The package characterizes a map instance along a single trajectory:
//
//   - [Derivative]: forward finite difference f'(x) ~ (f(x+h) - f(x)) / h
//   - [Estimator]: Lyapunov exponent as the mean of ln|f'(tau_i)| after a transient
//   - [Classify]: chaotic iff the estimated exponent is strictly positive
//   - [Sweep]: exponents along a p1 grid with p2, p3, p4 held fixed
//   - [OrbitDiagram]: attractor states along a p1 grid
//   - [Trajectory], [Cobweb], [Separation]: single-orbit diagnostics
//   - [PowerSpectrum]: windowed FFT magnitude of a trajectory
//
// # Chaos Detection
//
// A positive exponent indicates exponential sensitivity to the initial state:
//
//	est := analysis.NewEstimator(analysis.DefaultStep, analysis.ShortWindow)
//	c, err := analysis.Classify(est, maps.NewGuillot(), 0, p)
//	if err == nil && c.Chaotic {
//	    // p lies in the chaotic region
//	}
//
// The threshold is exactly zero. Estimates close to zero are sensitive to the
// window length and may flip between runs with different windows.
package analysis
