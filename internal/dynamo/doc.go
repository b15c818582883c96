// Package dynamo provides core primitives for one-dimensional iterated maps.
//
// The package defines the fundamental types shared by the map library, the
// estimators and the sampler:
//
//   - [Params]: the 4-element parameter vector [d, p2, p3, p4]
//   - [Map]: interface for a recursion tau_{i+1} = f(tau_i; p)
//   - [Apply]: one guarded map evaluation
//   - [ParallelFor]: chunked fan-out over an index range
//
// # Errors
//
// Evaluations outside the valid domain fail with [ErrDomain]; divergence to
// NaN or Inf fails with [ErrUnstable]. Both arrive wrapped in a [StepError]
// when they happen inside an iteration loop:
//
//	var se *dynamo.StepError
//	if errors.As(err, &se) && errors.Is(err, dynamo.ErrUnstable) {
//	    // trajectory diverged at se.Step
//	}
//
// # Thread Safety
//
// Map implementations are pure functions of (tau, p) and may be shared
// freely across goroutines.
package dynamo
