package analysis

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Trajectory returns x0 followed by n iterates of m. On failure it returns
// the states computed so far together with the error.
func Trajectory(m dynamo.Map, x0 float64, p dynamo.Params, n int) ([]float64, error) {
	if n < 0 {
		n = 0
	}
	traj := make([]float64, 1, n+1)
	traj[0] = x0

	x := x0
	for i := 0; i < n; i++ {
		next, err := dynamo.Apply(m, x, p)
		if err != nil {
			return traj, &dynamo.StepError{Step: i, Tau: x, Wrapped: err}
		}
		x = next
		traj = append(traj, x)
	}
	return traj, nil
}

// Point is a vertex in the (tau_i, tau_{i+1}) plane.
type Point struct {
	X, Y float64
}

// Cobweb converts a trajectory into the staircase drawn between the map
// curve and the diagonal: (t0, floor), (t0, t1), (t1, t1), (t1, t2), ...
func Cobweb(traj []float64, floor float64) []Point {
	if len(traj) == 0 {
		return nil
	}
	pts := make([]Point, 0, 2*len(traj)-1)
	pts = append(pts, Point{traj[0], floor})
	for i := 0; i+1 < len(traj); i++ {
		pts = append(pts, Point{traj[i], traj[i+1]}, Point{traj[i+1], traj[i+1]})
	}
	return pts
}

// Separation settles the orbit for settle steps, perturbs a copy by delta
// and returns |x'_i - x_i| for i = 0..n. For a chaotic orbit the distance
// grows like delta*exp(lambda*i) until it saturates at the attractor size.
func Separation(m dynamo.Map, x0 float64, p dynamo.Params, settle int, delta float64, n int) ([]float64, error) {
	x, err := dynamo.Iterate(m, x0, p, settle)
	if err != nil {
		return nil, err
	}
	xp := x + delta

	dist := make([]float64, 1, n+1)
	dist[0] = math.Abs(xp - x)
	for i := 0; i < n; i++ {
		if x, err = dynamo.Apply(m, x, p); err != nil {
			return dist, &dynamo.StepError{Step: settle + i, Tau: x, Wrapped: err}
		}
		if xp, err = dynamo.Apply(m, xp, p); err != nil {
			return dist, &dynamo.StepError{Step: settle + i, Tau: xp, Wrapped: err}
		}
		dist = append(dist, math.Abs(xp-x))
	}
	return dist, nil
}

// PredictedSeparation is delta*exp(lambda*i) for i = 0..n.
func PredictedSeparation(delta, lambda float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = delta * math.Exp(lambda*float64(i))
	}
	return out
}
