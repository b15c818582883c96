package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/store"
	"github.com/san-kum/chaosmap/internal/viz"
)

// pointFlags are the map and parameter flags shared by the diagnostics.
type pointFlags struct {
	mapName string
	p1      float64
	p2      float64
	p3      float64
	p4      float64
	x0      float64
	window  string
	output  string
}

func (f *pointFlags) register(cmd *cobra.Command, withP1 bool, window, output string) {
	cmd.Flags().StringVar(&f.mapName, "map", config.DefaultMap, "map family")
	if withP1 {
		cmd.Flags().Float64Var(&f.p1, "p1", 0.08, "p1 (d is derived from it)")
	}
	cmd.Flags().Float64Var(&f.p2, "p2", 38, "p2")
	cmd.Flags().Float64Var(&f.p3, "p3", 0.6, "p3")
	cmd.Flags().Float64Var(&f.p4, "p4", config.DefaultP4, "p4")
	cmd.Flags().Float64Var(&f.x0, "x0", 0, "initial state")
	if window != "" {
		cmd.Flags().StringVar(&f.window, "window", window, "estimation window preset (short, long)")
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", output, "table path (empty to skip)")
}

func (f *pointFlags) resolveMap() (dynamo.Map, error) {
	return maps.Get(f.mapName)
}

func (f *pointFlags) params() dynamo.Params {
	return maps.NewParams(f.p1, f.p2, f.p3, f.p4)
}

func (f *pointFlags) slice() analysis.Slice {
	return analysis.Slice{P2: f.p2, P3: f.p3, P4: f.p4}
}

func (f *pointFlags) estimator() (*analysis.Estimator, error) {
	w, ok := config.WindowPresets[f.window]
	if !ok {
		return nil, fmt.Errorf("unknown window %q (available: %v): %w", f.window, config.ListWindows(), dynamo.ErrInvalidConfig)
	}
	return analysis.NewEstimator(analysis.DefaultStep, w), nil
}

func (f *pointFlags) write(rows [][]float64) error {
	if f.output == "" {
		return nil
	}
	if err := store.WriteSeries(f.output, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), f.output)
	return nil
}

type gridFlags struct {
	from, to float64
	points   int
}

func (g *gridFlags) register(cmd *cobra.Command, points int) {
	cmd.Flags().Float64Var(&g.from, "from", 0.005, "first p1")
	cmd.Flags().Float64Var(&g.to, "to", 0.4, "last p1")
	cmd.Flags().IntVar(&g.points, "points", points, "grid size")
}

func (g *gridFlags) values() ([]float64, error) {
	if g.points < 1 || !(g.to >= g.from) {
		return nil, fmt.Errorf("invalid grid [%g, %g] x %d: %w", g.from, g.to, g.points, dynamo.ErrInvalidConfig)
	}
	return analysis.Linspace(g.from, g.to, g.points), nil
}

func newSweepCmd() *cobra.Command {
	var pf pointFlags
	var gf gridFlags
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Lyapunov exponent along p1 with p2, p3, p4 fixed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pf.resolveMap()
			if err != nil {
				return err
			}
			est, err := pf.estimator()
			if err != nil {
				return err
			}
			p1s, err := gf.values()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, "")
			if err != nil {
				return err
			}
			defer logger.Sync()

			points, err := analysis.Sweep(cmd.Context(), est, m, pf.x0, pf.slice(), p1s)
			if err != nil {
				return err
			}

			rows := make([][]float64, 0, len(points))
			exps := make([]float64, 0, len(points))
			chaotic := 0
			for _, pt := range points {
				if pt.Err != nil {
					logger.Debug("sweep point failed", zap.Float64("p1", pt.P1), zap.Error(pt.Err))
					continue
				}
				flag := 0.0
				if pt.Chaotic {
					flag = 1
					chaotic++
				}
				rows = append(rows, []float64{pt.P1, pt.Exponent, flag})
				exps = append(exps, pt.Exponent)
			}

			fmt.Println(viz.SeriesPlot(exps, fmt.Sprintf("%s exponent vs p1 in [%g, %g], p2=%g p3=%g", m.Name(), gf.from, gf.to, pf.p2, pf.p3)))
			fmt.Printf("\nchaotic: %d/%d  failed: %d\n", chaotic, len(points), len(points)-len(rows))
			return pf.write(rows)
		},
	}
	pf.register(cmd, false, "short", "sweep.txt")
	gf.register(cmd, 200)
	return cmd
}

func newOrbitCmd() *cobra.Command {
	var pf pointFlags
	var gf gridFlags
	cfg := analysis.DefaultOrbitConfig()
	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "orbit diagram: attractor states along p1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pf.resolveMap()
			if err != nil {
				return err
			}
			p1s, err := gf.values()
			if err != nil {
				return err
			}

			points, err := analysis.OrbitDiagram(cmd.Context(), m, pf.slice(), p1s, cfg)
			if err != nil {
				return err
			}

			var rows [][]float64
			for _, pt := range points {
				for _, v := range pt.Values {
					rows = append(rows, []float64{pt.Param, v})
				}
			}
			fmt.Println(viz.OrbitPlot(points, 80, 20))
			return pf.write(rows)
		},
	}
	pf.register(cmd, false, "", "orbit.txt")
	gf.register(cmd, 160)
	cmd.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "iterations per start")
	cmd.Flags().IntVar(&cfg.Discard, "discard", cfg.Discard, "transient iterations dropped")
	cmd.Flags().Float64Var(&cfg.Resolution, "resolution", 1e-6, "de-duplication resolution (0 keeps all)")
	cmd.Flags().Float64SliceVar(&cfg.StartScales, "starts", cfg.StartScales, "initial states as multiples of p1")
	return cmd
}

func newTrajectoryCmd() *cobra.Command {
	var pf pointFlags
	var steps int
	var cobweb, spectrum bool
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "time series of one orbit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pf.resolveMap()
			if err != nil {
				return err
			}
			p := pf.params()
			traj, err := analysis.Trajectory(m, pf.x0, p, steps)
			if err != nil {
				fmt.Printf("trajectory stopped early: %v\n", err)
			}

			rows := make([][]float64, len(traj))
			for i, v := range traj {
				rows[i] = []float64{float64(i), v}
			}
			fmt.Println(viz.SeriesPlot(traj, fmt.Sprintf("%s tau_i, p=%s", m.Name(), p)))

			if cobweb {
				fmt.Println()
				fmt.Println(viz.CobwebPlot(m, p, traj, 60, 20))
			}
			if spectrum && len(traj) > 2 {
				ps := analysis.PowerSpectrum(traj[1:])
				fmt.Println()
				fmt.Println(viz.SeriesPlot(ps, fmt.Sprintf("power spectrum, dominant bin %d of %d", analysis.DominantBin(ps), len(ps)-1)))
			}
			return pf.write(rows)
		},
	}
	pf.register(cmd, true, "", "trajectory.txt")
	cmd.Flags().IntVar(&steps, "steps", 100, "iterations")
	cmd.Flags().BoolVar(&cobweb, "cobweb", false, "draw the cobweb diagram")
	cmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the power spectrum")
	return cmd
}

func newSeparationCmd() *cobra.Command {
	var pf pointFlags
	var settle, steps int
	var delta float64
	cmd := &cobra.Command{
		Use:   "separation",
		Short: "growth of a small perturbation against delta*exp(lambda*n)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pf.resolveMap()
			if err != nil {
				return err
			}
			est, err := pf.estimator()
			if err != nil {
				return err
			}
			p := pf.params()

			lambda, err := est.Estimate(m, pf.x0, p)
			if err != nil {
				return fmt.Errorf("estimate exponent: %w", err)
			}
			dist, err := analysis.Separation(m, pf.x0, p, settle, delta, steps)
			if err != nil {
				return err
			}
			pred := analysis.PredictedSeparation(delta, lambda, len(dist)-1)

			rows := make([][]float64, len(dist))
			logDist := make([]float64, len(dist))
			logPred := make([]float64, len(dist))
			for i := range dist {
				rows[i] = []float64{float64(i), dist[i], pred[i]}
				logDist[i] = safeLog10(dist[i])
				logPred[i] = safeLog10(pred[i])
			}

			fmt.Println(viz.SeriesPlotMany([][]float64{logDist, logPred}, fmt.Sprintf("log10 separation: measured vs predicted, lambda=%.5f", lambda)))
			return pf.write(rows)
		},
	}
	pf.register(cmd, true, "long", "separation.txt")
	cmd.Flags().IntVar(&settle, "settle", 300, "iterations before the perturbation")
	cmd.Flags().IntVar(&steps, "steps", 40, "iterations after the perturbation")
	cmd.Flags().Float64Var(&delta, "delta", 1e-10, "initial perturbation")
	return cmd
}

func safeLog10(v float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}

func newProfileCmd() *cobra.Command {
	var p3, p4, tauMin, tauMax float64
	var points int
	var out string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "temperature profile T(tau) of both map families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(tauMin > 0) || !(tauMax > tauMin) || points < 2 {
				return fmt.Errorf("invalid tau grid [%g, %g] x %d: %w", tauMin, tauMax, points, dynamo.ErrInvalidConfig)
			}
			logTaus := analysis.Linspace(math.Log10(tauMin), math.Log10(tauMax), points)

			rows := make([][]float64, len(logTaus))
			pierre := make([]float64, len(logTaus))
			guillot := make([]float64, len(logTaus))
			for i, lt := range logTaus {
				tau := math.Pow(10, lt)
				g := maps.Gamma(tau, p3, p4)
				pierre[i] = maps.Temperature(tau, g)
				guillot[i] = maps.GuillotTemperature(tau, g)
				rows[i] = []float64{tau, g, pierre[i], guillot[i]}
			}

			fmt.Println(viz.SeriesPlotMany([][]float64{pierre, guillot},
				fmt.Sprintf("T(tau)/T_eff over log tau in [%g, %g]: pierrehumbert, guillot", tauMin, tauMax)))
			if out == "" {
				return nil
			}
			if err := store.WriteSeries(out, rows); err != nil {
				return err
			}
			fmt.Printf("wrote %d rows to %s\n", len(rows), out)
			return nil
		},
	}
	cmd.Flags().Float64Var(&p3, "p3", 0.6, "p3")
	cmd.Flags().Float64Var(&p4, "p4", config.DefaultP4, "p4")
	cmd.Flags().Float64Var(&tauMin, "tau-min", 1e-4, "smallest optical depth")
	cmd.Flags().Float64Var(&tauMax, "tau-max", 100, "largest optical depth")
	cmd.Flags().IntVar(&points, "points", 120, "grid size (log spaced)")
	cmd.Flags().StringVarP(&out, "output", "o", "profile.txt", "table path (empty to skip)")
	return cmd
}

