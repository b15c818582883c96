package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/sampler"
	"github.com/san-kum/chaosmap/internal/store"
	"github.com/san-kum/chaosmap/internal/viz"
)

var (
	configFile   string
	preset       string
	trials       int
	seed         int64
	randomSeed   bool
	workers      int
	mapName      string
	window       string
	output       string
	showProgress bool
	metricsFile  string
	archive      bool
	histBins     int
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "sample the parameter space and write the chaotic points",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "number of sampled points")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&randomSeed, "random-seed", false, "seed from the clock (overrides --seed)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&mapName, "map", config.DefaultMap, "map family")
	cmd.Flags().StringVar(&window, "window", "", "estimation window preset (short, long)")
	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "chaotic table path")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a live progress view")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics to path")
	cmd.Flags().BoolVar(&archive, "archive", false, "also archive the run under --data")
	cmd.Flags().IntVar(&histBins, "bins", 20, "exponent histogram bins (0 disables)")
	return cmd
}

// sampleConfig layers preset, config file and changed flags, in that order.
func sampleConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if randomSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("map") {
		cfg.Map = mapName
	}
	if flags.Changed("window") {
		cfg.Window = window
	}
	if flags.Changed("output") {
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := sampleConfig(cmd)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if showProgress {
		level = "warn"
	}
	logger, err := newLogger(cmd, level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []sampler.Option{sampler.WithLogger(logger)}
	var rec *metrics.Recorder
	if metricsFile != "" {
		rec = metrics.NewRecorder(cfg.Map)
		opts = append(opts, sampler.WithMetrics(rec))
	}

	var res *sampler.Result
	if showProgress {
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		title := fmt.Sprintf("sampling %s: %d trials, seed %d", cfg.Map, cfg.Trials, cfg.Seed)
		err = viz.RunProgress(title, cancel, func(report func(sampler.Progress)) error {
			s, err := sampler.New(cfg, append(opts, sampler.WithProgress(report))...)
			if err != nil {
				return err
			}
			res, err = s.Run(runCtx)
			return err
		})
	} else {
		var s *sampler.Sampler
		if s, err = sampler.New(cfg, opts...); err == nil {
			res, err = s.Run(ctx)
		}
	}
	if err != nil {
		return err
	}

	if err := store.WriteTable(cfg.Output, res.Records); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	logger.Info("table written", zap.String("path", cfg.Output), zap.Int("rows", len(res.Records)))

	if rec != nil {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if archive {
		if err := archiveRun(cfg, res); err != nil {
			return err
		}
	}

	fmt.Println(viz.RenderStats(res.Stats, cfg.Output))
	if histBins > 0 && len(res.Records) > 1 {
		exps := make([]float64, len(res.Records))
		for i, r := range res.Records {
			exps[i] = r.Exponent
		}
		fmt.Println()
		fmt.Println(viz.HistogramPlot(exps, histBins, "exponent"))
	}
	return nil
}

func archiveRun(cfg *config.Config, res *sampler.Result) error {
	w, err := cfg.EstimatorWindow()
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Map:       cfg.Map,
		Seed:      cfg.Seed,
		Trials:    cfg.Trials,
		Transient: w.Transient,
		Averaging: w.Averaging,
		Step:      cfg.DerivativeStep,
		Ranges:    [3][2]float64{{cfg.P1.Min, cfg.P1.Max}, {cfg.P2.Min, cfg.P2.Max}, {cfg.P3.Min, cfg.P3.Max}},
		P4:        cfg.P4,
		Counts:    res.Stats.Counts(),
		Elapsed:   res.Stats.Elapsed.Seconds(),
	}, res.Records)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	fmt.Printf("archived run: %s\n", runID)
	return nil
}
