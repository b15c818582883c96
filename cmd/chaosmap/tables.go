package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/store"
	"github.com/san-kum/chaosmap/internal/viz"
)

func newSummaryCmd() *cobra.Command {
	var bins int
	cmd := &cobra.Command{
		Use:   "summary [table]",
		Short: "summarize a chaotic table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultOutput
			if len(args) > 0 {
				path = args[0]
			}
			records, err := store.ReadTable(path)
			if err != nil {
				return err
			}

			fmt.Println(viz.RenderTableSummary(path, viz.SummarizeTable(records)))
			if bins > 0 && len(records) > 1 {
				exps := make([]float64, len(records))
				for i, r := range records {
					exps[i] = r.Exponent
				}
				fmt.Println()
				fmt.Println(viz.HistogramPlot(exps, bins, "exponent"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 20, "exponent histogram bins (0 disables)")
	return cmd
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := store.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMAP\tTIME\tSEED\tTRIALS\tCHAOTIC\tWINDOW\tELAPSED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d/%d\t%.1fs\n",
					run.ID,
					run.Map,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Seed,
					run.Trials,
					run.Counts["chaotic"],
					run.Transient,
					run.Averaging,
					run.Elapsed,
				)
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list run and window presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("run presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s map=%s trials=%d p1=%s p2=%s p3=%s\n", name, p.Map, p.Trials, p.P1, p.P2, p.P3)
			}
			fmt.Println("windows:")
			for _, name := range config.ListWindows() {
				w := config.WindowPresets[name]
				fmt.Printf("  %-14s transient=%d averaging=%d\n", name, w.Transient, w.Averaging)
			}
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	var from string
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the default or a preset's values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "chaosmap.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if from != "" {
				if cfg = config.GetPreset(from); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", from, config.ListPresets())
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "preset", "", "start from a preset")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
