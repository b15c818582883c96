package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/automation"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [campaign.yaml]",
		Short: "run a campaign of sampling steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := automation.LoadCampaign(args[0])
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, "")
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := automation.RunCampaign(ctx, c, logger)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tMAP\tTRIALS\tCHAOTIC\tFRACTION\tFAILED\tOUTPUT")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%d\t%s\n",
					r.Name, r.Config.Map, r.Stats.Trials, r.Stats.Chaotic, r.Stats.Fraction(), r.Stats.Failed(), r.Config.Output)
			}
			if flushErr := w.Flush(); flushErr != nil && err == nil {
				err = flushErr
			}
			return err
		},
	}
}
