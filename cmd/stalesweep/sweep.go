package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stalesweep/stalesweep/pkg/log"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Close every issue whose reporter ran out the grace period",
	Long: `Sweep queries the repository for open issues carrying the marker label,
oldest-updated-first, and closes the ones whose most recent label
application is older than the configured grace period. At most one page of
candidates (30 issues) is handled per run; the rest are picked up by the
next scheduled run.

A failure on one issue is logged and does not stop the rest of the pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s, client := newSweeper(cfg)

		res, err := s.Sweep(context.Background())
		if err != nil {
			return err
		}

		rate := client.RateLimit()
		log.Info("sweep finished",
			"repo", cfg.Repo.String(),
			"scanned", res.Scanned,
			"closed", res.Closed,
			"failed", res.Failed,
			"rate_remaining", rate.Remaining,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
