package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stalesweep/stalesweep/pkg/event"
	"github.com/stalesweep/stalesweep/pkg/log"
)

var cleanupEventPath string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Strip workflow labels when a reporter closes their own issue",
	Long: `Cleanup handles an issues/closed webhook event. When the issue was
closed by its own author, the marker label and the optional follow-up label
are removed; a close by anyone else leaves the labels untouched.

The event payload is read from --event, or from GITHUB_EVENT_PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := cleanupEventPath
		if path == "" {
			path = cfg.EventPath
		}

		ev, err := event.LoadCloseEvent(path)
		if err != nil {
			return err
		}
		if ev.Repo.Owner == "" {
			ev.Repo = cfg.Repo
		}

		s, _ := newSweeper(cfg)

		if err := s.RemoveLabelsOnClose(context.Background(), ev); err != nil {
			return err
		}
		log.Debug("cleanup finished", "issue", ev.IssueNumber)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupEventPath, "event", "",
		"Path to the issues event payload (defaults to GITHUB_EVENT_PATH)")

	rootCmd.AddCommand(cleanupCmd)
}
