package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stalesweep/stalesweep/pkg/event"
	"github.com/stalesweep/stalesweep/pkg/log"
)

var unmarkEventPath string

var unmarkCmd = &cobra.Command{
	Use:   "unmark",
	Short: "Clear the marker label when the reporter responds",
	Long: `Unmark handles an issue_comment webhook event. When the comment was
posted by the issue's original author and the marker label is present, the
label is removed, the optional follow-up label is applied, and the issue is
reopened if it had been closed by someone other than the author.

The event payload is read from --event, or from GITHUB_EVENT_PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := unmarkEventPath
		if path == "" {
			path = cfg.EventPath
		}

		ev, err := event.LoadCommentEvent(path)
		if err != nil {
			return err
		}
		if ev.Repo.Owner == "" {
			ev.Repo = cfg.Repo
		}

		s, _ := newSweeper(cfg)

		if err := s.Unmark(context.Background(), ev); err != nil {
			return err
		}
		log.Debug("unmark finished", "issue", ev.IssueNumber)
		return nil
	},
}

func init() {
	unmarkCmd.Flags().StringVar(&unmarkEventPath, "event", "",
		"Path to the issue_comment event payload (defaults to GITHUB_EVENT_PATH)")

	rootCmd.AddCommand(unmarkCmd)
}
