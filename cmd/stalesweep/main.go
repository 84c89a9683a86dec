package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stalesweep/stalesweep/pkg/config"
	"github.com/stalesweep/stalesweep/pkg/github"
	"github.com/stalesweep/stalesweep/pkg/log"
	"github.com/stalesweep/stalesweep/pkg/sweeper"
)

var (
	cfgFile   string
	repoRef   string
	tokenFlag string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "stalesweep",
	Short: "Close stale issues whose reporter never responded",
	Long: `Stalesweep automates the "response required" workflow on a GitHub
repository. A maintainer applies the marker label when an issue needs more
information from its reporter; stalesweep closes issues whose reporter never
replied within the grace period, clears the label when the reporter does
reply, and tidies the labels up when reporters close their own issues.

The subcommand selects the workflow: "sweep" is meant for a scheduled run,
"unmark" and "cleanup" react to webhook events delivered by the CI
environment (GITHUB_EVENT_PATH).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		if level == "" {
			level = string(log.LevelInfo)
		}
		return log.Init(log.Config{Level: log.Level(level)})
	},
}

// loadConfig resolves configuration from file, environment, and flags,
// flags winning over both.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if repoRef != "" {
		repo, err := github.ParseRepo(repoRef)
		if err != nil {
			return nil, err
		}
		cfg.Repo = repo
	}
	if tokenFlag != "" {
		cfg.Token = tokenFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSweeper wires the remote gateway and the sweeper for one invocation
func newSweeper(cfg *config.Config) (*sweeper.Sweeper, *github.Client) {
	client := github.NewClient(cfg.Token)
	return sweeper.New(client, cfg), client
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to an optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&repoRef, "repo", "",
		"Repository to operate on (owner/repo); overrides GITHUB_REPOSITORY")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "",
		"GitHub token; overrides GITHUB_TOKEN")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
