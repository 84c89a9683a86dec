// Package config loads the sweep configuration from the environment and an
// optional YAML file. The environment follows the GitHub Actions input
// convention (INPUT_* variables plus GITHUB_TOKEN / GITHUB_REPOSITORY), so
// the binary can run unchanged inside a scheduled workflow.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/stalesweep/stalesweep/pkg/github"
)

const (
	// DefaultResponseRequiredLabel marks issues waiting on their reporter
	DefaultResponseRequiredLabel = "response-required"
	// DefaultResponseRequiredColor is the label color used when creating it
	DefaultResponseRequiredColor = "ffffff"
	// DefaultDaysUntilClose is the grace period before a marked issue closes
	DefaultDaysUntilClose = 14
	// DefaultFollowUpLabelColor is used when a follow-up label is configured
	// without an explicit color
	DefaultFollowUpLabelColor = "cccccc"
)

// Config is the immutable configuration for one invocation
type Config struct {
	Token                 string
	Repo                  github.Repo
	ResponseRequiredLabel string
	ResponseRequiredColor string
	DaysUntilClose        int
	CloseComment          string
	FollowUpLabel         string
	FollowUpLabelColor    string
	EventPath             string
}

// fileConfig mirrors the optional YAML config file
type fileConfig struct {
	Repo                  string `yaml:"repo"`
	ResponseRequiredLabel string `yaml:"response_required_label"`
	ResponseRequiredColor string `yaml:"response_required_color"`
	DaysUntilClose        int    `yaml:"days_until_close"`
	CloseComment          string `yaml:"close_comment"`
	FollowUpLabel         string `yaml:"follow_up_label"`
	FollowUpLabelColor    string `yaml:"follow_up_label_color"`
}

// Load builds a Config from the optional YAML file at path and the process
// environment. Environment values win over file values; defaults fill the
// rest. The token is never read from the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ResponseRequiredLabel: DefaultResponseRequiredLabel,
		ResponseRequiredColor: DefaultResponseRequiredColor,
		DaysUntilClose:        DefaultDaysUntilClose,
	}

	repoRef := ""

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		repoRef = fc.Repo
		if fc.ResponseRequiredLabel != "" {
			cfg.ResponseRequiredLabel = fc.ResponseRequiredLabel
		}
		if fc.ResponseRequiredColor != "" {
			cfg.ResponseRequiredColor = fc.ResponseRequiredColor
		}
		if fc.DaysUntilClose > 0 {
			cfg.DaysUntilClose = fc.DaysUntilClose
		}
		cfg.CloseComment = fc.CloseComment
		cfg.FollowUpLabel = fc.FollowUpLabel
		cfg.FollowUpLabelColor = fc.FollowUpLabelColor
	}

	cfg.Token = firstEnv("GITHUB_TOKEN", "INPUT_TOKEN", "GH_TOKEN")
	if v := firstEnv("GITHUB_REPOSITORY", "INPUT_REPOSITORY"); v != "" {
		repoRef = v
	}
	if v := os.Getenv("INPUT_RESPONSE_REQUIRED_LABEL"); v != "" {
		cfg.ResponseRequiredLabel = v
	}
	if v := os.Getenv("INPUT_RESPONSE_REQUIRED_COLOR"); v != "" {
		cfg.ResponseRequiredColor = v
	}
	if v := os.Getenv("INPUT_DAYS_UNTIL_CLOSE"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INPUT_DAYS_UNTIL_CLOSE %q: %w", v, err)
		}
		cfg.DaysUntilClose = days
	}
	if v := os.Getenv("INPUT_CLOSE_COMMENT"); v != "" {
		cfg.CloseComment = v
	}
	if v := os.Getenv("INPUT_FOLLOW_UP_LABEL"); v != "" {
		cfg.FollowUpLabel = v
	}
	if v := os.Getenv("INPUT_FOLLOW_UP_LABEL_COLOR"); v != "" {
		cfg.FollowUpLabelColor = v
	}
	cfg.EventPath = os.Getenv("GITHUB_EVENT_PATH")

	if cfg.FollowUpLabel != "" && cfg.FollowUpLabelColor == "" {
		cfg.FollowUpLabelColor = DefaultFollowUpLabelColor
	}

	if repoRef != "" {
		repo, err := github.ParseRepo(repoRef)
		if err != nil {
			return nil, err
		}
		cfg.Repo = repo
	}

	return cfg, nil
}

// Validate checks that the required settings are present
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("missing GitHub token (set GITHUB_TOKEN)")
	}
	if c.Repo.Owner == "" || c.Repo.Name == "" {
		return fmt.Errorf("missing repository (set GITHUB_REPOSITORY or the repo config key)")
	}
	if c.ResponseRequiredLabel == "" {
		return fmt.Errorf("response required label must not be empty")
	}
	if c.DaysUntilClose <= 0 {
		return fmt.Errorf("days until close must be positive, got %d", c.DaysUntilClose)
	}
	return nil
}

// HasFollowUpLabel reports whether an optional follow-up label is configured
func (c *Config) HasFollowUpLabel() bool {
	return c.FollowUpLabel != ""
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
