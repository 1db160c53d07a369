package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rigdev/waitdeploy/internal/core"
)

// validNotifyTypes is the set of supported notification channels.
var validNotifyTypes = map[string]bool{
	"slack":   true,
	"discord": true,
	"json":    true,
}

// Validate checks the Config for completeness and correctness. All problems
// are reported in one error wrapping core.ErrConfig.
func Validate(cfg *Config) error {
	var errs []string

	// --- Required fields ---
	if cfg.Site.ID == "" {
		errs = append(errs, "config: site_id is required")
	}
	if cfg.Site.Token == "" {
		errs = append(errs, "config: NETLIFY_TOKEN is required")
	}
	if cfg.Wait.SHA == "" {
		errs = append(errs, "config: commit sha is required")
	}
	if _, err := cfg.MatchMode(); err != nil {
		errs = append(errs, "config: "+err.Error())
	}

	// --- Ranges ---
	if cfg.Wait.MaxTimeout < 0 {
		errs = append(errs, fmt.Sprintf("config: max_timeout must not be negative, got %d", cfg.Wait.MaxTimeout))
	}
	if cfg.Wait.Interval != 0 && cfg.Wait.Interval < time.Second {
		errs = append(errs, fmt.Sprintf("config: interval must be at least 1s, got %s", cfg.Wait.Interval))
	}

	// --- Comment target ---
	if cfg.GitHub.Comment {
		if cfg.GitHub.Token == "" {
			errs = append(errs, "config: github.token is required when comment is enabled")
		}
		if cfg.GitHub.Repository == "" {
			errs = append(errs, "config: github.repository is required when comment is enabled")
		}
	}

	for i, n := range cfg.Notify {
		errs = append(errs, validateNotify(i, &n)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", core.ErrConfig, strings.Join(errs, "; "))
	}
	return nil
}

// validateNotify checks a single notification channel.
func validateNotify(idx int, n *NotifyConfig) []string {
	var errs []string
	prefix := fmt.Sprintf("config: notify[%d]", idx)

	if !validNotifyTypes[n.Type] {
		errs = append(errs, fmt.Sprintf("%s.type '%s' is invalid; must be one of: slack, discord, json", prefix, n.Type))
	}
	if n.Webhook == "" {
		errs = append(errs, prefix+".webhook is required")
	}
	return errs
}
