package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rigdev/waitdeploy/internal/core"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxTimeout is the wait budget in seconds when none is configured.
	DefaultMaxTimeout = 120
)

// envVarPattern matches ${VAR_NAME} patterns in config content.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Default returns a Config with default timeout and interval.
func Default() *Config {
	return &Config{
		Wait: WaitConfig{
			MaxTimeout: DefaultMaxTimeout,
			Interval:   core.DefaultInterval,
		},
	}
}

// ResolveEnvVars substitutes ${VAR_NAME} patterns with os.Getenv(VAR_NAME).
// Unresolved variables (env var not set) are left as-is without error.
func ResolveEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// LoadConfig reads a YAML configuration file, substitutes environment
// variables and parses it on top of Default. It does not validate: step
// inputs may still fill in missing fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read file %s: %w", path, err)
	}

	if err := validateEnvVars(data); err != nil {
		return nil, err
	}

	resolved := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	cfg := Default()
	if err := yaml.Unmarshal([]byte(resolved), cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// validateEnvVars checks that all ${VAR} references in raw data
// correspond to environment variables that are actually set.
func validateEnvVars(data []byte) error {
	matches := envVarPattern.FindAllStringSubmatch(string(data), -1)
	var unresolved []string
	seen := map[string]bool{}
	for _, m := range matches {
		varName := m[1]
		if seen[varName] {
			continue
		}
		seen[varName] = true
		if _, ok := os.LookupEnv(varName); !ok {
			unresolved = append(unresolved, "${"+varName+"}")
		}
	}
	if len(unresolved) > 0 {
		return fmt.Errorf("config: unresolved variables found: %s",
			strings.Join(unresolved, ", "))
	}
	return nil
}

// Apply copies every non-empty override onto cfg. Malformed numbers,
// booleans and durations are reported together.
func (c *Config) Apply(o Overrides) error {
	var errs []string

	setString := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	setString(&c.Site.ID, o.SiteID)
	setString(&c.Site.Token, o.Token)
	setString(&c.Site.APIURL, o.APIURL)
	setString(&c.Wait.Context, o.Context)
	setString(&c.Wait.SHA, o.SHA)

	if v := strings.TrimSpace(o.IsPreview); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("config: is_preview %q is not a boolean", v))
		} else {
			c.Wait.IsPreview = &b
		}
	}
	if v := strings.TrimSpace(o.MaxTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("config: max_timeout %q is not a number of seconds", v))
		} else if n == 0 {
			c.Wait.MaxTimeout = DefaultMaxTimeout
		} else {
			c.Wait.MaxTimeout = n
		}
	}
	if v := strings.TrimSpace(o.Interval); v != "" {
		d, err := parseInterval(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("config: interval %q is not a duration", v))
		} else {
			c.Wait.Interval = d
		}
	}
	if v := strings.TrimSpace(o.Comment); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("config: comment %q is not a boolean", v))
		} else {
			c.GitHub.Comment = b
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", core.ErrConfig, strings.Join(errs, "; "))
	}
	return nil
}

// parseInterval accepts a Go duration ("5s") or a bare number of seconds.
func parseInterval(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// MatchMode resolves the deploy contexts to wait for. An explicit context
// wins over the is_preview flag.
func (c *Config) MatchMode() (core.MatchMode, error) {
	if c.Wait.Context != "" {
		return core.ParseMatchMode(c.Wait.Context)
	}
	if c.Wait.IsPreview != nil {
		if *c.Wait.IsPreview {
			return core.PreviewOnly, nil
		}
		return core.ProductionOnly, nil
	}
	return 0, fmt.Errorf("one of wait.context or is_preview is required")
}

// PollConfig validates cfg and builds the poll parameters from it.
func (c *Config) PollConfig() (core.PollConfig, error) {
	if err := Validate(c); err != nil {
		return core.PollConfig{}, err
	}
	mode, _ := c.MatchMode()
	return core.PollConfig{
		SiteID:            c.Site.ID,
		MatchMode:         mode,
		TargetSHA:         c.Wait.SHA,
		MaxTimeoutSeconds: c.Wait.MaxTimeout,
	}, nil
}
