package config

import "time"

// Config is the top-level configuration for a wait.
type Config struct {
	Site   SiteConfig     `yaml:"site"`
	Wait   WaitConfig     `yaml:"wait"`
	GitHub GitHubConfig   `yaml:"github"`
	Notify []NotifyConfig `yaml:"notify"`
}

// SiteConfig identifies the Netlify site and how to reach its API.
type SiteConfig struct {
	ID     string `yaml:"id"`
	Token  string `yaml:"token"`
	APIURL string `yaml:"api_url"`
}

// WaitConfig controls which deploy is awaited and for how long.
type WaitConfig struct {
	Context    string        `yaml:"context"`    // preview|production|any
	IsPreview  *bool         `yaml:"is_preview"` // used when context is empty
	SHA        string        `yaml:"sha"`
	MaxTimeout int           `yaml:"max_timeout"` // seconds
	Interval   time.Duration `yaml:"interval"`
}

// GitHubConfig holds settings for pull request comments.
type GitHubConfig struct {
	Token      string `yaml:"token"`
	APIURL     string `yaml:"api_url"`
	Repository string `yaml:"repository"` // owner/repo
	Comment    bool   `yaml:"comment"`
}

// NotifyConfig holds a single notification channel.
type NotifyConfig struct {
	Type    string `yaml:"type"` // slack|discord|json
	Webhook string `yaml:"webhook"`
}

// Overrides carries raw values from step inputs or command-line flags.
// Empty fields leave the loaded configuration untouched.
type Overrides struct {
	SiteID     string
	Token      string
	APIURL     string
	Context    string
	IsPreview  string
	SHA        string
	MaxTimeout string
	Interval   string
	Comment    string
}
