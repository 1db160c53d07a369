package main

import (
	"log"
	"os"

	"github.com/rigdev/waitdeploy/internal/action"
	"github.com/rigdev/waitdeploy/internal/adapter/git"
	"github.com/rigdev/waitdeploy/internal/config"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the deploy of the current commit and output its URL",
	RunE:  runWait,
}

func runWait(cmd *cobra.Command, args []string) error {
	a := githubactions.New()

	cfg, err := loadConfig(cmd, a)
	if err != nil {
		a.Errorf("%v", err)
		return err
	}

	ev := resolveSHA(a, cfg)

	mode, _ := cfg.MatchMode()
	log.Printf("[wait] waiting for a %s deploy, max timeout: %ds", mode, cfg.Wait.MaxTimeout)

	return action.NewRunner(a, nil, nil).Run(cmd.Context(), cfg, ev)
}

// loadConfig layers the config file, step inputs, flags and environment.
func loadConfig(cmd *cobra.Command, a *githubactions.Action) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Apply(action.ReadInputs(a)); err != nil {
		return nil, err
	}
	if err := cfg.Apply(flagOverrides(cmd)); err != nil {
		return nil, err
	}
	action.ApplyEnv(cfg, os.Getenv)

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		if cfg.Site.Token != "" {
			a.AddMask(cfg.Site.Token)
		}
		if cfg.GitHub.Token != "" {
			a.AddMask(cfg.GitHub.Token)
		}
	}
	return cfg, nil
}

func flagOverrides(cmd *cobra.Command) config.Overrides {
	get := func(name string) string {
		if cmd.Flags().Lookup(name) == nil {
			return ""
		}
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return config.Overrides{
		SiteID:     get("site-id"),
		APIURL:     get("api-url"),
		Context:    get("context"),
		IsPreview:  get("is-preview"),
		SHA:        get("sha"),
		MaxTimeout: get("max-timeout"),
		Interval:   get("interval"),
		Comment:    get("comment"),
	}
}

// resolveSHA fills the commit sha from the workflow event when possible.
// A sha that cannot be resolved is reported by config validation together
// with any other missing input.
func resolveSHA(a *githubactions.Action, cfg *config.Config) *git.Event {
	ev, err := action.ResolveEvent(a, cfg.Wait.SHA)
	if err != nil {
		log.Printf("[wait] %v", err)
		return nil
	}
	cfg.Wait.SHA = ev.SHA
	return ev
}
