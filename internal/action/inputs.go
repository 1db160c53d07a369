package action

import (
	"fmt"
	"os"

	"github.com/rigdev/waitdeploy/internal/adapter/git"
	"github.com/rigdev/waitdeploy/internal/config"
	"github.com/rigdev/waitdeploy/internal/core"
	"github.com/sethvargo/go-githubactions"
)

// Inputs reads step inputs. *githubactions.Action satisfies it.
type Inputs interface {
	GetInput(name string) string
}

// ReadInputs collects the step inputs declared by the action.
func ReadInputs(in Inputs) config.Overrides {
	return config.Overrides{
		SiteID:     in.GetInput("site_id"),
		APIURL:     in.GetInput("api_url"),
		Context:    in.GetInput("context"),
		IsPreview:  in.GetInput("is_preview"),
		SHA:        in.GetInput("sha"),
		MaxTimeout: in.GetInput("max_timeout"),
		Interval:   in.GetInput("interval"),
		Comment:    in.GetInput("comment"),
	}
}

// ApplyEnv fills secrets and repository details that come from the
// environment rather than from inputs. Values already set are kept.
func ApplyEnv(cfg *config.Config, getenv func(string) string) {
	if cfg.Site.Token == "" {
		cfg.Site.Token = getenv("NETLIFY_TOKEN")
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = getenv("GITHUB_TOKEN")
	}
	if cfg.GitHub.Repository == "" {
		cfg.GitHub.Repository = getenv("GITHUB_REPOSITORY")
	}
	if cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = getenv("GITHUB_API_URL")
	}
}

// ResolveEvent reads the workflow event that triggered the run and picks
// the commit to wait for. An explicit sha short-circuits the lookup.
func ResolveEvent(a *githubactions.Action, sha string) (*git.Event, error) {
	ghctx, err := a.Context()
	if err != nil {
		return nil, fmt.Errorf("%w: read github context: %v", core.ErrConfig, err)
	}

	var payload []byte
	if ghctx.EventPath != "" {
		payload, err = os.ReadFile(ghctx.EventPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read event payload: %v", core.ErrConfig, err)
		}
	}

	fallback := ghctx.SHA
	if sha != "" {
		fallback = sha
	}
	ev, err := git.ParseEvent(ghctx.EventName, payload, fallback)
	if err != nil {
		return nil, err
	}
	if sha != "" {
		ev.SHA = sha
	}
	return ev, nil
}
