package action

import (
	"context"
	"log"

	"github.com/rigdev/waitdeploy/internal/adapter/git"
	"github.com/rigdev/waitdeploy/internal/adapter/netlify"
	"github.com/rigdev/waitdeploy/internal/adapter/notify"
	"github.com/rigdev/waitdeploy/internal/config"
	"github.com/rigdev/waitdeploy/internal/core"
)

// Sink receives the result of the step. *githubactions.Action satisfies it.
type Sink interface {
	SetOutput(k, v string)
	Errorf(msg string, args ...any)
}

// ClientFactory builds the deploy API client once the configuration is valid.
type ClientFactory func(apiURL, token string) (core.DeployAPIClient, error)

// CommenterFactory builds the pull request commenter.
type CommenterFactory func(token, apiURL string) (git.Commenter, error)

// NetlifyClient is the default ClientFactory.
func NetlifyClient(apiURL, token string) (core.DeployAPIClient, error) {
	return netlify.NewClient(apiURL, token)
}

// GitHubCommenter is the default CommenterFactory.
func GitHubCommenter(token, apiURL string) (git.Commenter, error) {
	return git.NewGitHub(token, apiURL)
}

// Runner wires configuration, the poll loop, notifications and the sink.
type Runner struct {
	sink         Sink
	newClient    ClientFactory
	newCommenter CommenterFactory
	sleep        core.SleepFunc
}

// NewRunner creates a Runner reporting to sink. Nil factories select the
// Netlify and GitHub implementations.
func NewRunner(sink Sink, newClient ClientFactory, newCommenter CommenterFactory) *Runner {
	if newClient == nil {
		newClient = NetlifyClient
	}
	if newCommenter == nil {
		newCommenter = GitHubCommenter
	}
	return &Runner{
		sink:         sink,
		newClient:    newClient,
		newCommenter: newCommenter,
	}
}

// SetSleep overrides the pause between attempts.
func (r *Runner) SetSleep(fn core.SleepFunc) {
	r.sleep = fn
}

// Run waits for the deploy described by cfg and reports the outcome.
// Configuration problems are reported before any request is made. Every
// non-ready end state reaches the sink as a failure and is returned.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, ev *git.Event) error {
	pc, err := cfg.PollConfig()
	if err != nil {
		return r.fail(err)
	}

	client, err := r.newClient(cfg.Site.APIURL, cfg.Site.Token)
	if err != nil {
		return r.fail(err)
	}

	poller := core.NewPoller(client, cfg.Wait.Interval)
	if r.sleep != nil {
		poller.SetSleep(r.sleep)
	}

	outcome, err := poller.Wait(ctx, pc)
	notify.Broadcast(ctx, r.notifiers(cfg, ev), notify.FormatResult(pc.SiteID, pc.TargetSHA, outcome, err))
	if err != nil {
		return r.fail(err)
	}
	if err := outcome.Err(); err != nil {
		if outcome.Deploy != nil {
			r.sink.SetOutput("deploy_id", outcome.Deploy.ID)
			r.sink.SetOutput("state", string(outcome.Deploy.State))
		}
		return r.fail(err)
	}

	r.sink.SetOutput("url", outcome.URL)
	r.sink.SetOutput("deploy_id", outcome.Deploy.ID)
	r.sink.SetOutput("state", string(outcome.Deploy.State))
	return nil
}

func (r *Runner) fail(err error) error {
	r.sink.Errorf("%v", err)
	return err
}

func (r *Runner) notifiers(cfg *config.Config, ev *git.Event) []notify.Notifier {
	var out []notify.Notifier
	for _, n := range cfg.Notify {
		out = append(out, notify.NewWebhookNotifier(n.Type, n.Webhook))
	}

	if !cfg.GitHub.Comment {
		return out
	}
	if ev == nil || ev.PRNumber == 0 {
		log.Printf("[notify] comment enabled but the event is not a pull request, skipping")
		return out
	}
	owner, repo, err := git.SplitRepository(cfg.GitHub.Repository)
	if err != nil {
		log.Printf("[notify] %v", err)
		return out
	}
	commenter, err := r.newCommenter(cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		log.Printf("[notify] %v", err)
		return out
	}
	return append(out, notify.NewCommentNotifier(commenter, owner, repo, ev.PRNumber))
}
