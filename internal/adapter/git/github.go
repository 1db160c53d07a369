package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rigdev/waitdeploy/internal/core"
)

// GitHubAdapter posts pull request comments through the GitHub REST API.
type GitHubAdapter struct {
	client *github.Client
}

var _ Commenter = (*GitHubAdapter)(nil)

// NewGitHub creates a new GitHubAdapter.
// baseURL can be empty for github.com or a custom URL for GitHub Enterprise.
func NewGitHub(token, baseURL string) (*GitHubAdapter, error) {
	client := github.NewClient(nil).WithAuthToken(token)

	if baseURL != "" && baseURL != "https://api.github.com" {
		var err error
		client, err = github.NewClient(nil).WithAuthToken(token).WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("create github enterprise client: %w", err)
		}
	}

	return &GitHubAdapter{client: client}, nil
}

// PostComment posts a comment on an issue or pull request.
func (g *GitHubAdapter) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return fmt.Errorf("post comment on #%d: %w", number, err)
	}
	return nil
}

// ParseEvent extracts the commit under test from a workflow event payload.
// Pull request events use the head SHA of the pull request and push events
// the id of the head commit. Any other event, or a payload without those
// fields, falls back to fallbackSHA (the workflow's GITHUB_SHA).
func ParseEvent(eventName string, payload []byte, fallbackSHA string) (*Event, error) {
	ev := &Event{Name: eventName}

	if len(payload) > 0 {
		parsed, err := github.ParseWebHook(eventName, payload)
		if err == nil {
			switch e := parsed.(type) {
			case *github.PullRequestEvent:
				ev.SHA = e.GetPullRequest().GetHead().GetSHA()
				ev.PRNumber = e.GetNumber()
			case *github.PullRequestTargetEvent:
				ev.SHA = e.GetPullRequest().GetHead().GetSHA()
				ev.PRNumber = e.GetNumber()
			case *github.PushEvent:
				ev.SHA = e.GetHeadCommit().GetID()
			}
		} else if eventName == "pull_request" || eventName == "push" {
			return nil, fmt.Errorf("%w: parse %s event payload: %v", core.ErrConfig, eventName, err)
		}
	}

	if ev.SHA == "" {
		ev.SHA = fallbackSHA
	}
	if ev.SHA == "" {
		return nil, fmt.Errorf("%w: could not resolve commit sha from %q event", core.ErrConfig, eventName)
	}
	return ev, nil
}

// SplitRepository splits an "owner/repo" string.
func SplitRepository(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", fullName)
	}
	return owner, repo, nil
}
