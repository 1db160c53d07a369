package git

import "context"

// Commenter posts comments on issues and pull requests.
type Commenter interface {
	// PostComment posts a comment on an issue or pull request.
	PostComment(ctx context.Context, owner, repo string, number int, body string) error
}

// Event is the part of a workflow event payload needed to pick the commit
// whose deploy is awaited.
type Event struct {
	Name     string
	SHA      string
	PRNumber int // zero unless the event is a pull request
}
