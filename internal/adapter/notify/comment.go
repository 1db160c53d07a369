package notify

import (
	"context"
	"fmt"

	"github.com/rigdev/waitdeploy/internal/adapter/git"
)

// CommentNotifier sends notifications as pull request comments.
type CommentNotifier struct {
	adapter git.Commenter
	owner   string
	repo    string
	number  int
}

// NewCommentNotifier creates a new CommentNotifier.
func NewCommentNotifier(adapter git.Commenter, owner, repo string, number int) *CommentNotifier {
	return &CommentNotifier{
		adapter: adapter,
		owner:   owner,
		repo:    repo,
		number:  number,
	}
}

// Notify posts a comment on the configured pull request.
func (c *CommentNotifier) Notify(ctx context.Context, message string) error {
	body := fmt.Sprintf("**[waitdeploy]** %s", message)
	return c.adapter.PostComment(ctx, c.owner, c.repo, c.number, body)
}
