package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/rigdev/waitdeploy/internal/core"
)

// Notifier defines the interface for sending notifications.
type Notifier interface {
	// Notify sends a notification message.
	Notify(ctx context.Context, message string) error
}

// Broadcast sends message to every notifier. Failures are logged and do not
// affect the result of the wait.
func Broadcast(ctx context.Context, notifiers []Notifier, message string) {
	for _, n := range notifiers {
		if err := n.Notify(ctx, message); err != nil {
			log.Printf("[notify] %T: %v", n, err)
		}
	}
}

// FormatResult renders the result of a wait for humans.
func FormatResult(siteID, sha string, outcome *core.Outcome, err error) string {
	short := sha
	if len(short) > 7 {
		short = short[:7]
	}

	switch {
	case err != nil:
		return fmt.Sprintf("Netlify deploy of `%s` on site %s could not be checked: %v", short, siteID, err)
	case outcome.Status == core.OutcomeReady:
		return fmt.Sprintf("Netlify deploy of `%s` is ready: %s", short, outcome.URL)
	default:
		return fmt.Sprintf("Netlify deploy of `%s` on site %s is not ready: %v", short, siteID, outcome.Err())
	}
}
