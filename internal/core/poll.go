package core

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultInterval is the fixed delay between two lookups.
const DefaultInterval = 10 * time.Second

// OutcomeStatus is the terminal state of a wait.
type OutcomeStatus string

const (
	OutcomeReady    OutcomeStatus = "ready"
	OutcomeFailed   OutcomeStatus = "failed"
	OutcomeTimedOut OutcomeStatus = "timed_out"
)

// Outcome is the single terminal result of Poller.Wait.
type Outcome struct {
	Status   OutcomeStatus
	URL      string        // set when Status is OutcomeReady
	Reason   string        // set when Status is not OutcomeReady
	Deploy   *DeployRecord // last matching deploy seen, nil if none matched
	Attempts int
}

// Err converts a non-ready outcome into an error wrapping ErrDeployFailed
// or ErrTimeout. It returns nil for a ready outcome.
func (o *Outcome) Err() error {
	switch o.Status {
	case OutcomeReady:
		return nil
	case OutcomeFailed:
		return fmt.Errorf("%w: %s", ErrDeployFailed, o.Reason)
	default:
		return fmt.Errorf("%w: %s", ErrTimeout, o.Reason)
	}
}

// SleepFunc pauses between attempts. It returns early with ctx.Err() when
// the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller drives repeated lookups until the matching deploy is ready,
// fails, or the attempt budget runs out.
type Poller struct {
	lookup   *Lookup
	interval time.Duration
	sleep    SleepFunc
}

// NewPoller creates a Poller. A non-positive interval selects DefaultInterval.
func NewPoller(client DeployAPIClient, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		lookup:   NewLookup(client),
		interval: interval,
		sleep:    sleepContext,
	}
}

// SetSleep replaces the function used to wait between attempts.
func (p *Poller) SetSleep(fn SleepFunc) {
	p.sleep = fn
}

// Interval returns the delay between attempts.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// AttemptBudget is floor(maxTimeoutSeconds / interval), but never below one
// so that a short timeout still performs a single lookup.
func AttemptBudget(maxTimeoutSeconds int, interval time.Duration) int {
	if interval <= 0 {
		interval = DefaultInterval
	}
	n := int(time.Duration(maxTimeoutSeconds) * time.Second / interval)
	if n < 1 {
		return 1
	}
	return n
}

// Wait polls for the deploy described by cfg. The attempt budget is shared
// by the search for a matching deploy and the wait for it to become ready.
// A lookup failure or context cancellation is returned as an error; every
// other end state is reported through the Outcome.
func (p *Poller) Wait(ctx context.Context, cfg PollConfig) (*Outcome, error) {
	budget := AttemptBudget(cfg.MaxTimeoutSeconds, p.interval)
	log.Printf("[poll] waiting for %s deploy of %s on site %s (%d attempts, every %s)",
		cfg.MatchMode, cfg.TargetSHA, cfg.SiteID, budget, p.interval)

	var current *DeployRecord
	for attempt := 1; attempt <= budget; attempt++ {
		deploy, err := p.lookup.FindMatchingDeploy(ctx, cfg.SiteID, cfg.TargetSHA, cfg.MatchMode)
		if err != nil {
			return nil, err
		}

		remaining := budget - attempt
		if deploy == nil {
			log.Printf("[poll] no matching deploy yet, attempts remaining: %d", remaining)
		} else {
			current = deploy
			switch deploy.State {
			case StateReady:
				url := CanonicalURL(deploy)
				log.Printf("[poll] deploy %s is ready: %s", deploy.ID, url)
				return &Outcome{Status: OutcomeReady, URL: url, Deploy: deploy, Attempts: attempt}, nil
			case StateError:
				log.Printf("[poll] deploy %s failed", deploy.ID)
				return &Outcome{Status: OutcomeFailed, Reason: failureReason(deploy), Deploy: deploy, Attempts: attempt}, nil
			}
			log.Printf("[poll] deploy %s is %s, attempts remaining: %d", deploy.ID, deploy.State, remaining)
		}

		if remaining == 0 {
			break
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, fmt.Errorf("wait for deploy: %w", err)
		}
	}

	return &Outcome{Status: OutcomeTimedOut, Reason: timeoutReason(cfg, current, budget), Deploy: current, Attempts: budget}, nil
}

func failureReason(d *DeployRecord) string {
	reason := fmt.Sprintf("deploy %s for commit %s entered state %q", d.ID, d.CommitRef, d.State)
	if d.ErrorMessage != "" {
		reason += ": " + d.ErrorMessage
	}
	return reason
}

func timeoutReason(cfg PollConfig, last *DeployRecord, attempts int) string {
	if last == nil {
		return fmt.Sprintf("no %s deploy found for commit %s after %d attempts", cfg.MatchMode, cfg.TargetSHA, attempts)
	}
	return fmt.Sprintf("deploy %s for commit %s still %q after %d attempts", last.ID, cfg.TargetSHA, last.State, attempts)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
