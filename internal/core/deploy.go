package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DeployContext is the provider-assigned category of a deploy.
type DeployContext string

const (
	ContextProduction    DeployContext = "production"
	ContextDeployPreview DeployContext = "deploy-preview"
	ContextBranchDeploy  DeployContext = "branch-deploy"
)

// DeployState is the provider-assigned lifecycle status of a deploy.
// Anything other than ready or error is treated as still in progress.
type DeployState string

const (
	StateNew        DeployState = "new"
	StateEnqueued   DeployState = "enqueued"
	StateBuilding   DeployState = "building"
	StateUploading  DeployState = "uploading"
	StateProcessing DeployState = "processing"
	StateReady      DeployState = "ready"
	StateError      DeployState = "error"
)

// Terminal reports whether the deploy has stopped changing state.
func (s DeployState) Terminal() bool {
	return s == StateReady || s == StateError
}

// DeployRecord is a deploy as reported by the provider. Records are fetched
// fresh on every lookup and never modified locally.
type DeployRecord struct {
	ID           string
	Name         string
	CommitRef    string
	Context      DeployContext
	State        DeployState
	SSLURL       string
	DeployURL    string
	Branch       string
	ErrorMessage string
	CreatedAt    time.Time
}

// DeployAPIClient lists the deploys of a site, newest first.
type DeployAPIClient interface {
	ListDeploys(ctx context.Context, siteID string) ([]DeployRecord, error)
}

// MatchMode selects which deploy contexts count as a match.
type MatchMode int

const (
	PreviewOnly MatchMode = iota
	ProductionOnly
	AnyOfPreviewProductionBranch
)

func (m MatchMode) String() string {
	switch m {
	case PreviewOnly:
		return "preview"
	case ProductionOnly:
		return "production"
	case AnyOfPreviewProductionBranch:
		return "any"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// Permits reports whether a deploy in context c satisfies the mode.
func (m MatchMode) Permits(c DeployContext) bool {
	switch m {
	case PreviewOnly:
		return c == ContextDeployPreview
	case ProductionOnly:
		return c == ContextProduction
	case AnyOfPreviewProductionBranch:
		return c == ContextProduction || c == ContextDeployPreview || c == ContextBranchDeploy
	default:
		return false
	}
}

// ParseMatchMode accepts preview, production or any (plus a few aliases).
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preview", "deploy-preview":
		return PreviewOnly, nil
	case "production", "prod":
		return ProductionOnly, nil
	case "any", "all", "branch", "branch-deploy":
		return AnyOfPreviewProductionBranch, nil
	default:
		return 0, fmt.Errorf("unknown deploy context %q; must be one of: preview, production, any", s)
	}
}

// PollConfig describes one wait operation.
type PollConfig struct {
	SiteID            string
	MatchMode         MatchMode
	TargetSHA         string
	MaxTimeoutSeconds int
}
