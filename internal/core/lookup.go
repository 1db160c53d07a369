package core

import (
	"context"
	"fmt"
)

// Lookup finds the deploy of a commit among the deploys of a site.
type Lookup struct {
	client DeployAPIClient
}

// NewLookup creates a Lookup backed by the given API client.
func NewLookup(client DeployAPIClient) *Lookup {
	return &Lookup{client: client}
}

// FindMatchingDeploy lists the site's deploys and returns the first one
// built from sha in a context permitted by mode, or nil when none matches.
// Transport failures are returned wrapped in ErrLookup.
func (l *Lookup) FindMatchingDeploy(ctx context.Context, siteID, sha string, mode MatchMode) (*DeployRecord, error) {
	deploys, err := l.client.ListDeploys(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	return MatchDeploy(deploys, sha, mode), nil
}

// MatchDeploy returns the first record in provider order that matches sha
// and mode. The provider lists newest first, so a redeployed commit
// resolves to its most recent deploy.
func MatchDeploy(deploys []DeployRecord, sha string, mode MatchMode) *DeployRecord {
	for i := range deploys {
		d := deploys[i]
		if d.CommitRef != sha {
			continue
		}
		if !mode.Permits(d.Context) {
			continue
		}
		return &d
	}
	return nil
}
