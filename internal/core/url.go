package core

import "fmt"

// PermalinkDomain is the domain deploy permalinks are served from.
const PermalinkDomain = "netlify.app"

// CanonicalURL returns the stable URL of a ready deploy. Production and
// deploy-preview deploys get the id--name permalink, which skips the preview
// drawer; branch deploys keep their SSL URL.
func CanonicalURL(d *DeployRecord) string {
	switch d.Context {
	case ContextProduction, ContextDeployPreview:
		return fmt.Sprintf("https://%s--%s.%s", d.ID, d.Name, PermalinkDomain)
	default:
		return d.SSLURL
	}
}
