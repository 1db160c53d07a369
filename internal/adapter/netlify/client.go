package netlify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rigdev/waitdeploy/internal/core"
)

// DefaultBaseURL is the Netlify REST API root.
const DefaultBaseURL = "https://api.netlify.com/api/v1/"

// Client is a minimal Netlify API client authenticated with a personal
// access token.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

var _ core.DeployAPIClient = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid netlify api url: %w", err)
	}

	c := &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx response from the Netlify API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("netlify api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("netlify api returned status %d: %s", e.StatusCode, e.Message)
}

// deploy mirrors the fields of the Netlify deploy object that are used here.
type deploy struct {
	ID           string `json:"id"`
	SiteID       string `json:"site_id"`
	Name         string `json:"name"`
	State        string `json:"state"`
	CommitRef    string `json:"commit_ref"`
	Context      string `json:"context"`
	Branch       string `json:"branch"`
	DeployURL    string `json:"deploy_url"`
	DeploySSLURL string `json:"deploy_ssl_url"`
	ErrorMessage string `json:"error_message"`
	CreatedAt    string `json:"created_at"`
}

func (d deploy) record() core.DeployRecord {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return core.DeployRecord{
		ID:           d.ID,
		Name:         d.Name,
		CommitRef:    d.CommitRef,
		Context:      core.DeployContext(d.Context),
		State:        core.DeployState(d.State),
		SSLURL:       d.DeploySSLURL,
		DeployURL:    d.DeployURL,
		Branch:       d.Branch,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    createdAt,
	}
}

// Site is the subset of the Netlify site object used for validation.
type Site struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	SSLURL string `json:"ssl_url"`
}

// ListDeploys returns the deploys of a site in API order (newest first).
func (c *Client) ListDeploys(ctx context.Context, siteID string) ([]core.DeployRecord, error) {
	var deploys []deploy
	if err := c.get(ctx, "sites/"+url.PathEscape(siteID)+"/deploys", &deploys); err != nil {
		return nil, fmt.Errorf("list deploys for site %s: %w", siteID, err)
	}

	records := make([]core.DeployRecord, 0, len(deploys))
	for _, d := range deploys {
		records = append(records, d.record())
	}
	return records, nil
}

// GetSite fetches a site. It is used to check the token and site id
// without listing deploys.
func (c *Client) GetSite(ctx context.Context, siteID string) (*Site, error) {
	var site Site
	if err := c.get(ctx, "sites/"+url.PathEscape(siteID), &site); err != nil {
		return nil, fmt.Errorf("get site %s: %w", siteID, err)
	}
	return &site, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	endpoint := c.baseURL.ResolveReference(ref)
	log.Printf("[netlify] GET %s", endpoint.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
