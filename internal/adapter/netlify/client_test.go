package netlify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rigdev/waitdeploy/internal/core"
)

// newTestClient creates a Client pointed at an httptest server serving mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api/v1", "test-token")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

const deploysResponse = `[
	{
		"id": "d2",
		"site_id": "site-1",
		"name": "mysite",
		"state": "building",
		"commit_ref": "abc",
		"context": "deploy-preview",
		"branch": "feature",
		"deploy_url": "http://d2--mysite.netlify.app",
		"deploy_ssl_url": "https://d2--mysite.netlify.app",
		"created_at": "2025-01-15T10:05:00.000Z"
	},
	{
		"id": "d1",
		"site_id": "site-1",
		"name": "mysite",
		"state": "error",
		"commit_ref": "abc",
		"context": "production",
		"error_message": "Build script returned non-zero exit code: 2",
		"deploy_ssl_url": "https://d1--mysite.netlify.app",
		"created_at": "2025-01-15T10:00:00Z"
	}
]`

func TestListDeploys(t *testing.T) {
	var gotAuth, gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sites/site-1/deploys", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, deploysResponse)
	})

	client := newTestClient(t, mux)

	deploys, err := client.ListDeploys(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if gotPath != "/api/v1/sites/site-1/deploys" {
		t.Errorf("path = %q", gotPath)
	}
	if len(deploys) != 2 {
		t.Fatalf("deploys = %d, want 2", len(deploys))
	}

	first := deploys[0]
	if first.ID != "d2" || first.Name != "mysite" || first.CommitRef != "abc" {
		t.Errorf("unexpected first deploy: %+v", first)
	}
	if first.Context != core.ContextDeployPreview {
		t.Errorf("context = %q, want deploy-preview", first.Context)
	}
	if first.State != core.StateBuilding {
		t.Errorf("state = %q, want building", first.State)
	}
	if first.SSLURL != "https://d2--mysite.netlify.app" {
		t.Errorf("ssl url = %q", first.SSLURL)
	}
	if first.Branch != "feature" {
		t.Errorf("branch = %q", first.Branch)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected created_at to be parsed")
	}

	second := deploys[1]
	if second.State != core.StateError {
		t.Errorf("state = %q, want error", second.State)
	}
	if !strings.Contains(second.ErrorMessage, "non-zero exit code") {
		t.Errorf("error message = %q", second.ErrorMessage)
	}
}

func TestListDeploys_Errors(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "provider message",
			statusCode:  http.StatusUnauthorized,
			response:    `{"code": 401, "message": "Access Denied: origin returned bad status 401"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Access Denied: origin returned bad status 401",
		},
		{
			name:       "no message",
			statusCode: http.StatusBadGateway,
			response:   `<html>bad gateway</html>`,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v1/sites/site-1/deploys", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, tt.response)
			})

			client := newTestClient(t, mux)

			_, err := client.ListDeploys(context.Background(), "site-1")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if tt.wantMessage != "" && !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q does not carry provider message", err.Error())
			}
		})
	}
}

func TestListDeploys_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(server.URL, "test-token")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	server.Close()

	_, err = client.ListDeploys(context.Background(), "site-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "send request") {
		t.Errorf("error = %v, want transport failure", err)
	}
}

func TestListDeploys_MalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sites/site-1/deploys", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "an array"}`)
	})

	client := newTestClient(t, mux)

	if _, err := client.ListDeploys(context.Background(), "site-1"); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestGetSite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sites/site-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "site-1", "name": "mysite", "ssl_url": "https://mysite.netlify.app"}`)
	})

	client := newTestClient(t, mux)

	site, err := client.GetSite(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if site.Name != "mysite" {
		t.Errorf("name = %q, want mysite", site.Name)
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client, err := NewClient("", "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL.String() != DefaultBaseURL {
		t.Errorf("base url = %q, want %q", client.baseURL.String(), DefaultBaseURL)
	}
}
