package core

import (
	"context"
	"errors"
	"testing"
)

func TestMatchDeploy(t *testing.T) {
	deploys := []DeployRecord{
		{ID: "p1", CommitRef: "abc", Context: ContextProduction},
		{ID: "x1", CommitRef: "abc", Context: "dev"},
		{ID: "b1", CommitRef: "abc", Context: ContextBranchDeploy},
		{ID: "dp-other", CommitRef: "def", Context: ContextDeployPreview},
		{ID: "dp1", CommitRef: "abc", Context: ContextDeployPreview},
		{ID: "dp2", CommitRef: "abc", Context: ContextDeployPreview},
	}

	tests := []struct {
		name    string
		deploys []DeployRecord
		sha     string
		mode    MatchMode
		wantID  string
	}{
		{name: "preview picks first preview in provider order", deploys: deploys, sha: "abc", mode: PreviewOnly, wantID: "dp1"},
		{name: "production", deploys: deploys, sha: "abc", mode: ProductionOnly, wantID: "p1"},
		{name: "any takes first allowed context", deploys: deploys, sha: "abc", mode: AnyOfPreviewProductionBranch, wantID: "p1"},
		{name: "any includes branch deploys", deploys: deploys[1:], sha: "abc", mode: AnyOfPreviewProductionBranch, wantID: "b1"},
		{name: "sha mismatch", deploys: deploys, sha: "zzz", mode: AnyOfPreviewProductionBranch},
		{name: "context mismatch", deploys: deploys[3:4], sha: "def", mode: ProductionOnly},
		{name: "empty list", deploys: nil, sha: "abc", mode: PreviewOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchDeploy(tt.deploys, tt.sha, tt.mode)
			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("expected no match, got %s", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("id = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestMatchDeploy_NeverViolatesPredicates(t *testing.T) {
	contexts := []DeployContext{ContextProduction, ContextDeployPreview, ContextBranchDeploy, "dev", ""}
	shas := []string{"abc", "def"}
	modes := []MatchMode{PreviewOnly, ProductionOnly, AnyOfPreviewProductionBranch}

	var deploys []DeployRecord
	for _, c := range contexts {
		for _, s := range shas {
			deploys = append(deploys, DeployRecord{ID: string(c) + "-" + s, CommitRef: s, Context: c})
		}
	}

	// Every prefix of the list is a distinct input.
	for n := 0; n <= len(deploys); n++ {
		list := deploys[:n]
		for _, mode := range modes {
			for _, sha := range shas {
				want := false
				for _, d := range list {
					if d.CommitRef == sha && mode.Permits(d.Context) {
						want = true
						break
					}
				}
				got := MatchDeploy(list, sha, mode)
				if (got != nil) != want {
					t.Fatalf("n=%d mode=%s sha=%s: match=%v, want %v", n, mode, sha, got != nil, want)
				}
				if got != nil && (got.CommitRef != sha || !mode.Permits(got.Context)) {
					t.Fatalf("n=%d mode=%s sha=%s: returned violating record %+v", n, mode, sha, got)
				}
			}
		}
	}
}

func TestMatchDeploy_ReturnsCopy(t *testing.T) {
	deploys := []DeployRecord{{ID: "d1", CommitRef: "abc", Context: ContextProduction, State: StateBuilding}}
	got := MatchDeploy(deploys, "abc", ProductionOnly)
	got.State = StateReady
	if deploys[0].State != StateBuilding {
		t.Fatal("MatchDeploy must not alias provider records")
	}
}

func TestFindMatchingDeploy_WrapsLookupError(t *testing.T) {
	l := NewLookup(&mockClient{err: errors.New("connection refused")})
	_, err := l.FindMatchingDeploy(context.Background(), "site", "abc", PreviewOnly)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("error = %v, want ErrLookup", err)
	}
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		in      string
		want    MatchMode
		wantErr bool
	}{
		{in: "preview", want: PreviewOnly},
		{in: " Production ", want: ProductionOnly},
		{in: "any", want: AnyOfPreviewProductionBranch},
		{in: "branch-deploy", want: AnyOfPreviewProductionBranch},
		{in: "staging", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMatchMode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMatchMode(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
