package provider_test

import (
	"context"
	"testing"

	"shipwatch/internal/deploy"
	"shipwatch/internal/provider"
)

type fakeProvider struct{ name string }

func (f *fakeProvider) ListRuns(_ context.Context, _ deploy.Repository) ([]deploy.Run, error) {
	return nil, nil
}

func TestRegistry_DetectsGitHub(t *testing.T) {
	gh := &fakeProvider{name: "github"}
	other := &fakeProvider{name: "other"}

	reg := provider.NewRegistry()
	reg.Register("github.com", gh)
	reg.Register("ci.example.com", other)

	p, err := reg.Detect("https://github.com/acme/webapp.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != gh {
		t.Error("expected github provider to be detected")
	}
}

func TestRegistry_DetectsSelfHostedHost(t *testing.T) {
	ci := &fakeProvider{name: "self-hosted"}

	reg := provider.NewRegistry()
	reg.Register("ci.mycompany.com", ci)

	p, err := reg.Detect("https://ci.mycompany.com/team/project.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != ci {
		t.Error("expected self-hosted provider to be detected")
	}
}

func TestRegistry_ErrorOnUnknownHost(t *testing.T) {
	reg := provider.NewRegistry()

	_, err := reg.Detect("https://bitbucket.org/user/repo.git")
	if err == nil {
		t.Fatal("expected error for unknown host, got nil")
	}
}
