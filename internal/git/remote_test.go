package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"shipwatch/internal/git"
)

func TestParseRemoteURL_HTTPS(t *testing.T) {
	url := "https://github.com/acme/webapp.git"
	repo, err := git.ParseRemoteURL(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "acme" {
		t.Errorf("expected owner 'acme', got '%s'", repo.Owner)
	}
	if repo.Name != "webapp" {
		t.Errorf("expected name 'webapp', got '%s'", repo.Name)
	}
	if repo.RemoteURL != url {
		t.Errorf("expected remoteURL '%s', got '%s'", url, repo.RemoteURL)
	}
}

func TestParseRemoteURL_SSH(t *testing.T) {
	url := "git@github.com:acme/webapp.git"
	repo, err := git.ParseRemoteURL(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "acme" {
		t.Errorf("expected owner 'acme', got '%s'", repo.Owner)
	}
	if repo.Name != "webapp" {
		t.Errorf("expected name 'webapp', got '%s'", repo.Name)
	}
}

func TestParseRemoteURL_Invalid(t *testing.T) {
	_, err := git.ParseRemoteURL("not-a-url")
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestParseRepo_Shorthand(t *testing.T) {
	repo, err := git.ParseRepo("acme/webapp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "acme" {
		t.Errorf("expected owner 'acme', got '%s'", repo.Owner)
	}
	if repo.Name != "webapp" {
		t.Errorf("expected name 'webapp', got '%s'", repo.Name)
	}
	if repo.RemoteURL != "https://github.com/acme/webapp" {
		t.Errorf("unexpected remoteURL '%s'", repo.RemoteURL)
	}
}

func TestParseRepo_FullURL(t *testing.T) {
	repo, err := git.ParseRepo("git@github.com:acme/webapp.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Slug() != "acme/webapp" {
		t.Errorf("expected slug 'acme/webapp', got '%s'", repo.Slug())
	}
}

func TestParseRepo_Invalid(t *testing.T) {
	_, err := git.ParseRepo("just-a-name")
	if err == nil {
		t.Fatal("expected error for bare name, got nil")
	}
}

func TestDetectRepository_ReadsGitConfig(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(gitDir, 0755); err != nil {
		t.Fatal(err)
	}
	configContent := `[core]
	repositoryformatversion = 0
[remote "origin"]
	url = https://github.com/acme/webapp.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	repo, err := git.DetectRepository(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Owner != "acme" {
		t.Errorf("expected owner 'acme', got '%s'", repo.Owner)
	}
	if repo.Name != "webapp" {
		t.Errorf("expected name 'webapp', got '%s'", repo.Name)
	}
}

func TestDetectRepository_NoOrigin(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(gitDir, 0755); err != nil {
		t.Fatal(err)
	}
	configContent := `[core]
	repositoryformatversion = 0
`
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := git.DetectRepository(dir); err == nil {
		t.Fatal("expected error when origin remote is missing, got nil")
	}
}
