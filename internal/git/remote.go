package git

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shipwatch/internal/deploy"
)

// DetectRepository reads the .git/config in the given directory and returns
// a Repository built from the origin remote URL.
func DetectRepository(dir string) (deploy.Repository, error) {
	configPath := filepath.Join(dir, ".git", "config")
	f, err := os.Open(configPath)
	if err != nil {
		return deploy.Repository{}, fmt.Errorf("could not open .git/config: %w", err)
	}
	defer f.Close()

	var inOrigin bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == `[remote "origin"]` {
			inOrigin = true
			continue
		}
		if inOrigin && strings.HasPrefix(line, "[") {
			break
		}
		if inOrigin && strings.HasPrefix(line, "url") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				return ParseRemoteURL(strings.TrimSpace(parts[1]))
			}
		}
	}
	return deploy.Repository{}, errors.New("no origin remote found in .git/config")
}

// ParseRepo resolves a user-supplied repository reference. It accepts the
// owner/name shorthand as well as any remote URL form ParseRemoteURL
// understands. Shorthand is assumed to live on github.com.
func ParseRepo(ref string) (deploy.Repository, error) {
	if !strings.Contains(ref, ":") && !strings.Contains(ref, "@") {
		parts := strings.Split(ref, "/")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return deploy.Repository{
				Owner:     parts[0],
				Name:      parts[1],
				RemoteURL: "https://github.com/" + ref,
			}, nil
		}
	}
	return ParseRemoteURL(ref)
}

// ParseRemoteURL parses a git remote URL and returns a Repository.
// Supports HTTPS (https://github.com/owner/repo.git) and SSH (git@github.com:owner/repo.git).
// The RemoteURL field in the returned Repository preserves the original input URL unchanged.
func ParseRemoteURL(rawURL string) (deploy.Repository, error) {
	originalURL := rawURL
	normalized := strings.TrimSuffix(rawURL, ".git")

	// SSH format: git@github.com:owner/repo
	if strings.HasPrefix(normalized, "git@") {
		trimmed := strings.TrimPrefix(normalized, "git@")
		parts := strings.SplitN(trimmed, ":", 2)
		if len(parts) != 2 {
			return deploy.Repository{}, fmt.Errorf("invalid SSH remote URL: %s", rawURL)
		}
		ownerRepo := strings.SplitN(parts[1], "/", 2)
		if len(ownerRepo) != 2 {
			return deploy.Repository{}, fmt.Errorf("invalid SSH remote URL path: %s", parts[1])
		}
		return deploy.Repository{
			Owner:     ownerRepo[0],
			Name:      ownerRepo[1],
			RemoteURL: originalURL,
		}, nil
	}

	// HTTPS format: https://github.com/owner/repo
	if strings.HasPrefix(normalized, "https://") || strings.HasPrefix(normalized, "http://") {
		withoutScheme := strings.TrimPrefix(normalized, "https://")
		withoutScheme = strings.TrimPrefix(withoutScheme, "http://")
		parts := strings.SplitN(withoutScheme, "/", 3)
		if len(parts) != 3 {
			return deploy.Repository{}, fmt.Errorf("invalid HTTPS remote URL: %s", rawURL)
		}
		return deploy.Repository{
			Owner:     parts[1],
			Name:      parts[2],
			RemoteURL: originalURL,
		}, nil
	}

	return deploy.Repository{}, fmt.Errorf("unsupported remote URL format: %s", rawURL)
}
