package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"shipwatch/internal/deploy"
)

// Store persists the last-known run list for one watched pipeline. Reads
// and writes are best effort: a missing or corrupt file loads as empty,
// and failed writes are dropped silently. The cache only exists so the
// badge has something to show before the first live fetch lands.
type Store struct {
	path string
}

// NewStore returns a store keyed by the watch target (repository slug or
// endpoint URL) under the user cache directory.
func NewStore(key string) (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(cacheDir, "shipwatch")
	name := "runs_" + hashString(key) + ".json"
	return &Store{path: filepath.Join(dir, name)}, nil
}

// NewStoreAt returns a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load returns the cached runs, or nil when no usable cache exists.
func (s *Store) Load() []deploy.Run {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var runs []deploy.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil
	}
	return runs
}

// Save replaces the cached runs. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated cache behind.
func (s *Store) Save(runs []deploy.Run) {
	data, err := json.Marshal(runs)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
