package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// GitHubConfig holds GitHub API configuration.
type GitHubConfig struct {
	Token    string `toml:"token"`
	Workflow string `toml:"workflow"`
}

// EndpointConfig points at a self-hosted status endpoint. When URL is set
// it takes precedence over provider detection from the git remote.
type EndpointConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// PollConfig holds the two poll intervals in seconds.
type PollConfig struct {
	ActiveSeconds int `toml:"active_seconds"`
	IdleSeconds   int `toml:"idle_seconds"`
}

// NotifyConfig controls notification delivery.
type NotifyConfig struct {
	Desktop bool `toml:"desktop"`
}

// Config holds all shipwatch configuration.
type Config struct {
	Repo     string         `toml:"repo"`
	RunLimit int            `toml:"run_limit"`
	GitHub   GitHubConfig   `toml:"github"`
	Endpoint EndpointConfig `toml:"endpoint"`
	Poll     PollConfig     `toml:"poll"`
	Notify   NotifyConfig   `toml:"notify"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RunLimit: 5,
		Poll:     PollConfig{ActiveSeconds: 5, IdleSeconds: 30},
		Notify:   NotifyConfig{Desktop: true},
	}
}

// LoadFrom reads configuration from the given TOML file path, layered over
// the defaults. If the file does not exist, the defaults are returned
// without error. Environment variables always take precedence over file
// values:
//   - GITHUB_TOKEN       overrides github.token
//   - SHIPWATCH_ENDPOINT overrides endpoint.url
//   - SHIPWATCH_REPO     overrides repo
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the shipwatch config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/shipwatch/config.toml"
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("SHIPWATCH_ENDPOINT"); v != "" {
		cfg.Endpoint.URL = v
	}
	if v := os.Getenv("SHIPWATCH_REPO"); v != "" {
		cfg.Repo = v
	}
}

func (c Config) validate() error {
	if c.Poll.ActiveSeconds < 1 {
		return fmt.Errorf("poll.active_seconds must be >= 1, got %d", c.Poll.ActiveSeconds)
	}
	if c.Poll.IdleSeconds < 1 {
		return fmt.Errorf("poll.idle_seconds must be >= 1, got %d", c.Poll.IdleSeconds)
	}
	if c.RunLimit < 1 {
		return fmt.Errorf("run_limit must be >= 1, got %d", c.RunLimit)
	}
	return nil
}

// ActiveInterval returns the poll interval used while a run is executing.
func (c Config) ActiveInterval() time.Duration {
	return time.Duration(c.Poll.ActiveSeconds) * time.Second
}

// IdleInterval returns the poll interval used while the pipeline is quiet.
func (c Config) IdleInterval() time.Duration {
	return time.Duration(c.Poll.IdleSeconds) * time.Second
}
