package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServer = "http://localhost:8080"
	configEnv     = "HRMSCTL_CONFIG"
)

// cliConfig is the on-disk state of hrmsctl: where the API lives, the
// preferred theme and the current session.
type cliConfig struct {
	Server       string    `yaml:"server"`
	Theme        string    `yaml:"theme,omitempty"`
	Email        string    `yaml:"email,omitempty"`
	AccessToken  string    `yaml:"access_token,omitempty"`
	RefreshToken string    `yaml:"refresh_token,omitempty"`
	ExpiresAt    time.Time `yaml:"expires_at,omitempty"`
}

func defaultConfigPath() (string, error) {
	if p := os.Getenv(configEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hrmsctl", "config.yaml"), nil
}

// loadConfig reads path. A missing file yields the defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{Server: defaultServer, Theme: "light"}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	return cfg, nil
}

func saveConfig(path string, cfg cliConfig) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func (c cliConfig) signedIn() bool {
	return c.AccessToken != ""
}

// expired reports whether the access token is past its expiry, with a
// minute of slack.
func (c cliConfig) expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.Add(time.Minute).After(c.ExpiresAt)
}

func (c *cliConfig) clearSession() {
	c.Email = ""
	c.AccessToken = ""
	c.RefreshToken = ""
	c.ExpiresAt = time.Time{}
}
