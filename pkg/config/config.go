// Package config reads and writes the on-disk agent configuration stored at
// ${HOME}/.elydora/<agent_id>/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBaseURL is the platform endpoint used when none is configured.
const DefaultBaseURL = "https://api.elydora.com"

// EnvBaseURL overrides the configured base URL when set.
const EnvBaseURL = "ELYDORA_BASE_URL"

// FileName is the fixed name of the agent config file.
const FileName = "config.json"

// Config is the persisted agent configuration. Token is present only after a
// login has been stored.
type Config struct {
	OrgID     string `json:"org_id"`
	AgentID   string `json:"agent_id"`
	KID       string `json:"kid"`
	BaseURL   string `json:"base_url"`
	AgentName string `json:"agent_name"`
	Token     string `json:"token,omitempty"`
}

// Dir returns the agent directory ${HOME}/.elydora/<agent_id>.
func Dir(agentID string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".elydora", agentID), nil
}

// Load reads a config file and applies the base URL default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &cfg, nil
}

// Save writes the config file with owner-only permissions.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveBaseURL returns the effective endpoint: the environment override if
// set, then the configured value, then the default.
func (c *Config) ResolveBaseURL() string {
	if env := os.Getenv(EnvBaseURL); env != "" {
		return env
	}
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}
