package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benaskins/rememberme/internal/keychain"
)

// Config holds persistent settings loaded from ~/.rememberme/config.yaml.
type Config struct {
	Service  string `yaml:"service"`
	Backend  string `yaml:"backend"`
	AuditLog string `yaml:"audit_log"`
	Metadata string `yaml:"metadata"`
	LogLevel string `yaml:"log_level"`
}

// Home returns the rememberme home directory (~/.rememberme).
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rememberme"), nil
}

// DefaultPath returns the default config file path: ~/.rememberme/config.yaml.
func DefaultPath() string {
	dir, err := Home()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns the defaults and no error. An empty or all-comment file
// also returns the defaults with no error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Service == "" {
		c.Service = keychain.DefaultService
	}
	if c.Backend == "" {
		c.Backend = keychain.BackendSystem
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.AuditLog != "" && c.Metadata != "" {
		return nil
	}
	dir, err := Home()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	if c.AuditLog == "" {
		c.AuditLog = filepath.Join(dir, "audit.log")
	}
	if c.Metadata == "" {
		c.Metadata = filepath.Join(dir, "credential-metadata.json")
	}
	return nil
}

// Validate checks backend and log level names.
func (c *Config) Validate() error {
	if !slices.Contains(keychain.Backends, c.Backend) {
		return fmt.Errorf("invalid backend %q: must be one of %s", c.Backend, strings.Join(keychain.Backends, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", name)
	}
	return lvl, nil
}
