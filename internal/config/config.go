// Package config loads and validates bugbash.yml, the per-checkout
// configuration naming the storage backend, the work item service, and
// the project/team scope every operation runs under.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks when --config is not given.
const DefaultPath = "bugbash.yml"

// Backend selects the document storage implementation.
type Backend string

const (
	// BackendRedis stores documents in a shared Redis instance.
	BackendRedis Backend = "redis"

	// BackendBolt stores documents in a local bbolt file.
	BackendBolt Backend = "bolt"
)

// Config is the top-level bugbash.yml configuration.
type Config struct {
	Version string `yaml:"version"`

	// Instance namespaces storage keys so several deployments can share
	// one Redis server.
	Instance string `yaml:"instance"`

	Storage  StorageConfig  `yaml:"storage"`
	Tracking TrackingConfig `yaml:"tracking"`
	Scope    ScopeConfig    `yaml:"scope"`
}

// StorageConfig selects and parameterises the document store.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`

	// Addr is the Redis host:port (backend: redis).
	Addr string `yaml:"addr,omitempty"`

	// Path is the database file location (backend: bolt).
	Path string `yaml:"path,omitempty"`
}

// TrackingConfig points at the work item service.
type TrackingConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`

	// TokenEnv names an environment variable to read the token from,
	// so bugbash.yml can be committed without credentials.
	TokenEnv string `yaml:"token_env,omitempty"`
}

// ScopeConfig is the caller's project/team context.
type ScopeConfig struct {
	Project string `yaml:"project"`
	Team    string `yaml:"team"`
}

// ResolveToken returns the configured token, preferring the environment
// variable when one is named.
func (t *TrackingConfig) ResolveToken() string {
	if t.TokenEnv != "" {
		if v := os.Getenv(t.TokenEnv); v != "" {
			return v
		}
	}
	return t.Token
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Instance == "" {
		return fmt.Errorf("instance is required")
	}

	switch c.Storage.Backend {
	case BackendRedis:
		if c.Storage.Addr == "" {
			return fmt.Errorf("storage.addr is required for the redis backend")
		}
	case BackendBolt:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the bolt backend")
		}
	case "":
		return fmt.Errorf("storage.backend is required (redis or bolt)")
	default:
		return fmt.Errorf("invalid storage.backend: %s (must be 'redis' or 'bolt')", c.Storage.Backend)
	}

	if c.Tracking.BaseURL == "" {
		return fmt.Errorf("tracking.base_url is required")
	}

	if c.Scope.Project == "" {
		return fmt.Errorf("scope.project is required")
	}
	if c.Scope.Team == "" {
		return fmt.Errorf("scope.team is required")
	}

	return nil
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
