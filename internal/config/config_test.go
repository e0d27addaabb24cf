package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bugbash.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidRedisConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
instance: team-a
storage:
  backend: redis
  addr: localhost:6379
tracking:
  base_url: https://dev.azure.com/contoso
  token: secret
scope:
  project: proj-1
  team: team-1
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "team-a", config.Instance)
	assert.Equal(t, BackendRedis, config.Storage.Backend)
	assert.Equal(t, "localhost:6379", config.Storage.Addr)
	assert.Equal(t, "proj-1", config.Scope.Project)
}

func TestLoad_ValidBoltConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
instance: solo
storage:
  backend: bolt
  path: ./data/bugbash.db
tracking:
  base_url: https://dev.azure.com/contoso
scope:
  project: proj-1
  team: team-1
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, config.Storage.Backend)
	assert.Equal(t, "./data/bugbash.db", config.Storage.Path)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/bugbash.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [broken")
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Version:  "1.0",
			Instance: "team-a",
			Storage:  StorageConfig{Backend: BackendRedis, Addr: "localhost:6379"},
			Tracking: TrackingConfig{BaseURL: "https://dev.azure.com/contoso"},
			Scope:    ScopeConfig{Project: "proj-1", Team: "team-1"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	cases := map[string]struct {
		mutate  func(*Config)
		wantErr string
	}{
		"wrong version": {
			func(c *Config) { c.Version = "2.0" }, "unsupported version",
		},
		"missing instance": {
			func(c *Config) { c.Instance = "" }, "instance is required",
		},
		"missing backend": {
			func(c *Config) { c.Storage.Backend = "" }, "storage.backend is required",
		},
		"unknown backend": {
			func(c *Config) { c.Storage.Backend = "postgres" }, "invalid storage.backend",
		},
		"redis without addr": {
			func(c *Config) { c.Storage.Addr = "" }, "storage.addr is required",
		},
		"bolt without path": {
			func(c *Config) { c.Storage = StorageConfig{Backend: BackendBolt} }, "storage.path is required",
		},
		"missing base url": {
			func(c *Config) { c.Tracking.BaseURL = "" }, "tracking.base_url is required",
		},
		"missing project": {
			func(c *Config) { c.Scope.Project = "" }, "scope.project is required",
		},
		"missing team": {
			func(c *Config) { c.Scope.Team = "" }, "scope.team is required",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolveToken(t *testing.T) {
	t.Run("literal token", func(t *testing.T) {
		tr := TrackingConfig{Token: "literal"}
		assert.Equal(t, "literal", tr.ResolveToken())
	})

	t.Run("environment variable wins when set", func(t *testing.T) {
		t.Setenv("BUGBASH_PAT", "from-env")
		tr := TrackingConfig{Token: "literal", TokenEnv: "BUGBASH_PAT"}
		assert.Equal(t, "from-env", tr.ResolveToken())
	})

	t.Run("falls back to literal when env empty", func(t *testing.T) {
		tr := TrackingConfig{Token: "literal", TokenEnv: "BUGBASH_UNSET_VAR"}
		assert.Equal(t, "literal", tr.ResolveToken())
	})
}
