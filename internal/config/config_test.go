// File: internal/config/config_test.go
package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "a11y-lighthouse", cfg.Logger().ServiceName)
	assert.True(t, cfg.Browser().Headless)
	assert.Equal(t, 9222, cfg.Browser().DebuggingPort)
	assert.Equal(t, 60*time.Second, cfg.Browser().NavigationTimeout)
	assert.Equal(t, "lighthouse", cfg.Lighthouse().Binary)
	assert.Equal(t, 3*time.Minute, cfg.Lighthouse().Timeout)
	assert.Equal(t, "reject", cfg.Audit().ZeroWeightPolicy)
	assert.Equal(t, 1, cfg.Engine().Concurrency)
	assert.NoError(t, cfg.Validate(), "defaults must be valid")
}

func TestSetters(t *testing.T) {
	var cfg Interface = NewDefaultConfig()

	cfg.SetBrowserHeadless(false)
	cfg.SetEngineConcurrency(4)
	cfg.SetAuditZeroWeightPolicy("uniform")

	assert.False(t, cfg.Browser().Headless)
	assert.Equal(t, 4, cfg.Engine().Concurrency)
	assert.Equal(t, "uniform", cfg.Audit().ZeroWeightPolicy)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero concurrency", func(c *Config) { c.EngineCfg.Concurrency = 0 }, "engine.concurrency must be a positive integer"},
		{"port out of range", func(c *Config) { c.BrowserCfg.DebuggingPort = 70000 }, "browser.debugging_port"},
		{"missing port", func(c *Config) { c.BrowserCfg.DebuggingPort = 0 }, "browser.debugging_port"},
		{"remote url with concurrency", func(c *Config) {
			c.BrowserCfg.RemoteURL = "ws://127.0.0.1:9222/devtools/browser/abc"
			c.EngineCfg.Concurrency = 2
		}, "engine.concurrency must be 1"},
		{"missing binary", func(c *Config) { c.LighthouseCfg.Binary = "" }, "lighthouse.binary"},
		{"negative timeout", func(c *Config) { c.LighthouseCfg.Timeout = -time.Second }, "lighthouse.timeout"},
		{"unknown policy", func(c *Config) { c.AuditCfg.ZeroWeightPolicy = "ignore" }, "audit.zero_weight_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("remote url without port is valid", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.BrowserCfg.RemoteURL = "ws://127.0.0.1:9222/devtools/browser/abc"
		cfg.BrowserCfg.DebuggingPort = 0
		assert.NoError(t, cfg.Validate())
	})
}

// -- Viper Integration Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("yaml overrides defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		yamlConfig := []byte(`
browser:
  headless: false
  debugging_port: 9300
  args:
    - "--lang=en-US"
lighthouse:
  binary: /opt/lighthouse/cli.js
  flags:
    - "--throttling-method=provided"
  timeout: 90s
audit:
  zero_weight_policy: uniform
engine:
  concurrency: 3
`)
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.False(t, cfg.Browser().Headless)
		assert.Equal(t, 9300, cfg.Browser().DebuggingPort)
		assert.Equal(t, []string{"--lang=en-US"}, cfg.Browser().Args)
		assert.Equal(t, "/opt/lighthouse/cli.js", cfg.Lighthouse().Binary)
		assert.Equal(t, []string{"--throttling-method=provided"}, cfg.Lighthouse().Flags)
		assert.Equal(t, 90*time.Second, cfg.Lighthouse().Timeout)
		assert.Equal(t, "uniform", cfg.Audit().ZeroWeightPolicy)
		assert.Equal(t, 3, cfg.Engine().Concurrency)
		// Untouched defaults survive.
		assert.Equal(t, "info", cfg.Logger().Level)
	})

	t.Run("home directory is expanded", func(t *testing.T) {
		home, err := homedir.Dir()
		if err != nil {
			t.Skip("home directory not resolvable in this environment")
		}

		v := viper.New()
		SetDefaults(v)
		v.Set("lighthouse.binary", "~/bin/lighthouse")

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "bin", "lighthouse"), cfg.Lighthouse().Binary)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("engine.concurrency", 0)

		_, err := NewConfigFromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
