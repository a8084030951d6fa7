// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Lighthouse() LighthouseConfig
	Audit() AuditConfig
	Engine() EngineConfig

	SetBrowserHeadless(bool)
	SetEngineConcurrency(int)
	SetAuditZeroWeightPolicy(string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	BrowserCfg    BrowserConfig    `mapstructure:"browser" yaml:"browser"`
	LighthouseCfg LighthouseConfig `mapstructure:"lighthouse" yaml:"lighthouse"`
	AuditCfg      AuditConfig      `mapstructure:"audit" yaml:"audit"`
	EngineCfg     EngineConfig     `mapstructure:"engine" yaml:"engine"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig         { return c.LoggerCfg }
func (c *Config) Browser() BrowserConfig       { return c.BrowserCfg }
func (c *Config) Lighthouse() LighthouseConfig { return c.LighthouseCfg }
func (c *Config) Audit() AuditConfig           { return c.AuditCfg }
func (c *Config) Engine() EngineConfig         { return c.EngineCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetBrowserHeadless(b bool)         { c.BrowserCfg.Headless = b }
func (c *Config) SetEngineConcurrency(n int)        { c.EngineCfg.Concurrency = n }
func (c *Config) SetAuditZeroWeightPolicy(p string) { c.AuditCfg.ZeroWeightPolicy = p }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig holds settings for the Chrome instance the audit engine attaches to.
type BrowserConfig struct {
	Headless        bool     `mapstructure:"headless" yaml:"headless"`
	IgnoreTLSErrors bool     `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	ExecPath        string   `mapstructure:"exec_path" yaml:"exec_path"`
	Args            []string `mapstructure:"args" yaml:"args"`
	// DebuggingPort is the first remote-debugging port handed out. Concurrent
	// targets use consecutive ports starting here.
	DebuggingPort int `mapstructure:"debugging_port" yaml:"debugging_port"`
	// RemoteURL attaches to an already running browser instead of launching one.
	RemoteURL         string        `mapstructure:"remote_url" yaml:"remote_url"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// LighthouseConfig configures the external audit engine.
type LighthouseConfig struct {
	Binary  string        `mapstructure:"binary" yaml:"binary"`
	Flags   []string      `mapstructure:"flags" yaml:"flags"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// AuditConfig tunes the result pipeline.
type AuditConfig struct {
	// ZeroWeightPolicy is "reject" or "uniform".
	ZeroWeightPolicy string `mapstructure:"zero_weight_policy" yaml:"zero_weight_policy"`
}

// EngineConfig configures how many targets are audited at once.
type EngineConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "a11y-lighthouse")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.debugging_port", 9222)
	v.SetDefault("browser.navigation_timeout", "60s")

	// -- Lighthouse --
	v.SetDefault("lighthouse.binary", "lighthouse")
	v.SetDefault("lighthouse.timeout", "3m")

	// -- Audit --
	v.SetDefault("audit.zero_weight_policy", "reject")

	// -- Engine --
	v.SetDefault("engine.concurrency", 1)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// expandPaths resolves home directory references (~) in path settings.
func (c *Config) expandPaths() error {
	paths := map[string]*string{
		"logger.log_file":   &c.LoggerCfg.LogFile,
		"browser.exec_path": &c.BrowserCfg.ExecPath,
		"lighthouse.binary": &c.LighthouseCfg.Binary,
	}
	for key, p := range paths {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("could not resolve %s '%s': %w", key, *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.EngineCfg.Concurrency <= 0 {
		return fmt.Errorf("engine.concurrency must be a positive integer")
	}
	if c.BrowserCfg.RemoteURL == "" && (c.BrowserCfg.DebuggingPort <= 0 || c.BrowserCfg.DebuggingPort > 65535) {
		return fmt.Errorf("browser.debugging_port must be between 1 and 65535")
	}
	if c.BrowserCfg.RemoteURL != "" && c.EngineCfg.Concurrency > 1 {
		return fmt.Errorf("engine.concurrency must be 1 when browser.remote_url is set")
	}
	if c.LighthouseCfg.Binary == "" {
		return fmt.Errorf("lighthouse.binary is a required configuration field")
	}
	if c.LighthouseCfg.Timeout < 0 {
		return fmt.Errorf("lighthouse.timeout must not be negative")
	}
	switch strings.ToLower(c.AuditCfg.ZeroWeightPolicy) {
	case "reject", "uniform":
	default:
		return fmt.Errorf("audit.zero_weight_policy must be 'reject' or 'uniform', got '%s'", c.AuditCfg.ZeroWeightPolicy)
	}
	return nil
}
