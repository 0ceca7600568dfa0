// Package config loads the doclinks configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// CurrentVersion is the configuration format this package reads.
const CurrentVersion = "1.0"

// Config is the complete doclinks configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Templates TemplatesConfig `yaml:"templates"`
	Opts      OptsConfig      `yaml:"opts"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Store     StoreConfig     `yaml:"store"`
}

// TemplatesConfig holds the display flags consulted by inline link resolution.
type TemplatesConfig struct {
	MonospaceLinks bool `yaml:"monospaceLinks"` // render {@link} text in <code>
	CleverLinks    bool `yaml:"cleverLinks"`    // <code> unless the target is a URL
}

// OptsConfig selects which symbols survive pruning.
type OptsConfig struct {
	Access  []AccessLevel `yaml:"access,omitempty"`
	Private bool          `yaml:"private"`
}

// OutputConfig shapes generated identifiers.
type OutputConfig struct {
	FileExtension string `yaml:"fileExtension"`
	GlobalName    string `yaml:"globalName"` // longname of the page holding global symbols
	Directory     string `yaml:"directory,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables metric collection. A non-empty Textfile receives the
// collected metrics in Prometheus text format after each run.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile,omitempty"`
}

// StoreConfig points at the SQLite link snapshot database. Empty disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Load reads, normalizes, defaults and validates the configuration at path.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", logfields.Error(err))
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext(logfields.KeyPath, configPath).
			Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext(logfields.KeyPath, configPath).
			Build()
	}
	return Parse(data)
}

// Parse decodes configuration data after expanding ${VAR} references, then
// applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Version != "" && !strings.HasPrefix(cfg.Version, "1.") {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).Build()
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to apply defaults").Fatal().Build()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext(logfields.KeyPath, configPath).
			Build()
	}

	example := Default()
	example.Opts.Access = []AccessLevel{AccessPublic, AccessProtected, AccessUndefined}
	example.Output.Directory = "./out"
	example.Store.Path = "./doclinks.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext(logfields.KeyPath, configPath).
			Build()
	}
	return nil
}
