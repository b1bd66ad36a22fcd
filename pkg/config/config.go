// Package config loads the pglo CLI configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (PGLO_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the root pglo configuration.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Database configures the PostgreSQL connection the large object store
	// runs against.
	Database lob.Config `mapstructure:"database" yaml:"database"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN or ERROR.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log output format: text or json.
	Format string `mapstructure:"format" yaml:"format"`

	// Output is the log destination: stdout, stderr or a file path.
	Output string `mapstructure:"output" yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
	}
	cfg.Database.ApplyDefaults()
	return cfg
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/pglo/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pglo", "config.yaml")
}

// Load reads the configuration from path. An empty path falls back to
// DefaultPath; a missing file is not an error and yields Default overlaid
// with any PGLO_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("PGLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch strings.ToUpper(c.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	return c.Database.Validate()
}

// Save writes the configuration to path in YAML format.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config files carry database credentials, keep them owner-only.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output", def.Logging.Output)

	v.SetDefault("database.host", def.Database.Host)
	v.SetDefault("database.port", def.Database.Port)
	v.SetDefault("database.ssl_mode", def.Database.SSLMode)

	// Registered empty so PGLO_DATABASE_* env vars reach Unmarshal even
	// without a config file.
	v.SetDefault("database.database", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
