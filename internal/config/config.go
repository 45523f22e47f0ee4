package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Export    ExportConfig    `yaml:"export"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SynthesisConfig controls dashboard module selection and mock data.
type SynthesisConfig struct {
	// OptionalModuleLimit is how many optional modules a new goal gets.
	OptionalModuleLimit int `yaml:"optional_module_limit"`
	// MaxProgress bounds the random progress of generated data.
	MaxProgress float64 `yaml:"max_progress"`
	// Seed seeds the data generator; 0 picks one from the clock.
	Seed uint64 `yaml:"seed"`
}

// ExportConfig contains S3-compatible dashboard export settings.
// An empty Bucket disables export.
type ExportConfig struct {
	Bucket    string   `yaml:"bucket"`
	Endpoint  string   `yaml:"endpoint"`
	Region    string   `yaml:"region"`
	AccessKey string   `yaml:"-"` // env-only, never in YAML
	SecretKey string   `yaml:"-"` // env-only, never in YAML
	UseSSL    *bool    `yaml:"use_ssl"`
	URLExpiry Duration `yaml:"url_expiry"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("GOALSAI_CONFIG_PATH", "config/goalsai.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/goalsai.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Synthesis: SynthesisConfig{
			OptionalModuleLimit: 2,
			MaxProgress:         0.6,
		},
		Export: ExportConfig{
			Region:    "us-east-1",
			URLExpiry: Duration(15 * time.Minute),
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("GOALSAI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	envDuration("GOALSAI_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("GOALSAI_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("GOALSAI_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	// Database
	if v := os.Getenv("GOALSAI_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Log
	if v := os.Getenv("GOALSAI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GOALSAI_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Synthesis
	if v := os.Getenv("GOALSAI_OPTIONAL_MODULE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Synthesis.OptionalModuleLimit = n
		}
	}
	if v := os.Getenv("GOALSAI_MAX_PROGRESS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Synthesis.MaxProgress = f
		}
	}
	if v := os.Getenv("GOALSAI_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Synthesis.Seed = n
		}
	}

	// Export
	if v := os.Getenv("GOALSAI_EXPORT_BUCKET"); v != "" {
		cfg.Export.Bucket = v
	}
	if v := os.Getenv("GOALSAI_S3_ENDPOINT"); v != "" {
		cfg.Export.Endpoint = v
	}
	if v := os.Getenv("GOALSAI_S3_REGION"); v != "" {
		cfg.Export.Region = v
	}
	if v := os.Getenv("GOALSAI_S3_ACCESS_KEY"); v != "" {
		cfg.Export.AccessKey = v
	}
	if v := os.Getenv("GOALSAI_S3_SECRET_KEY"); v != "" {
		cfg.Export.SecretKey = v
	}
	if v := os.Getenv("GOALSAI_S3_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Export.UseSSL = &b
		}
	}
	envDuration("GOALSAI_S3_URL_EXPIRY", &cfg.Export.URLExpiry)
}

func envDuration(key string, dst *Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}

// validate checks that configuration values are usable.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if c.Synthesis.OptionalModuleLimit < 0 {
		return errors.New("synthesis.optional_module_limit must not be negative")
	}
	if c.Synthesis.MaxProgress <= 0 || c.Synthesis.MaxProgress > 1 {
		return fmt.Errorf("synthesis.max_progress must be in (0, 1], got %v", c.Synthesis.MaxProgress)
	}
	if c.Export.Bucket != "" && c.Export.Endpoint == "" {
		return errors.New("export.endpoint is required when export.bucket is set")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
