package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

var envVars = []string{
	"GOALSAI_CONFIG_PATH",
	"GOALSAI_PORT",
	"GOALSAI_READ_TIMEOUT",
	"GOALSAI_WRITE_TIMEOUT",
	"GOALSAI_SHUTDOWN_TIMEOUT",
	"GOALSAI_DB_PATH",
	"GOALSAI_LOG_LEVEL",
	"GOALSAI_LOG_FORMAT",
	"GOALSAI_OPTIONAL_MODULE_LIMIT",
	"GOALSAI_MAX_PROGRESS",
	"GOALSAI_SEED",
	"GOALSAI_EXPORT_BUCKET",
	"GOALSAI_S3_ENDPOINT",
	"GOALSAI_S3_REGION",
	"GOALSAI_S3_ACCESS_KEY",
	"GOALSAI_S3_SECRET_KEY",
	"GOALSAI_S3_USE_SSL",
	"GOALSAI_S3_URL_EXPIRY",
}

// clearEnv blanks every config-related env var for the test and points the
// config path at a file that does not exist.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
	t.Setenv("GOALSAI_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goalsai.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// dur converts Duration to time.Duration for comparison
func dur(d Duration) time.Duration {
	return time.Duration(d)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if dur(cfg.Server.ReadTimeout) != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", dur(cfg.Server.ReadTimeout))
	}
	if dur(cfg.Server.ShutdownTimeout) != 15*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 15s", dur(cfg.Server.ShutdownTimeout))
	}
	if cfg.Database.Path != "data/goalsai.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "data/goalsai.db")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if cfg.Synthesis.OptionalModuleLimit != 2 {
		t.Errorf("Synthesis.OptionalModuleLimit = %d, want 2", cfg.Synthesis.OptionalModuleLimit)
	}
	if cfg.Synthesis.MaxProgress != 0.6 {
		t.Errorf("Synthesis.MaxProgress = %v, want 0.6", cfg.Synthesis.MaxProgress)
	}
	if cfg.Export.Bucket != "" {
		t.Errorf("Export.Bucket = %q, want empty (export disabled)", cfg.Export.Bucket)
	}
	if dur(cfg.Export.URLExpiry) != 15*time.Minute {
		t.Errorf("Export.URLExpiry = %v, want 15m", dur(cfg.Export.URLExpiry))
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOALSAI_PORT", "9090")
	t.Setenv("GOALSAI_DB_PATH", "/custom/path.db")
	t.Setenv("GOALSAI_LOG_LEVEL", "debug")
	t.Setenv("GOALSAI_LOG_FORMAT", "text")
	t.Setenv("GOALSAI_OPTIONAL_MODULE_LIMIT", "0")
	t.Setenv("GOALSAI_MAX_PROGRESS", "0.4")
	t.Setenv("GOALSAI_SEED", "12345")
	t.Setenv("GOALSAI_EXPORT_BUCKET", "dashboards")
	t.Setenv("GOALSAI_S3_ENDPOINT", "localhost:9000")
	t.Setenv("GOALSAI_S3_ACCESS_KEY", "minioadmin")
	t.Setenv("GOALSAI_S3_SECRET_KEY", "miniosecret")
	t.Setenv("GOALSAI_S3_USE_SSL", "false")
	t.Setenv("GOALSAI_S3_URL_EXPIRY", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Synthesis.OptionalModuleLimit != 0 || cfg.Synthesis.MaxProgress != 0.4 || cfg.Synthesis.Seed != 12345 {
		t.Errorf("Synthesis = %+v", cfg.Synthesis)
	}
	if cfg.Export.Bucket != "dashboards" || cfg.Export.Endpoint != "localhost:9000" {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Export.AccessKey != "minioadmin" || cfg.Export.SecretKey != "miniosecret" {
		t.Error("export credentials not read from env")
	}
	if cfg.Export.UseSSL == nil || *cfg.Export.UseSSL {
		t.Errorf("Export.UseSSL = %v, want false", cfg.Export.UseSSL)
	}
	if dur(cfg.Export.URLExpiry) != time.Hour {
		t.Errorf("Export.URLExpiry = %v, want 1h", dur(cfg.Export.URLExpiry))
	}
}

func TestLoad_InvalidEnvValueIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOALSAI_PORT", "not-a-port")
	t.Setenv("GOALSAI_READ_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 || dur(cfg.Server.ReadTimeout) != 30*time.Second {
		t.Errorf("invalid env values should keep defaults, got %+v", cfg.Server)
	}
}

func TestLoadFromFile_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 7000
  read_timeout: 10s
database:
  path: /var/lib/goalsai/goals.db
log:
  level: warn
  format: text
synthesis:
  optional_module_limit: 3
  max_progress: 0.5
  seed: 99
export:
  bucket: goal-dashboards
  endpoint: s3.example.com
  use_ssl: true
  url_expiry: 30m
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Server.Port != 7000 || dur(cfg.Server.ReadTimeout) != 10*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if dur(cfg.Server.WriteTimeout) != 30*time.Second {
		t.Errorf("unset WriteTimeout should keep default, got %v", dur(cfg.Server.WriteTimeout))
	}
	if cfg.Database.Path != "/var/lib/goalsai/goals.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Synthesis.OptionalModuleLimit != 3 || cfg.Synthesis.MaxProgress != 0.5 || cfg.Synthesis.Seed != 99 {
		t.Errorf("Synthesis = %+v", cfg.Synthesis)
	}
	if cfg.Export.Bucket != "goal-dashboards" || dur(cfg.Export.URLExpiry) != 30*time.Minute {
		t.Errorf("Export = %+v", cfg.Export)
	}
}

func TestLoadFromFile_SecretsNotReadFromYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
export:
  bucket: b
  endpoint: e
  access_key: from-yaml
  secret_key: from-yaml
`)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Export.AccessKey != "" || cfg.Export.SecretKey != "" {
		t.Error("export credentials must come from the environment only")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 7000\nlog:\n  level: warn\n")
	t.Setenv("GOALSAI_CONFIG_PATH", path)
	t.Setenv("GOALSAI_PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want env value 7100", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want YAML value warn", cfg.Log.Level)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server: [unclosed")

	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("LoadFromFile() error = %v, want parse error", err)
	}
}

func TestLoadFromFile_InvalidDuration(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  read_timeout: forever\n")

	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("LoadFromFile() error = %v, want invalid duration", err)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"bad log format", "log:\n  format: xml\n", "log.format"},
		{"negative optional limit", "synthesis:\n  optional_module_limit: -1\n", "optional_module_limit"},
		{"max progress above one", "synthesis:\n  max_progress: 1.5\n", "max_progress"},
		{"bucket without endpoint", "export:\n  bucket: b\n", "export.endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
	}{Duration(90 * time.Second)})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != "d: 1m30s" {
		t.Errorf("Marshal = %q", out)
	}
}
