package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dantte-lp/choadra/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Client.ServerAddr != "localhost:25565" {
		t.Errorf("Client.ServerAddr = %q, want %q", cfg.Client.ServerAddr, "localhost:25565")
	}

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	// Defaults must pass validation.
	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
client:
  server_addr: "play.example.com:25565"
  protocol_version: 754
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Client.ServerAddr != "play.example.com:25565" {
		t.Errorf("Client.ServerAddr = %q, want %q", cfg.Client.ServerAddr, "play.example.com:25565")
	}

	if cfg.Client.ProtocolVersion != 754 {
		t.Errorf("Client.ProtocolVersion = %d, want %d", cfg.Client.ProtocolVersion, 754)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override client.server_addr and log.level.
	// Everything else should inherit from defaults.
	yamlContent := `
client:
  server_addr: "localhost:55555"
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	// Overridden values.
	if cfg.Client.ServerAddr != "localhost:55555" {
		t.Errorf("Client.ServerAddr = %q, want %q", cfg.Client.ServerAddr, "localhost:55555")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Default values should be preserved.
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want default %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty server addr",
			modify: func(cfg *config.Config) {
				cfg.Client.ServerAddr = ""
			},
			wantErr: config.ErrEmptyServerAddr,
		},
		{
			name: "online without username",
			modify: func(cfg *config.Config) {
				cfg.Auth.Online = true
				cfg.Auth.AccessToken = "token"
			},
			wantErr: config.ErrOnlineWithoutUsername,
		},
		{
			name: "online without access token",
			modify: func(cfg *config.Config) {
				cfg.Auth.Online = true
				cfg.Auth.Username = "alice"
			},
			wantErr: config.ErrOnlineWithoutAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOfflineDoesNotRequireCredentials(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Auth.Online = false

	if err := config.Validate(cfg); err != nil {
		t.Errorf("Validate() offline mode returned error: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

// -------------------------------------------------------------------------
// Environment Variable Override Tests
// -------------------------------------------------------------------------

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	yamlContent := `
client:
  server_addr: "localhost:25565"
log:
  level: "info"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("CHOADRA_CLIENT_SERVER_ADDR", "play.example.com:25565")
	t.Setenv("CHOADRA_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Client.ServerAddr != "play.example.com:25565" {
		t.Errorf("Client.ServerAddr = %q, want %q (from env)", cfg.Client.ServerAddr, "play.example.com:25565")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestLoadEnvOverridesAuth(t *testing.T) {
	yamlContent := `
client:
  server_addr: "localhost:25565"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("CHOADRA_AUTH_ACCESS_TOKEN", "secret-token")
	t.Setenv("CHOADRA_AUTH_USERNAME", "alice")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Auth.AccessToken != "secret-token" {
		t.Errorf("Auth.AccessToken = %q, want %q (from env)", cfg.Auth.AccessToken, "secret-token")
	}

	if cfg.Auth.Username != "alice" {
		t.Errorf("Auth.Username = %q, want %q (from env)", cfg.Auth.Username, "alice")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "choadra.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
