// Package config manages choadra client configuration using koanf/v2.
//
// Supports YAML files and environment variables; CLI flag overrides are
// applied by the caller after Load.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete choadra client configuration.
type Config struct {
	Client  ClientConfig  `koanf:"client"`
	Auth    AuthConfig    `koanf:"auth"`
	Metrics MetricsConfig `koanf:"metrics"`
	Log     LogConfig     `koanf:"log"`
}

// ClientConfig holds the connection parameters for the target server.
type ClientConfig struct {
	// ServerAddr is the server address to dial, host:port
	// (e.g., "play.example.com:25565").
	ServerAddr string `koanf:"server_addr"`

	// ProtocolVersion is the protocol version number sent in the
	// Handshake packet. 0 means "use the library default".
	ProtocolVersion int32 `koanf:"protocol_version"`
}

// AuthConfig holds the credentials used for an online-mode login.
// With Online false (the default) the login is offline-mode: no
// credentials are passed, and Username is still sent in LoginStart.
type AuthConfig struct {
	// Username is the in-game name sent in LoginStart.
	Username string `koanf:"username"`

	// Online selects whether login must succeed with an online-mode
	// server (EncryptionRequest expected). Offline servers ignore it.
	Online bool `koanf:"online"`

	// AccessToken is the Mojang/Microsoft session access token used to
	// satisfy join_session when the server demands encryption.
	// Normally supplied via CHOADRA_AUTH_ACCESS_TOKEN, never committed
	// to a config file.
	AccessToken string `koanf:"access_token"`

	// SelectedProfileID is the player profile id paired with
	// AccessToken.
	SelectedProfileID string `koanf:"selected_profile_id"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			ServerAddr: "localhost:25565",
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for choadra configuration.
// Variables are named CHOADRA_<section>_<key>, e.g., CHOADRA_CLIENT_SERVER_ADDR.
const envPrefix = "CHOADRA_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (CHOADRA_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	CHOADRA_CLIENT_SERVER_ADDR  -> client.server_addr
//	CHOADRA_AUTH_ACCESS_TOKEN   -> auth.access_token
//	CHOADRA_LOG_LEVEL           -> log.level
//	CHOADRA_LOG_FORMAT          -> log.format
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms CHOADRA_CLIENT_SERVER_ADDR -> client.server_addr.
// Strips the CHOADRA_ prefix, lowercases, and replaces the first _ (the
// section separator) with ., keeping underscores inside key names.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"client.server_addr": defaults.Client.ServerAddr,
		"metrics.addr":       defaults.Metrics.Addr,
		"metrics.path":       defaults.Metrics.Path,
		"log.level":          defaults.Log.Level,
		"log.format":         defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyServerAddr indicates the server address is empty.
	ErrEmptyServerAddr = errors.New("client.server_addr must not be empty")

	// ErrOnlineWithoutUsername indicates online mode was requested
	// without a username to log in as.
	ErrOnlineWithoutUsername = errors.New("auth.online requires auth.username")

	// ErrOnlineWithoutAccessToken indicates online mode was requested
	// without an access token to satisfy join_session.
	ErrOnlineWithoutAccessToken = errors.New("auth.online requires auth.access_token")
)

// Validate checks the configuration for logical errors.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Client.ServerAddr == "" {
		return ErrEmptyServerAddr
	}

	if cfg.Auth.Online {
		if cfg.Auth.Username == "" {
			return ErrOnlineWithoutUsername
		}

		if cfg.Auth.AccessToken == "" {
			return ErrOnlineWithoutAccessToken
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
