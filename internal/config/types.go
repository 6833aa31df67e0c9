package config

import (
	"time"
)

// APIConfig contains Resource API listener settings.
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// StaticDir optionally serves a built frontend from this directory.
	StaticDir   string   `yaml:"static_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StoreConfig describes the document store the API persists to.
type StoreConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"` // e.g. "10s"
	ZonesDB string `yaml:"zones_db"`
	UsersDB string `yaml:"users_db"`
	// StartupWait bounds how long the API waits for the store at boot.
	StartupWait string `yaml:"startup_wait"`
}

// TimeoutDuration parses Timeout, falling back to 10s.
func (s StoreConfig) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout, 10*time.Second)
}

// StartupWaitDuration parses StartupWait, falling back to 30s.
func (s StoreConfig) StartupWaitDuration() time.Duration {
	return parseDuration(s.StartupWait, 30*time.Second)
}

// AuthConfig contains token signing and bootstrap settings.
//
// Note: SecretKey and BootstrapPassword are secrets and must never be logged.
type AuthConfig struct {
	SecretKey         string `yaml:"secret_key"`
	Algorithm         string `yaml:"algorithm"`
	TokenTTLMinutes   int    `yaml:"token_ttl_minutes"`
	BootstrapAdmin    bool   `yaml:"bootstrap_admin"`
	BootstrapUsername string `yaml:"bootstrap_username"`
	BootstrapPassword string `yaml:"bootstrap_password"`
}

// TokenTTL returns the configured token lifetime (15 minutes if unset).
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"`
	Structured       bool              `yaml:"structured"`
	StructuredFormat string            `yaml:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields,omitempty"`
}

// DocStoreConfig contains settings for the bundled document store server.
type DocStoreConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"` // SQLite database file
}

// Config is the root configuration structure.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Store    StoreConfig    `yaml:"store"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	DocStore DocStoreConfig `yaml:"docstore"`
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
