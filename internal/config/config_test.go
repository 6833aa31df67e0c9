package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POUCHDB_URL", "ZONEINV_STORE_URL", "SECRET_KEY", "ZONEINV_SECRET_KEY",
		"ALGORITHM", "ZONEINV_ALGORITHM", "ACCESS_TOKEN_EXPIRE_MINUTES",
		"ZONEINV_TOKEN_TTL_MINUTES", "ZONEINV_BOOTSTRAP_ADMIN", "ZONEINV_BOOTSTRAP_PASSWORD",
		"ZONEINV_HOST", "ZONEINV_PORT", "ZONEINV_STATIC_DIR", "ZONEINV_LOG_LEVEL",
		"ZONEINV_DOCSTORE_PATH", "DB_PATH", "ZONEINV_DOCSTORE_PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigPath, tt.envValue)
			got := ResolveConfigPath(tt.flag)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.API.Port)
	}
	if cfg.Store.URL != "http://localhost:5984" {
		t.Errorf("unexpected store url %s", cfg.Store.URL)
	}
	if cfg.Auth.SecretKey != "" {
		t.Error("secret must not have a default")
	}
	if cfg.Auth.BootstrapAdmin {
		t.Error("bootstrap admin must be opt-in")
	}
	if cfg.Auth.TokenTTL() != 15*time.Minute {
		t.Errorf("expected 15m ttl, got %s", cfg.Auth.TokenTTL())
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	content := `
api:
  host: "127.0.0.1"
  port: 9000
store:
  url: "http://couch:5984/"
  timeout: "3s"
auth:
  secret_key: "file-secret"
  algorithm: "hs512"
  token_ttl_minutes: 60
logging:
  level: "debug"
  structured: true
`
	dir := t.TempDir()
	path := filepath.Join(dir, "zoneinv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.API.Host != "127.0.0.1" || cfg.API.Port != 9000 {
		t.Errorf("unexpected api listener %s:%d", cfg.API.Host, cfg.API.Port)
	}
	if cfg.Store.URL != "http://couch:5984" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Store.URL)
	}
	if cfg.Store.TimeoutDuration() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Store.TimeoutDuration())
	}
	if cfg.Auth.Algorithm != "HS512" {
		t.Errorf("expected HS512, got %s", cfg.Auth.Algorithm)
	}
	if cfg.Auth.TokenTTL() != time.Hour {
		t.Errorf("expected 1h ttl, got %s", cfg.Auth.TokenTTL())
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected DEBUG, got %s", cfg.Logging.Level)
	}
	// Defaults survive partial files.
	if cfg.Store.ZonesDB != "server_resources" {
		t.Errorf("expected default zones db, got %s", cfg.Store.ZonesDB)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "zoneinv.yaml")
	if err := os.WriteFile(path, []byte("auth:\n  secret_key: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("POUCHDB_URL", "http://store:1234")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("ZONEINV_BOOTSTRAP_ADMIN", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.SecretKey != "from-env" {
		t.Errorf("expected env secret, got %s", cfg.Auth.SecretKey)
	}
	if cfg.Store.URL != "http://store:1234" {
		t.Errorf("unexpected store url %s", cfg.Store.URL)
	}
	if cfg.Auth.TokenTTLMinutes != 30 {
		t.Errorf("expected 30, got %d", cfg.Auth.TokenTTLMinutes)
	}
	if !cfg.Auth.BootstrapAdmin {
		t.Error("expected bootstrap admin enabled")
	}
}

func TestLoadInvalidEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric ttl")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.Auth.SecretKey = "s" }, false},
		{"missing secret", func(c *Config) {}, true},
		{"rsa algorithm", func(c *Config) { c.Auth.SecretKey = "s"; c.Auth.Algorithm = "RS256" }, true},
		{"bad port", func(c *Config) { c.Auth.SecretKey = "s"; c.API.Port = 70000 }, true},
		{"empty store url", func(c *Config) { c.Auth.SecretKey = "s"; c.Store.URL = " " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocStore(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateDocStore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.DocStore.Path = ""
	if err := cfg.ValidateDocStore(); err == nil {
		t.Fatal("expected error for empty path")
	}
}
