// Package config provides configuration loading and validation for zoneinv.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. The resulting Config is treated as immutable once
// the process has started and is passed explicitly to every component.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable consulted when no -config flag is given.
const EnvConfigPath = "ZONEINV_CONFIG"

// Default returns a Config populated with defaults. The signing secret has
// no default.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			URL:         "http://localhost:5984",
			Timeout:     "10s",
			ZonesDB:     "server_resources",
			UsersDB:     "users",
			StartupWait: "30s",
		},
		Auth: AuthConfig{
			Algorithm:         "HS256",
			TokenTTLMinutes:   15,
			BootstrapUsername: "admin",
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			ExtraFields:      map[string]string{},
		},
		DocStore: DocStoreConfig{
			Host: "0.0.0.0",
			Port: 5984,
			Path: "zoneinv-docs.db",
		},
	}
}

// ResolveConfigPath returns the flag value if set, else $ZONEINV_CONFIG.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and the process environment. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (cfg *Config) applyEnv(lookup lookupFunc) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	num := func(dst *int, keys ...string) error {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return fmt.Errorf("%s: %w", k, err)
				}
				*dst = n
				return nil
			}
		}
		return nil
	}

	// Names used by the original deployment come first.
	str(&cfg.Store.URL, "POUCHDB_URL", "ZONEINV_STORE_URL")
	str(&cfg.Auth.SecretKey, "SECRET_KEY", "ZONEINV_SECRET_KEY")
	str(&cfg.Auth.Algorithm, "ALGORITHM", "ZONEINV_ALGORITHM")
	if err := num(&cfg.Auth.TokenTTLMinutes, "ACCESS_TOKEN_EXPIRE_MINUTES", "ZONEINV_TOKEN_TTL_MINUTES"); err != nil {
		return err
	}
	str(&cfg.Auth.BootstrapPassword, "ZONEINV_BOOTSTRAP_PASSWORD")
	if v, ok := lookup("ZONEINV_BOOTSTRAP_ADMIN"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ZONEINV_BOOTSTRAP_ADMIN: %w", err)
		}
		cfg.Auth.BootstrapAdmin = b
	}
	str(&cfg.API.Host, "ZONEINV_HOST")
	if err := num(&cfg.API.Port, "ZONEINV_PORT"); err != nil {
		return err
	}
	str(&cfg.API.StaticDir, "ZONEINV_STATIC_DIR")
	str(&cfg.Logging.Level, "ZONEINV_LOG_LEVEL")
	str(&cfg.DocStore.Path, "ZONEINV_DOCSTORE_PATH", "DB_PATH")
	if err := num(&cfg.DocStore.Port, "ZONEINV_DOCSTORE_PORT"); err != nil {
		return err
	}
	return nil
}

// Validate validates and normalizes the configuration needed by the API
// server. It fails when no signing secret is configured.
func (cfg *Config) Validate() error {
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return errors.New("api.port must be 1..65535")
	}
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}

	if strings.TrimSpace(cfg.Store.URL) == "" {
		return errors.New("store.url is required")
	}
	cfg.Store.URL = strings.TrimRight(cfg.Store.URL, "/")
	if cfg.Store.ZonesDB == "" {
		cfg.Store.ZonesDB = "server_resources"
	}
	if cfg.Store.UsersDB == "" {
		cfg.Store.UsersDB = "users"
	}

	if cfg.Auth.SecretKey == "" {
		return errors.New("auth.secret_key is required (set SECRET_KEY)")
	}
	cfg.Auth.Algorithm = strings.ToUpper(strings.TrimSpace(cfg.Auth.Algorithm))
	if cfg.Auth.Algorithm == "" {
		cfg.Auth.Algorithm = "HS256"
	}
	switch cfg.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("auth.algorithm %q is not supported (use HS256, HS384 or HS512)", cfg.Auth.Algorithm)
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 15
	}
	if cfg.Auth.BootstrapUsername == "" {
		cfg.Auth.BootstrapUsername = "admin"
	}

	cfg.normalizeLogging()
	return nil
}

// ValidateDocStore validates the settings used by the document store server.
func (cfg *Config) ValidateDocStore() error {
	if cfg.DocStore.Port <= 0 || cfg.DocStore.Port > 65535 {
		return errors.New("docstore.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.DocStore.Path) == "" {
		return errors.New("docstore.path is required")
	}
	if cfg.DocStore.Host == "" {
		cfg.DocStore.Host = "0.0.0.0"
	}
	cfg.normalizeLogging()
	return nil
}

func (cfg *Config) normalizeLogging() {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}
}
