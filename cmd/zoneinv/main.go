package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/logging"
	"github.com/jroosing/zoneinv/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set ZONEINV_CONFIG)")
		host       = flag.String("host", "", "Override bind host")
		port       = flag.Int("port", 0, "Override bind port")
		storeURL   = flag.String("store-url", "", "Override document store URL")
		staticDir  = flag.String("static-dir", "", "Serve a built frontend from this directory")
		bootstrap  = flag.Bool("bootstrap-admin", false, "Create the admin user if it does not exist")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *storeURL != "" {
		cfg.Store.URL = *storeURL
	}
	if *staticDir != "" {
		cfg.API.StaticDir = *staticDir
	}
	if *bootstrap {
		cfg.Auth.BootstrapAdmin = true
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.FromConfig(cfg.Logging))
	logger.Info("zoneinv starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"store", cfg.Store.URL,
		"token_ttl", cfg.Auth.TokenTTL().String(),
	)

	runner := server.NewRunner(logger)
	if err := runner.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
