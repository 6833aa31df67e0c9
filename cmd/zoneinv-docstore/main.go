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
		dbPath     = flag.String("db", "", "SQLite file holding the documents")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.DocStore.Host = *host
	}
	if *port != 0 {
		cfg.DocStore.Port = *port
	}
	if *dbPath != "" {
		cfg.DocStore.Path = *dbPath
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.ValidateDocStore(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.FromConfig(cfg.Logging))
	if err := server.NewRunner(logger).RunDocStore(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "document store exited with error: %v\n", err)
		os.Exit(1)
	}
}
