// Package ctl implements the zoneinvctl command line tool: bulk import and
// export of the zone tree plus a few maintenance commands.
package ctl

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jroosing/zoneinv/internal/client"
	"github.com/mitchellh/cli"
)

// Command carries what every subcommand needs.
type Command struct {
	Log *slog.Logger
	UI  cli.Ui

	// NewClient builds the API client; tests swap it out.
	NewClient func(client.Config) (*client.Client, error)

	flagURL      string
	flagUsername string
	flagPassword string
	flagTimeout  time.Duration
}

// FlagSet wraps flag.FlagSet with a help renderer for command usage text.
type FlagSet struct {
	*flag.FlagSet
}

func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults, indented for the Help() text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	out := f.Output()
	f.SetOutput(&buf)
	f.PrintDefaults()
	f.SetOutput(out)
	if buf.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n\n" + strings.TrimRight(buf.String(), "\n")
}

// connectionFlags adds the API connection flags shared by all commands.
// Unset flags fall back to API_URL, API_USERNAME and API_PASSWORD.
func (c *Command) connectionFlags(f *FlagSet) {
	f.StringVar(&c.flagURL, "url", "", "API base URL (env API_URL)")
	f.StringVar(&c.flagUsername, "username", "", "API username (env API_USERNAME)")
	f.StringVar(&c.flagPassword, "password", "", "API password (env API_PASSWORD)")
	f.DurationVar(&c.flagTimeout, "timeout", 30*time.Second, "Per-request timeout")
}

func (c *Command) client() (*client.Client, error) {
	cfg := client.ConfigFromEnv()
	if c.flagURL != "" {
		cfg.BaseURL = c.flagURL
	}
	if c.flagUsername != "" {
		cfg.Username = c.flagUsername
	}
	if c.flagPassword != "" {
		cfg.Password = c.flagPassword
	}
	cfg.Timeout = c.flagTimeout
	cfg.Logger = c.Log

	newClient := c.NewClient
	if newClient == nil {
		newClient = client.New
	}
	return newClient(cfg)
}

// parse parses args and reports failures through the UI.
func (c *Command) parse(f *FlagSet, args []string) bool {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return false
	}
	return true
}
