package ctl

import (
	"bufio"
	"io"
	"os"

	"github.com/jroosing/zoneinv/internal/logging"
	"github.com/mitchellh/cli"
)

// Version is reported by -version.
var Version = "dev"

// Commands builds the command table around base.
func Commands(base *Command) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"import": func() (cli.Command, error) { return &ImportCommand{Command: base}, nil },
		"export": func() (cli.Command, error) { return &ExportCommand{Command: base}, nil },
		"check":  func() (cli.Command, error) { return &CheckCommand{Command: base}, nil },
		"clear":  func() (cli.Command, error) { return &ClearCommand{Command: base}, nil },
		"zones":  func() (cli.Command, error) { return &ZonesCommand{Command: base}, nil },
	}
}

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cliName := "zoneinvctl"
	if len(args) > 0 {
		cliName = args[0]
		args = args[1:]
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(stdin),
		Writer:      stdout,
		ErrorWriter: stderr,
	}
	base := &Command{
		Log: logging.Configure(logging.Config{
			Level:  envLevel(),
			Output: stderr,
		}),
		UI: ui,
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args,
		Version:  Version,
		Commands: Commands(base),

		HelpWriter:  stdout,
		ErrorWriter: stderr,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}

// envLevel reads ZONEINV_LOG_LEVEL; the CLI is quiet by default.
func envLevel() string {
	if lvl := os.Getenv("ZONEINV_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "WARN"
}
