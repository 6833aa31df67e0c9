package ctl

import (
	"context"
	"flag"
	"fmt"
	"sort"
)

// ImportCommand loads a JSON snapshot into the inventory.
type ImportCommand struct {
	*Command
}

func (c *ImportCommand) Synopsis() string {
	return "Import zones, environments and servers from a JSON file"
}

func (c *ImportCommand) Help() string {
	return `Usage: zoneinvctl import [options] <file>

  Creates every zone in the file, then its environments, then their
  servers. Items that fail are reported and skipped; the rest are still
  imported. The exit code is 2 when any item failed.` + c.Flags().Help()
}

func (c *ImportCommand) Flags() *FlagSet {
	f := NewFlagSet(flag.NewFlagSet("import", flag.ContinueOnError))
	c.connectionFlags(f)
	return f
}

func (c *ImportCommand) Run(args []string) int {
	flags := c.Flags()
	if !c.parse(flags, args) {
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("expected exactly one file argument")
		return 1
	}
	path := flags.Arg(0)

	cl, err := c.client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	res, err := cl.ImportFromJSON(context.Background(), path)
	if res == nil {
		c.UI.Error(fmt.Sprintf("import failed: %v", err))
		return 1
	}

	for _, zone := range sortedKeys(res.Zones) {
		c.UI.Output(fmt.Sprintf("zone %s: %s", zone, outcome(res.Zones[zone])))
		envs := res.Environments[zone]
		for _, env := range sortedKeys(envs) {
			c.UI.Output(fmt.Sprintf("  environment %s: %s", env, outcome(envs[env])))
			servers := res.Servers[zone+"/"+env]
			for _, fqdn := range sortedKeys(servers) {
				c.UI.Output(fmt.Sprintf("    server %s: %s", fqdn, outcome(servers[fqdn])))
			}
		}
	}
	if err != nil {
		c.UI.Warn(err.Error())
		c.UI.Error(fmt.Sprintf("%d item(s) failed", res.Failed()))
		return 2
	}
	c.UI.Info("import complete")
	return 0
}

// ExportCommand writes the whole inventory to a JSON file.
type ExportCommand struct {
	*Command
}

func (c *ExportCommand) Synopsis() string {
	return "Export all zones to a JSON file"
}

func (c *ExportCommand) Help() string {
	return `Usage: zoneinvctl export [options] <file>

  Fetches every zone with its environments and servers and writes them
  as indented JSON in the format accepted by import.` + c.Flags().Help()
}

func (c *ExportCommand) Flags() *FlagSet {
	f := NewFlagSet(flag.NewFlagSet("export", flag.ContinueOnError))
	c.connectionFlags(f)
	return f
}

func (c *ExportCommand) Run(args []string) int {
	flags := c.Flags()
	if !c.parse(flags, args) {
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("expected exactly one file argument")
		return 1
	}

	cl, err := c.client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	n, err := cl.ExportToJSON(context.Background(), flags.Arg(0))
	if err != nil {
		c.UI.Error(fmt.Sprintf("export failed: %v", err))
		return 1
	}
	c.UI.Info(fmt.Sprintf("exported %d zone(s) to %s", n, flags.Arg(0)))
	return 0
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAILED"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
