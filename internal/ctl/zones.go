package ctl

import (
	"context"
	"flag"
	"fmt"
)

// ZonesCommand lists zone names.
type ZonesCommand struct {
	*Command
}

func (c *ZonesCommand) Synopsis() string {
	return "List zones"
}

func (c *ZonesCommand) Help() string {
	return `Usage: zoneinvctl zones [options]

  Prints one zone name per line.` + c.Flags().Help()
}

func (c *ZonesCommand) Flags() *FlagSet {
	f := NewFlagSet(flag.NewFlagSet("zones", flag.ContinueOnError))
	c.connectionFlags(f)
	return f
}

func (c *ZonesCommand) Run(args []string) int {
	if !c.parse(c.Flags(), args) {
		return 1
	}
	cl, err := c.client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	zones, err := cl.ListZones(context.Background())
	if err != nil {
		c.UI.Error(fmt.Sprintf("list zones: %v", err))
		return 1
	}
	for _, z := range zones {
		c.UI.Output(z.Name)
	}
	return 0
}

// CheckCommand prints the full tree with per-level counts.
type CheckCommand struct {
	*Command
}

func (c *CheckCommand) Synopsis() string {
	return "Print every zone, environment and server"
}

func (c *CheckCommand) Help() string {
	return `Usage: zoneinvctl check [options]

  Fetches each zone and prints its environments and servers, followed
  by totals.` + c.Flags().Help()
}

func (c *CheckCommand) Flags() *FlagSet {
	f := NewFlagSet(flag.NewFlagSet("check", flag.ContinueOnError))
	c.connectionFlags(f)
	return f
}

func (c *CheckCommand) Run(args []string) int {
	if !c.parse(c.Flags(), args) {
		return 1
	}
	cl, err := c.client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	ctx := context.Background()
	zones, err := cl.ListZones(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("list zones: %v", err))
		return 1
	}

	var envCount, serverCount int
	status := 0
	for _, listed := range zones {
		z, err := cl.GetZone(ctx, listed.Name)
		if err != nil {
			c.UI.Error(fmt.Sprintf("zone %s: %v", listed.Name, err))
			status = 1
			continue
		}
		c.UI.Output(fmt.Sprintf("zone %s: %d environment(s)", z.Name, len(z.Environments)))
		for _, env := range z.Environments {
			envCount++
			c.UI.Output(fmt.Sprintf("  environment %s: %d server(s)", env.Name, len(env.Servers)))
			for _, s := range env.Servers {
				serverCount++
				c.UI.Output(fmt.Sprintf("    %s ip=%s type=%s status=%s", s.FQDN, s.IP, s.ServerType, s.Status))
			}
		}
	}
	c.UI.Info(fmt.Sprintf("%d zone(s), %d environment(s), %d server(s)", len(zones), envCount, serverCount))
	return status
}

// ClearCommand deletes every zone.
type ClearCommand struct {
	*Command

	flagYes bool
}

func (c *ClearCommand) Synopsis() string {
	return "Delete all zones"
}

func (c *ClearCommand) Help() string {
	return `Usage: zoneinvctl clear -yes [options]

  Deletes every zone together with its environments and servers.` + c.Flags().Help()
}

func (c *ClearCommand) Flags() *FlagSet {
	f := NewFlagSet(flag.NewFlagSet("clear", flag.ContinueOnError))
	c.connectionFlags(f)
	f.BoolVar(&c.flagYes, "yes", false, "(Required) Confirm deletion of all data")
	return f
}

func (c *ClearCommand) Run(args []string) int {
	if !c.parse(c.Flags(), args) {
		return 1
	}
	if !c.flagYes {
		c.UI.Error("refusing to delete all zones without -yes")
		return 1
	}
	cl, err := c.client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	ctx := context.Background()
	zones, err := cl.ListZones(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("list zones: %v", err))
		return 1
	}
	if len(zones) == 0 {
		c.UI.Info("no zones to delete")
		return 0
	}

	failed := 0
	for _, z := range zones {
		if err := cl.DeleteZone(ctx, z.Name); err != nil {
			c.UI.Error(fmt.Sprintf("delete zone %s: %v", z.Name, err))
			failed++
			continue
		}
		c.UI.Output("deleted zone " + z.Name)
	}
	if failed > 0 {
		return 2
	}
	c.UI.Info(fmt.Sprintf("deleted %d zone(s)", len(zones)))
	return 0
}
