package client

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// Results maps an item key (zone name, environment name or server FQDN)
// to whether its creation succeeded.
type Results map[string]bool

// Failed returns the number of unsuccessful items.
func (r Results) Failed() int {
	n := 0
	for _, ok := range r {
		if !ok {
			n++
		}
	}
	return n
}

// The batch helpers below run one request per item, in order. A failed
// item is recorded as false and does not stop the batch. The returned
// error aggregates every item failure and is nil when all succeeded.

// BatchCreateZones creates each zone in turn.
func (c *Client) BatchCreateZones(ctx context.Context, zones []inventory.Zone) (Results, error) {
	results := make(Results, len(zones))
	var errs *multierror.Error
	for _, z := range zones {
		err := c.CreateZone(ctx, z)
		results[z.Name] = err == nil
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("zone %s: %w", z.Name, err))
		}
	}
	return results, errs.ErrorOrNil()
}

// BatchCreateEnvironments creates each environment inside zone.
func (c *Client) BatchCreateEnvironments(ctx context.Context, zone string, envs []inventory.Environment) (Results, error) {
	results := make(Results, len(envs))
	var errs *multierror.Error
	for _, e := range envs {
		err := c.CreateEnvironment(ctx, zone, e)
		results[e.Name] = err == nil
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("environment %s/%s: %w", zone, e.Name, err))
		}
	}
	return results, errs.ErrorOrNil()
}

// BatchAddServers adds each server to zone/env.
func (c *Client) BatchAddServers(ctx context.Context, zone, env string, servers []inventory.Server) (Results, error) {
	results := make(Results, len(servers))
	var errs *multierror.Error
	for _, s := range servers {
		err := c.AddServer(ctx, zone, env, s)
		results[s.FQDN] = err == nil
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("server %s/%s/%s: %w", zone, env, s.FQDN, err))
		}
	}
	return results, errs.ErrorOrNil()
}
