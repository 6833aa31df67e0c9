package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/jroosing/zoneinv/internal/inventory"
	"github.com/spf13/afero"
)

// Snapshot is the on-disk format of import and export.
type Snapshot struct {
	Zones []inventory.Zone `json:"zones"`
}

// ImportResult records the outcome of every item of an import.
// Environments are keyed by zone, servers by "zone/env".
type ImportResult struct {
	Zones        Results            `json:"zones"`
	Environments map[string]Results `json:"environments"`
	Servers      map[string]Results `json:"servers"`
}

// Failed returns the number of unsuccessful items across all levels.
func (r *ImportResult) Failed() int {
	n := r.Zones.Failed()
	for _, res := range r.Environments {
		n += res.Failed()
	}
	for _, res := range r.Servers {
		n += res.Failed()
	}
	return n
}

// ReadSnapshot loads and decodes a snapshot file.
func (c *Client) ReadSnapshot(path string) (*Snapshot, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &snap, nil
}

// ImportFromJSON replays a snapshot file through the create operations,
// depth first: each zone is created empty, then its environments are
// created empty, then their servers are added.
//
// A read or parse failure aborts and returns a nil result. Individual
// creation failures are recorded in the result and aggregated into the
// returned error; the import carries on past them.
func (c *Client) ImportFromJSON(ctx context.Context, path string) (*ImportResult, error) {
	snap, err := c.ReadSnapshot(path)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{
		Zones:        Results{},
		Environments: map[string]Results{},
		Servers:      map[string]Results{},
	}
	var errs *multierror.Error
	for _, z := range snap.Zones {
		shell := inventory.Zone{Name: z.Name, Type: z.Type, Environments: []inventory.Environment{}}
		err := c.CreateZone(ctx, shell)
		res.Zones[z.Name] = err == nil
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("zone %s: %w", z.Name, err))
		}
		if len(z.Environments) == 0 {
			continue
		}

		envResults := Results{}
		res.Environments[z.Name] = envResults
		for _, e := range z.Environments {
			err := c.CreateEnvironment(ctx, z.Name, inventory.Environment{Name: e.Name, Servers: []inventory.Server{}})
			envResults[e.Name] = err == nil
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("environment %s/%s: %w", z.Name, e.Name, err))
			}
			if len(e.Servers) == 0 {
				continue
			}

			srvResults, err := c.BatchAddServers(ctx, z.Name, e.Name, e.Servers)
			res.Servers[z.Name+"/"+e.Name] = srvResults
			if err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	c.logger.Info("import finished", "path", path, "zones", len(snap.Zones), "failed", res.Failed())
	return res, errs.ErrorOrNil()
}

// ExportToJSON writes every zone, fully populated, to path as indented
// JSON and returns the number of zones written. Each zone is fetched
// individually so nested environments and servers are never missing.
func (c *Client) ExportToJSON(ctx context.Context, path string) (int, error) {
	listed, err := c.ListZones(ctx)
	if err != nil {
		return 0, err
	}
	snap := Snapshot{Zones: make([]inventory.Zone, 0, len(listed))}
	for _, z := range listed {
		full, err := c.GetZone(ctx, z.Name)
		if err != nil {
			return 0, fmt.Errorf("export zone %s: %w", z.Name, err)
		}
		snap.Zones = append(snap.Zones, *full)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := afero.WriteFile(c.fs, path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	c.logger.Info("export finished", "path", path, "zones", len(snap.Zones))
	return len(snap.Zones), nil
}
