package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jroosing/zoneinv/internal/couch"
)

// ZonesDB is the default database holding zone documents.
const ZonesDB = "server_resources"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid request")
)

// Store is the document store surface the service uses. *couch.Client
// satisfies it.
type Store interface {
	Get(ctx context.Context, db, id string, out any) (bool, error)
	Put(ctx context.Context, db string, doc couch.Document) error
	DeleteRev(ctx context.Context, db, id, rev string) error
	ListAll(ctx context.Context, db string) ([]json.RawMessage, error)
}

// zoneDoc is a zone as stored. Metadata stays here and never reaches
// the public Zone type.
type zoneDoc struct {
	couch.Meta
	Zone
}

// ZoneID returns the document key for a zone name.
func ZoneID(name string) string {
	return "zone:" + name
}

// Service implements zone, environment and server CRUD. Every nested
// change rewrites the whole zone document with the revision it was read
// at, so a concurrent writer surfaces as ErrConflict instead of a lost
// update.
type Service struct {
	store  Store
	db     string
	logger *slog.Logger
}

// NewService returns a Service over db (ZonesDB when empty).
func NewService(store Store, db string, logger *slog.Logger) *Service {
	if db == "" {
		db = ZonesDB
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, db: db, logger: logger}
}

// ListZones returns every zone document with its nested data.
func (s *Service) ListZones(ctx context.Context) ([]Zone, error) {
	raw, err := s.store.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	zones := make([]Zone, 0, len(raw))
	for _, r := range raw {
		var z Zone
		if err := json.Unmarshal(r, &z); err != nil {
			s.logger.Warn("skipping undecodable document", "err", err)
			continue
		}
		if z.Type != ZoneType {
			continue
		}
		z.Normalize()
		zones = append(zones, z)
	}
	return zones, nil
}

// CreateZone stores a new zone and returns its document id.
func (s *Service) CreateZone(ctx context.Context, z Zone) (string, error) {
	z.Normalize()
	if err := validate(z); err != nil {
		return "", err
	}
	doc := &zoneDoc{Meta: couch.Meta{ID: ZoneID(z.Name)}, Zone: z}
	if err := s.put(ctx, doc); err != nil {
		if errors.Is(err, ErrConflict) {
			return "", fmt.Errorf("%w: zone %s already exists", ErrConflict, z.Name)
		}
		return "", err
	}
	s.logger.Info("zone created", "zone", z.Name)
	return doc.ID, nil
}

// GetZone returns the zone and its current revision.
func (s *Service) GetZone(ctx context.Context, name string) (Zone, string, error) {
	doc, err := s.load(ctx, name, "")
	if err != nil {
		return Zone{}, "", err
	}
	return doc.Zone, doc.Rev, nil
}

// UpdateZone replaces the zone's fields. The name cannot change; an empty
// name in z means "keep". expectedRev, when set, must match the stored one.
func (s *Service) UpdateZone(ctx context.Context, name, expectedRev string, z Zone) error {
	if z.Name == "" {
		z.Name = name
	}
	if z.Name != name {
		return fmt.Errorf("%w: zone name %q does not match %q", ErrInvalid, z.Name, name)
	}
	z.Normalize()
	if err := validate(z); err != nil {
		return err
	}
	doc, err := s.load(ctx, name, expectedRev)
	if err != nil {
		return err
	}
	doc.Zone = z
	return s.put(ctx, doc)
}

// DeleteZone removes the zone document.
func (s *Service) DeleteZone(ctx context.Context, name, expectedRev string) error {
	doc, err := s.load(ctx, name, expectedRev)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRev(ctx, s.db, doc.ID, doc.Rev); err != nil {
		return translate(err)
	}
	s.logger.Info("zone deleted", "zone", name)
	return nil
}

// CreateEnvironment appends env to the zone.
func (s *Service) CreateEnvironment(ctx context.Context, zone, expectedRev string, env Environment) error {
	env.Normalize()
	if err := validate(env); err != nil {
		return err
	}
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		if z.EnvironmentIndex(env.Name) >= 0 {
			return fmt.Errorf("%w: environment %s already exists in zone %s", ErrConflict, env.Name, zone)
		}
		z.Environments = append(z.Environments, env)
		return nil
	})
}

// UpdateEnvironment replaces the named environment, server list included.
// An empty env.Name keeps the current name.
func (s *Service) UpdateEnvironment(ctx context.Context, zone, name, expectedRev string, env Environment) error {
	if env.Name == "" {
		env.Name = name
	}
	env.Normalize()
	if err := validate(env); err != nil {
		return err
	}
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		i := z.EnvironmentIndex(name)
		if i < 0 {
			return envNotFound(zone, name)
		}
		if env.Name != name && z.EnvironmentIndex(env.Name) >= 0 {
			return fmt.Errorf("%w: environment %s already exists in zone %s", ErrConflict, env.Name, zone)
		}
		z.Environments[i] = env
		return nil
	})
}

// DeleteEnvironment removes the named environment.
func (s *Service) DeleteEnvironment(ctx context.Context, zone, name, expectedRev string) error {
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		i := z.EnvironmentIndex(name)
		if i < 0 {
			return envNotFound(zone, name)
		}
		z.Environments = append(z.Environments[:i], z.Environments[i+1:]...)
		return nil
	})
}

// AddServer appends srv to the environment.
func (s *Service) AddServer(ctx context.Context, zone, env, expectedRev string, srv Server) error {
	if err := validate(srv); err != nil {
		return err
	}
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		e, err := environment(z, zone, env)
		if err != nil {
			return err
		}
		if e.ServerIndex(srv.FQDN) >= 0 {
			return fmt.Errorf("%w: server %s already exists in environment %s", ErrConflict, srv.FQDN, env)
		}
		e.Servers = append(e.Servers, srv)
		return nil
	})
}

// UpdateServer replaces the server identified by fqdn. An empty srv.FQDN
// keeps the current one.
func (s *Service) UpdateServer(ctx context.Context, zone, env, fqdn, expectedRev string, srv Server) error {
	if srv.FQDN == "" {
		srv.FQDN = fqdn
	}
	if err := validate(srv); err != nil {
		return err
	}
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		e, err := environment(z, zone, env)
		if err != nil {
			return err
		}
		i := e.ServerIndex(fqdn)
		if i < 0 {
			return serverNotFound(env, fqdn)
		}
		if srv.FQDN != fqdn && e.ServerIndex(srv.FQDN) >= 0 {
			return fmt.Errorf("%w: server %s already exists in environment %s", ErrConflict, srv.FQDN, env)
		}
		e.Servers[i] = srv
		return nil
	})
}

// DeleteServer removes the server identified by fqdn.
func (s *Service) DeleteServer(ctx context.Context, zone, env, fqdn, expectedRev string) error {
	return s.mutate(ctx, zone, expectedRev, func(z *Zone) error {
		e, err := environment(z, zone, env)
		if err != nil {
			return err
		}
		i := e.ServerIndex(fqdn)
		if i < 0 {
			return serverNotFound(env, fqdn)
		}
		e.Servers = append(e.Servers[:i], e.Servers[i+1:]...)
		return nil
	})
}

// mutate loads the zone, applies fn and writes it back at the revision
// it was read at.
func (s *Service) mutate(ctx context.Context, zone, expectedRev string, fn func(*Zone) error) error {
	doc, err := s.load(ctx, zone, expectedRev)
	if err != nil {
		return err
	}
	if err := fn(&doc.Zone); err != nil {
		return err
	}
	return s.put(ctx, doc)
}

func (s *Service) load(ctx context.Context, name, expectedRev string) (*zoneDoc, error) {
	var doc zoneDoc
	found, err := s.store.Get(ctx, s.db, ZoneID(name), &doc)
	if err != nil {
		return nil, err
	}
	if !found || doc.Type != ZoneType {
		return nil, fmt.Errorf("%w: zone %s", ErrNotFound, name)
	}
	if expectedRev != "" && expectedRev != doc.Rev {
		return nil, fmt.Errorf("%w: zone %s is at revision %s, not %s", ErrConflict, name, doc.Rev, expectedRev)
	}
	doc.Normalize()
	return &doc, nil
}

func (s *Service) put(ctx context.Context, doc *zoneDoc) error {
	return translate(s.store.Put(ctx, s.db, doc))
}

// translate maps a store revision conflict to ErrConflict and keeps every
// other error as is.
func translate(err error) error {
	if err != nil && errors.Is(err, couch.ErrConflict) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

type validatable interface {
	Validate() error
}

func validate(v validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func environment(z *Zone, zone, name string) (*Environment, error) {
	i := z.EnvironmentIndex(name)
	if i < 0 {
		return nil, envNotFound(zone, name)
	}
	return &z.Environments[i], nil
}

func envNotFound(zone, env string) error {
	return fmt.Errorf("%w: environment %s in zone %s", ErrNotFound, env, zone)
}

func serverNotFound(env, fqdn string) error {
	return fmt.Errorf("%w: server %s in environment %s", ErrNotFound, fqdn, env)
}
