// Package handlers implements the REST API endpoint handlers for zoneinv.
//
// REST API Endpoints:
//
// Authentication:
//   - POST /token - Exchange form-encoded username/password for a bearer token
//   - GET /users/me - Profile of the authenticated user
//
// Zones:
//   - GET /zones/ - List all zones with nested environments and servers
//   - POST /zones/ - Create a zone
//   - GET /zones/:zone - Get one zone (revision in the ETag header)
//   - PUT /zones/:zone - Replace a zone's environments
//   - DELETE /zones/:zone - Delete a zone
//
// Environments:
//   - POST /zones/:zone/environments/ - Add an environment
//   - PUT /zones/:zone/environments/:env - Replace an environment
//   - DELETE /zones/:zone/environments/:env - Remove an environment
//
// Servers:
//   - POST /zones/:zone/environments/:env/servers/ - Add a server
//   - PUT /zones/:zone/environments/:env/servers/:fqdn - Replace a server
//   - DELETE /zones/:zone/environments/:env/servers/:fqdn - Remove a server
//
// System:
//   - GET /health - Liveness and document store reachability
//   - GET /stats - Process statistics
//
// Every endpoint except /token and /health requires `Authorization: Bearer <token>`.
// Mutating zone endpoints accept an optional If-Match header carrying the
// revision from a previous GET; a stale revision yields 409.
//
// @title zoneinv API
// @version 1.0
// @description Zone, environment and server inventory.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8000
// @BasePath /
//
// @securityDefinitions.oauth2.password OAuth2Password
// @tokenUrl /token
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// Authenticator issues tokens. *auth.Service satisfies it.
type Authenticator interface {
	IssueToken(ctx context.Context, username, password string) (string, error)
}

// Pinger reports document store reachability. *couch.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	inventory *inventory.Service
	auth      Authenticator
	store     Pinger
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler. store may be nil, in which case /health does
// not probe the document store.
func New(cfg *config.Config, inv *inventory.Service, authn Authenticator, store Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		inventory: inv,
		auth:      authn,
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}
