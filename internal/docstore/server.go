// Package docstore serves a CouchDB-compatible subset of the document API
// on top of the SQLite storage in internal/database.
//
// Supported endpoints:
//   - GET    /                         - Welcome banner
//   - GET    /_all_dbs                 - List databases
//   - PUT    /{db}                     - Create database (412 if it exists)
//   - GET    /{db}                     - Database info
//   - DELETE /{db}                     - Drop database
//   - POST   /{db}                     - Create document with generated id
//   - GET    /{db}/_all_docs           - List documents (?include_docs=true)
//   - GET    /{db}/{id}                - Fetch document with _id/_rev
//   - PUT    /{db}/{id}                - Create or update (requires current _rev)
//   - DELETE /{db}/{id}?rev=           - Delete at revision
//
// It is the zoneinv replacement for running a separate PouchDB server and is
// intended for development and small single-node deployments.
package docstore

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/middleware"
	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/database"
)

// Version is reported in the welcome banner.
const Version = "3.3.0-zoneinv"

// Server is the document store HTTP server.
type Server struct {
	db         *database.DB
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the server. cfg supplies the listen address.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Server {
	if db == nil {
		panic("docstore.New: db is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))

	s := &Server{db: db, logger: logger, engine: engine}
	s.registerRoutes(engine)

	addr := ""
	if cfg != nil {
		addr = net.JoinHostPort(cfg.DocStore.Host, strconv.Itoa(cfg.DocStore.Port))
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.welcome)

	r.PUT("/:db", s.createDatabase)
	r.GET("/:db", s.databaseInfo)
	r.DELETE("/:db", s.deleteDatabase)
	r.POST("/:db", s.postDocument)

	r.GET("/:db/:docid", s.getDocument)
	r.PUT("/:db/:docid", s.putDocument)
	r.DELETE("/:db/:docid", s.deleteDocument)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Engine exposes the router, mainly for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
