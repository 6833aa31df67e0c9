package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// apiPrefixes are never answered with the SPA index page.
var apiPrefixes = []string{"/zones", "/users", "/token", "/health", "/stats", "/swagger"}

// MountStatic serves a built frontend from dir. Unknown non-API paths fall
// back to index.html so client-side routing works.
func MountStatic(r *gin.Engine, dir string, logger *slog.Logger) {
	if _, err := os.Stat(dir); err != nil {
		logger.Warn("static directory unavailable, frontend not served", "dir", dir, "err", err)
		return
	}
	r.Use(static.Serve("/", static.LocalFile(dir, false)))

	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if _, err := os.Stat(index); err != nil {
			logger.Error("failed to open index.html", "error", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(index)
	})
}

func isAPIPath(path string) bool {
	for _, p := range apiPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
