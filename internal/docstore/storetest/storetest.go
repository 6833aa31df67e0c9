// Package storetest starts a throwaway document store for tests.
package storetest

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jroosing/zoneinv/internal/database"
	"github.com/jroosing/zoneinv/internal/docstore"
	"github.com/jroosing/zoneinv/internal/logging"
)

// Start runs a docstore server over a temporary SQLite file and returns it.
// Both are torn down when the test finishes.
func Start(t testing.TB) *httptest.Server {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("open document database: %v", err)
	}
	srv := httptest.NewServer(docstore.New(nil, db, logging.Discard()).Engine())
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close()
	})
	return srv
}
