// Package apitest runs a complete zoneinv API against a throwaway
// document store, for tests of API consumers.
package apitest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jroosing/zoneinv/internal/api"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/couch"
	"github.com/jroosing/zoneinv/internal/docstore/storetest"
	"github.com/jroosing/zoneinv/internal/inventory"
	"github.com/jroosing/zoneinv/internal/logging"
)

// Start serves the API with one active user and returns the server.
func Start(t testing.TB, username, password string) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	store, err := couch.NewClient(couch.Config{BaseURL: storetest.Start(t).URL, Timeout: 5 * time.Second, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("store client: %v", err)
	}
	for _, db := range []string{inventory.ZonesDB, auth.UsersDB} {
		if err := store.EnsureDatabase(ctx, db); err != nil {
			t.Fatalf("create %s: %v", db, err)
		}
	}

	cfg := config.Default()
	cfg.Auth.SecretKey = "apitest-secret"
	users := auth.NewUsers(store, "")
	authSvc, err := auth.NewService(cfg.Auth, users, logging.Discard())
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := users.Create(ctx, auth.StoredUser{User: auth.User{Username: username}, HashedPassword: hash}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	srv := api.New(cfg, api.Deps{
		Inventory: inventory.NewService(store, "", logging.Discard()),
		Auth:      authSvc,
		Store:     store,
	}, logging.Discard())
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return ts
}
