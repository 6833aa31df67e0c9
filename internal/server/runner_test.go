package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/config"
	"github.com/jroosing/zoneinv/internal/couch"
	"github.com/jroosing/zoneinv/internal/docstore/storetest"
	"github.com/jroosing/zoneinv/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForStore_RetriesUntilReady(t *testing.T) {
	p := &flakyPinger{failures: 2}

	err := WaitForStore(context.Background(), p, 10*time.Second, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestWaitForStore_GivesUp(t *testing.T) {
	p := &flakyPinger{failures: 1 << 30}

	start := time.Now()
	err := WaitForStore(context.Background(), p, 300*time.Millisecond, logging.Discard())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestWaitForStore_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForStore(ctx, &flakyPinger{failures: 1 << 30}, time.Minute, logging.Discard())
	assert.Error(t, err)
}

func testConfig(storeURL string) *config.Config {
	cfg := config.Default()
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 0
	cfg.Store.URL = storeURL
	cfg.Store.StartupWait = "1s"
	cfg.Auth.SecretKey = "runner-secret"
	cfg.Auth.BootstrapAdmin = true
	cfg.Auth.BootstrapPassword = "first-login"
	return cfg
}

func TestRunWithContext_PreparesStoreAndStops(t *testing.T) {
	store := storetest.Start(t)
	cfg := testConfig(store.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRunner(logging.Discard()).RunWithContext(ctx, cfg) }()

	cl, err := couch.NewClient(couch.Config{BaseURL: store.URL, Logger: logging.Discard()})
	require.NoError(t, err)
	users := auth.NewUsers(cl, cfg.Store.UsersDB)
	require.Eventually(t, func() bool {
		u, err := users.Get(context.Background(), "admin")
		return err == nil && u != nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunWithContext_UnreachableStore(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Store.StartupWait = "200ms"

	err := NewRunner(logging.Discard()).RunWithContext(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestRunDocStoreWithContext_Stops(t *testing.T) {
	cfg := config.Default()
	cfg.DocStore.Host = "127.0.0.1"
	cfg.DocStore.Port = 0
	cfg.DocStore.Path = filepath.Join(t.TempDir(), "docs.db")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRunner(logging.Discard()).RunDocStoreWithContext(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("document store did not stop")
	}
}

func TestRunDocStoreWithContext_BadPath(t *testing.T) {
	cfg := config.Default()
	cfg.DocStore.Path = filepath.Join(t.TempDir(), "missing", "dir", "docs.db")

	err := NewRunner(logging.Discard()).RunDocStoreWithContext(context.Background(), cfg)
	assert.Error(t, err)
}
