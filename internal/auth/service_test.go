package auth_test

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
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

func newUsers(t *testing.T) *auth.Users {
	t.Helper()
	srv := storetest.Start(t)
	c, err := couch.NewClient(couch.Config{BaseURL: srv.URL, Timeout: 5 * time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	require.NoError(t, c.EnsureDatabase(context.Background(), auth.UsersDB))
	return auth.NewUsers(c, "")
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{SecretKey: "test-secret", Algorithm: "HS256", TokenTTLMinutes: 15}
}

func addUser(t *testing.T, users *auth.Users, username, password string, disabled bool) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), auth.StoredUser{
		User:           auth.User{Username: username, Email: username + "@example.com", Disabled: disabled},
		HashedPassword: hash,
	}))
}

func TestIssueAndResolveToken(t *testing.T) {
	users := newUsers(t)
	addUser(t, users, "alice", "pw", false)
	svc, err := auth.NewService(testAuthConfig(), users, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	tok, err := svc.IssueToken(ctx, "alice", "pw")
	require.NoError(t, err)

	user, err := svc.ResolveToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestIssueToken_InvalidCredentials(t *testing.T) {
	users := newUsers(t)
	addUser(t, users, "alice", "pw", false)
	svc, err := auth.NewService(testAuthConfig(), users, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.IssueToken(ctx, "alice", "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.IssueToken(ctx, "bob", "pw")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestResolveToken_Garbage(t *testing.T) {
	svc, err := auth.NewService(testAuthConfig(), newUsers(t), logging.Discard())
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestResolveToken_UserVanished(t *testing.T) {
	users := newUsers(t)
	addUser(t, users, "alice", "pw", false)
	svc, err := auth.NewService(testAuthConfig(), users, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()
	tok, err := svc.IssueToken(ctx, "alice", "pw")
	require.NoError(t, err)

	// A service with the same secret but an empty user base.
	other, err := auth.NewService(testAuthConfig(), newUsers(t), logging.Discard())
	require.NoError(t, err)
	_, err = other.ResolveToken(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRequireActiveUser(t *testing.T) {
	u, err := auth.RequireActiveUser(&auth.User{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = auth.RequireActiveUser(&auth.User{Username: "bob", Disabled: true})
	assert.ErrorIs(t, err, auth.ErrUserDisabled)
}

func TestNewService_BadConfig(t *testing.T) {
	_, err := auth.NewService(config.AuthConfig{}, nil, nil)
	assert.Error(t, err)
}

func TestCreateUser_Duplicate(t *testing.T) {
	users := newUsers(t)
	addUser(t, users, "alice", "pw", false)

	err := users.Create(context.Background(), auth.StoredUser{User: auth.User{Username: "alice"}})
	assert.ErrorIs(t, err, couch.ErrConflict)
}

func TestCreateUser_Validates(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	assert.Error(t, users.Create(ctx, auth.StoredUser{User: auth.User{Username: "bob", Email: "not-an-email"}}))
	assert.Error(t, users.Create(ctx, auth.StoredUser{User: auth.User{Email: "bob@example.com"}}))

	u, err := users.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestBootstrap_Disabled(t *testing.T) {
	users := newUsers(t)
	svc, err := auth.NewService(testAuthConfig(), users, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, svc.Bootstrap(context.Background()))

	u, err := users.Get(context.Background(), "admin")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestBootstrap_ConfiguredPassword(t *testing.T) {
	users := newUsers(t)
	cfg := testAuthConfig()
	cfg.BootstrapAdmin = true
	cfg.BootstrapUsername = "root"
	cfg.BootstrapPassword = "changeme"
	svc, err := auth.NewService(cfg, users, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))
	// Second run keeps the existing account.
	require.NoError(t, svc.Bootstrap(ctx))

	_, err = svc.IssueToken(ctx, "root", "changeme")
	assert.NoError(t, err)
}

func TestBootstrap_GeneratedPasswordStaysOutOfLogs(t *testing.T) {
	users := newUsers(t)
	cfg := testAuthConfig()
	cfg.BootstrapAdmin = true
	var logs, notice bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	svc, err := auth.NewService(cfg, users, logger)
	require.NoError(t, err)
	svc.SetNoticeWriter(&notice)
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))

	m := regexp.MustCompile(`password: (\S+)`).FindStringSubmatch(notice.String())
	require.Len(t, m, 2)
	assert.NotEqual(t, "admin", m[1])
	assert.NotContains(t, logs.String(), m[1])
	assert.Contains(t, logs.String(), "generated password")
	_, err = svc.IssueToken(ctx, "admin", m[1])
	assert.NoError(t, err)

	// An existing admin is left alone and nothing is printed again.
	notice.Reset()
	require.NoError(t, svc.Bootstrap(ctx))
	assert.Empty(t, notice.String())
}
