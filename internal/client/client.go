// Package client is a typed HTTP client for the zoneinv REST API.
//
// Every resource operation of the API has a method here. On top of those
// it offers sequential batch helpers and JSON import/export of the whole
// zone tree (see batch.go and transfer.go).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/inventory"
	"github.com/spf13/afero"
)

// Defaults used by ConfigFromEnv.
const (
	DefaultURL      = "http://localhost:8000"
	DefaultUsername = "admin"
	DefaultPassword = "admin"
)

// ErrNotLoggedIn is returned by Token before a successful Login.
var ErrNotLoggedIn = errors.New("client is not logged in")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 if there is none.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Config holds client settings.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// Timeout bounds every HTTP round trip (default: 30s)
	Timeout time.Duration
	// LoginRetries is how often a login is retried after a network
	// failure (default: 3). Negative disables retries.
	LoginRetries int
	// Fs is used by import and export (default: the OS filesystem)
	Fs     afero.Fs
	Logger *slog.Logger
}

// ConfigFromEnv reads API_URL, API_USERNAME and API_PASSWORD.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:  envOr("API_URL", DefaultURL),
		Username: envOr("API_USERNAME", DefaultUsername),
		Password: envOr("API_PASSWORD", DefaultPassword),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client talks to the zoneinv API. It is not safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	retries    int
	httpClient *http.Client
	fs         afero.Fs
	logger     *slog.Logger

	token string
}

// New creates a client. No request is made until the first call.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("client: invalid BaseURL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.LoginRetries
	if retries == 0 {
		retries = 3
	}
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		retries:    retries,
		httpClient: &http.Client{Timeout: timeout},
		fs:         fs,
		logger:     logger,
	}, nil
}

// Login exchanges the configured credentials for a bearer token.
// Network failures are retried with exponential backoff; a rejection by
// the API is returned immediately.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{"username": {c.username}, "password": {c.password}}

	var token string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(apiError(http.MethodPost, "/token", resp.StatusCode, body))
		}
		var out struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
			return backoff.Permanent(fmt.Errorf("malformed token response: %s", body))
		}
		token = out.AccessToken
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("login failed, retrying", "url", c.baseURL, "wait", wait, "err", err)
	}

	if err := backoff.RetryNotify(op, c.loginBackOff(ctx), notify); err != nil {
		c.token = ""
		return fmt.Errorf("login as %s: %w", c.username, err)
	}
	c.token = token
	c.logger.Debug("logged in", "user", c.username)
	return nil
}

func (c *Client) loginBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxElapsedTime = 30 * time.Second
	if c.retries < 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.retries)), ctx)
}

// Token returns the current bearer token.
func (c *Client) Token() (string, error) {
	if c.token == "" {
		return "", ErrNotLoggedIn
	}
	return c.token, nil
}

// Me returns the profile of the logged-in user.
func (c *Client) Me(ctx context.Context) (*auth.User, error) {
	var u auth.User
	if err := c.call(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListZones returns all zones.
func (c *Client) ListZones(ctx context.Context) ([]inventory.Zone, error) {
	var zones []inventory.Zone
	if err := c.call(ctx, http.MethodGet, "/zones/", nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// GetZone fetches one zone with its environments and servers.
func (c *Client) GetZone(ctx context.Context, name string) (*inventory.Zone, error) {
	var z inventory.Zone
	if err := c.call(ctx, http.MethodGet, zonePath(name), nil, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

func (c *Client) CreateZone(ctx context.Context, z inventory.Zone) error {
	return c.call(ctx, http.MethodPost, "/zones/", z, nil)
}

func (c *Client) UpdateZone(ctx context.Context, name string, z inventory.Zone) error {
	return c.call(ctx, http.MethodPut, zonePath(name), z, nil)
}

func (c *Client) DeleteZone(ctx context.Context, name string) error {
	return c.call(ctx, http.MethodDelete, zonePath(name), nil, nil)
}

func (c *Client) CreateEnvironment(ctx context.Context, zone string, env inventory.Environment) error {
	return c.call(ctx, http.MethodPost, zonePath(zone)+"/environments/", env, nil)
}

func (c *Client) UpdateEnvironment(ctx context.Context, zone, name string, env inventory.Environment) error {
	return c.call(ctx, http.MethodPut, envPath(zone, name), env, nil)
}

func (c *Client) DeleteEnvironment(ctx context.Context, zone, name string) error {
	return c.call(ctx, http.MethodDelete, envPath(zone, name), nil, nil)
}

func (c *Client) AddServer(ctx context.Context, zone, env string, srv inventory.Server) error {
	return c.call(ctx, http.MethodPost, envPath(zone, env)+"/servers/", srv, nil)
}

func (c *Client) UpdateServer(ctx context.Context, zone, env, fqdn string, srv inventory.Server) error {
	return c.call(ctx, http.MethodPut, envPath(zone, env)+"/servers/"+url.PathEscape(fqdn), srv, nil)
}

func (c *Client) DeleteServer(ctx context.Context, zone, env, fqdn string) error {
	return c.call(ctx, http.MethodDelete, envPath(zone, env)+"/servers/"+url.PathEscape(fqdn), nil, nil)
}

// call performs an authenticated request, logging in first if needed.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	if c.token == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(method, path, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// apiError prefers the API's {"error": ...} message over the raw body.
func apiError(method, path string, status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	var decoded struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &decoded) == nil && decoded.Error != "" {
		msg = decoded.Error
	}
	return &APIError{Method: method, Path: path, Status: status, Message: msg}
}

func zonePath(name string) string {
	return "/zones/" + url.PathEscape(name)
}

func envPath(zone, env string) string {
	return zonePath(zone) + "/environments/" + url.PathEscape(env)
}
