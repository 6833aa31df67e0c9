// Package couch is a small client for CouchDB-compatible document stores.
//
// It speaks the subset of the CouchDB HTTP API that zoneinv needs:
// database creation, document get/put/delete with _rev handling, and
// full listing through _all_docs. Store status codes are translated into
// explicit outcomes: 404 becomes "absent", 409 becomes ErrConflict and
// anything else unexpected becomes a *StoreError.
package couch

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
	"strings"
	"time"
)

// ErrConflict is matched by a *StoreError whose status is 409.
var ErrConflict = errors.New("document revision conflict")

// StoreError is returned for any unexpected response from the store.
type StoreError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("document store %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Is reports conflicts so callers can use errors.Is(err, ErrConflict).
func (e *StoreError) Is(target error) bool {
	return target == ErrConflict && e.Status == http.StatusConflict
}

// Document is anything carrying CouchDB metadata. Embed Meta to get it.
type Document interface {
	DocID() string
	DocRev() string
	SetDocRev(rev string)
}

// Meta holds the store-managed _id and _rev fields.
type Meta struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev,omitempty"`
}

func (m *Meta) DocID() string        { return m.ID }
func (m *Meta) DocRev() string       { return m.Rev }
func (m *Meta) SetDocRev(rev string) { m.Rev = rev }

// Config holds client settings.
type Config struct {
	// BaseURL of the store, e.g. http://localhost:5984
	BaseURL string
	// Timeout is the HTTP client timeout (default: 10s)
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to the document store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a store client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("couch: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("couch: invalid BaseURL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type writeResult struct {
	OK  bool   `json:"ok"`
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// Ping checks that the store answers on its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, body, err := c.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return c.storeError(http.MethodGet, "/", resp.StatusCode, body)
	}
	return nil
}

// EnsureDatabase creates the database, treating "already exists" as success.
func (c *Client) EnsureDatabase(ctx context.Context, name string) error {
	path := "/" + url.PathEscape(name)
	resp, body, err := c.do(ctx, http.MethodPut, path, nil, nil)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated, http.StatusAccepted:
		c.logger.Info("created database", "db", name)
		return nil
	case http.StatusPreconditionFailed:
		return nil
	default:
		return c.storeError(http.MethodPut, path, resp.StatusCode, body)
	}
}

// Get decodes document id into out. A missing document yields (false, nil).
func (c *Client) Get(ctx context.Context, db, id string, out any) (bool, error) {
	path := docPath(db, id)
	resp, body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return false, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.Unmarshal(body, out); err != nil {
			return false, fmt.Errorf("couch: decode %s: %w", path, err)
		}
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, c.storeError(http.MethodGet, path, resp.StatusCode, body)
	}
}

// Put writes doc using exactly the revision it carries. An empty revision
// means "create"; if the document already exists the store answers 409 and
// Put returns an error matching ErrConflict. On success the new revision is
// stored back into doc.
func (c *Client) Put(ctx context.Context, db string, doc Document) error {
	path := docPath(db, doc.DocID())
	resp, body, err := c.do(ctx, http.MethodPut, path, nil, doc)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return c.storeError(http.MethodPut, path, resp.StatusCode, body)
	}
	var res writeResult
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("couch: decode write result: %w", err)
	}
	doc.SetDocRev(res.Rev)
	return nil
}

// Save is a best-effort upsert: when doc has no revision the current one is
// fetched first so an existing document is overwritten rather than rejected.
// It is not atomic; use Put when concurrent writers matter.
func (c *Client) Save(ctx context.Context, db string, doc Document) error {
	if doc.DocRev() == "" {
		var current Meta
		found, err := c.Get(ctx, db, doc.DocID(), &current)
		if err != nil {
			return err
		}
		if found {
			doc.SetDocRev(current.Rev)
		}
	}
	return c.Put(ctx, db, doc)
}

// Delete removes document id at its current revision. It reports false
// when the document does not exist.
func (c *Client) Delete(ctx context.Context, db, id string) (bool, error) {
	var current Meta
	found, err := c.Get(ctx, db, id, &current)
	if err != nil || !found {
		return false, err
	}
	if err := c.DeleteRev(ctx, db, id, current.Rev); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteRev removes document id only if rev is still current.
func (c *Client) DeleteRev(ctx context.Context, db, id, rev string) error {
	path := docPath(db, id)
	q := url.Values{"rev": {rev}}
	resp, body, err := c.do(ctx, http.MethodDelete, path, q, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return c.storeError(http.MethodDelete, path, resp.StatusCode, body)
	}
	return nil
}

type allDocsResponse struct {
	TotalRows int `json:"total_rows"`
	Rows      []struct {
		ID  string          `json:"id"`
		Doc json.RawMessage `json:"doc"`
	} `json:"rows"`
}

// ListAll returns every document body in db. Design documents are skipped.
func (c *Client) ListAll(ctx context.Context, db string) ([]json.RawMessage, error) {
	path := "/" + url.PathEscape(db) + "/_all_docs"
	q := url.Values{"include_docs": {"true"}}
	resp, body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.storeError(http.MethodGet, path, resp.StatusCode, body)
	}
	var all allDocsResponse
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("couch: decode _all_docs: %w", err)
	}
	docs := make([]json.RawMessage, 0, len(all.Rows))
	for _, row := range all.Rows {
		if strings.HasPrefix(row.ID, "_design/") || len(row.Doc) == 0 {
			continue
		}
		docs = append(docs, row.Doc)
	}
	return docs, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("couch: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("couch: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("couch: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("couch: read response: %w", err)
	}
	c.logger.Debug("store request", "method", method, "path", path, "status", resp.StatusCode)
	return resp, respBody, nil
}

func (c *Client) storeError(method, path string, status int, body []byte) error {
	return &StoreError{Method: method, Path: path, Status: status, Body: strings.TrimSpace(string(body))}
}

func docPath(db, id string) string {
	return "/" + url.PathEscape(db) + "/" + url.PathEscape(id)
}
