package docstore_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/database"
	"github.com/jroosing/zoneinv/internal/docstore"
	"github.com/jroosing/zoneinv/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return docstore.New(nil, db, logging.Discard()).Engine()
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ============================================================================
// Database Endpoint Tests
// ============================================================================

func TestWelcome(t *testing.T) {
	r := newTestEngine(t)

	w := performRequest(r, "GET", "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome", decode(t, w)["couchdb"])
}

func TestCreateDatabase_ExistingReturns412(t *testing.T) {
	r := newTestEngine(t)

	w := performRequest(r, "PUT", "/users", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, "PUT", "/users", "")
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, "file_exists", decode(t, w)["error"])
}

func TestCreateDatabase_IllegalName(t *testing.T) {
	r := newTestEngine(t)

	w := performRequest(r, "PUT", "/Users", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllDatabases(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/users", "")
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "GET", "/_all_dbs", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["server_resources","users"]`, w.Body.String())
}

func TestDatabaseInfo(t *testing.T) {
	r := newTestEngine(t)

	w := performRequest(r, "GET", "/users", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	performRequest(r, "PUT", "/users", "")
	performRequest(r, "PUT", "/users/user:admin", `{"username":"admin"}`)

	w = performRequest(r, "GET", "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["doc_count"])
}

func TestDeleteDatabase(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/users", "")

	assert.Equal(t, http.StatusOK, performRequest(r, "DELETE", "/users", "").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(r, "DELETE", "/users", "").Code)
}

// ============================================================================
// Document Endpoint Tests
// ============================================================================

func TestPutGetDocument(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "PUT", "/server_resources/zone:qa", `{"name":"qa","type":"zone"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	rev := decode(t, w)["rev"].(string)
	assert.True(t, strings.HasPrefix(rev, "1-"))

	w = performRequest(r, "GET", "/server_resources/zone:qa", "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	assert.Equal(t, "zone:qa", doc["_id"])
	assert.Equal(t, rev, doc["_rev"])
	assert.Equal(t, "qa", doc["name"])
}

func TestPutDocument_RevisionChecks(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "PUT", "/server_resources/zone:qa", `{"name":"qa"}`)
	rev := decode(t, w)["rev"].(string)

	// Without a revision the existing document is not overwritten.
	w = performRequest(r, "PUT", "/server_resources/zone:qa", `{"name":"qa"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["error"])

	w = performRequest(r, "PUT", "/server_resources/zone:qa", `{"_rev":"`+rev+`","name":"qa","v":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// The superseded revision now conflicts.
	w = performRequest(r, "PUT", "/server_resources/zone:qa?rev="+rev, `{"name":"qa"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPutDocument_RejectsReservedID(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "PUT", "/server_resources/_local", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutDocument_InvalidBody(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "PUT", "/server_resources/zone:qa", `[1,2]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostDocument_GeneratesID(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "POST", "/server_resources", `{"name":"anon"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Regexp(t, `^[0-9a-f]{32}$`, decode(t, w)["id"])
}

func TestGetDocument_Missing(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")

	w := performRequest(r, "GET", "/server_resources/zone:nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["error"])
}

func TestDeleteDocument(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")
	w := performRequest(r, "PUT", "/server_resources/zone:qa", `{"name":"qa"}`)
	rev := decode(t, w)["rev"].(string)

	w = performRequest(r, "DELETE", "/server_resources/zone:qa?rev=1-stale", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	req := httptest.NewRequest("DELETE", "/server_resources/zone:qa", nil)
	req.Header.Set("If-Match", `"`+rev+`"`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, performRequest(r, "GET", "/server_resources/zone:qa", "").Code)
}

func TestAllDocuments(t *testing.T) {
	r := newTestEngine(t)
	performRequest(r, "PUT", "/server_resources", "")
	performRequest(r, "PUT", "/server_resources/zone:b", `{"name":"b"}`)
	performRequest(r, "PUT", "/server_resources/zone:a", `{"name":"a"}`)

	w := performRequest(r, "GET", "/server_resources/_all_docs", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total_rows"])
	rows := body["rows"].([]any)
	first := rows[0].(map[string]any)
	assert.Equal(t, "zone:a", first["id"])
	assert.NotContains(t, first, "doc")
	value := first["value"].(map[string]any)
	updated, err := time.Parse(time.RFC3339, value["updated_at"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), updated, time.Hour)

	w = performRequest(r, "GET", "/server_resources/zone:a", "")
	require.Equal(t, http.StatusOK, w.Code)
	modified, err := http.ParseTime(w.Header().Get("Last-Modified"))
	require.NoError(t, err)
	assert.WithinDuration(t, updated, modified, time.Second)

	w = performRequest(r, "GET", "/server_resources/_all_docs?include_docs=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows = decode(t, w)["rows"].([]any)
	doc := rows[1].(map[string]any)["doc"].(map[string]any)
	assert.Equal(t, "b", doc["name"])
	assert.Equal(t, "zone:b", doc["_id"])
}

func TestAllDocuments_MissingDatabase(t *testing.T) {
	r := newTestEngine(t)

	w := performRequest(r, "GET", "/nope/_all_docs", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNew_PanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		docstore.New(nil, nil, nil)
	})
}
