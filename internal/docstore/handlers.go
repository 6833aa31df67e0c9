package docstore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jroosing/zoneinv/internal/database"
)

// couchError mirrors CouchDB's error body.
type couchError struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type writeResponse struct {
	OK  bool   `json:"ok"`
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

type allDocsRow struct {
	ID    string          `json:"id"`
	Key   string          `json:"key"`
	Value allDocsValue    `json:"value"`
	Doc   json.RawMessage `json:"doc,omitempty"`
}

type allDocsValue struct {
	Rev       string `json:"rev"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// timestamp renders t as RFC 3339 UTC, or "" when unknown.
func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type allDocsResponse struct {
	TotalRows int          `json:"total_rows"`
	Offset    int          `json:"offset"`
	Rows      []allDocsRow `json:"rows"`
}

func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"couchdb": "Welcome", "version": Version, "vendor": gin.H{"name": "zoneinv"}})
}

func (s *Server) createDatabase(c *gin.Context) {
	name := c.Param("db")
	if !validDatabaseName(name) {
		c.JSON(http.StatusBadRequest, couchError{Error: "illegal_database_name", Reason: "Name: '" + name + "'"})
		return
	}
	err := s.db.CreateDatabase(name)
	switch {
	case errors.Is(err, database.ErrDatabaseExists):
		c.JSON(http.StatusPreconditionFailed, couchError{Error: "file_exists", Reason: "The database could not be created, the file already exists."})
	case err != nil:
		s.internalError(c, err)
	default:
		s.logger.Info("database created", "db", name)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}
}

func (s *Server) databaseInfo(c *gin.Context) {
	name := c.Param("db")
	if name == "_all_dbs" {
		s.allDatabases(c)
		return
	}
	exists, err := s.db.DatabaseExists(name)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, couchError{Error: "not_found", Reason: "Database does not exist."})
		return
	}
	count, err := s.db.CountDocuments(name)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"db_name": name, "doc_count": count})
}

func (s *Server) allDatabases(c *gin.Context) {
	names, err := s.db.ListDatabases()
	if err != nil {
		s.internalError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) deleteDatabase(c *gin.Context) {
	name := c.Param("db")
	err := s.db.DeleteDatabase(name)
	switch {
	case errors.Is(err, database.ErrDatabaseNotFound):
		c.JSON(http.StatusNotFound, couchError{Error: "not_found", Reason: "Database does not exist."})
	case err != nil:
		s.internalError(c, err)
	default:
		s.logger.Info("database deleted", "db", name)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (s *Server) postDocument(c *gin.Context) {
	fields, ok := s.readBody(c)
	if !ok {
		return
	}
	id := stringField(fields, "_id")
	if id == "" {
		id = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	s.write(c, c.Param("db"), id, stringField(fields, "_rev"), fields)
}

func (s *Server) putDocument(c *gin.Context) {
	fields, ok := s.readBody(c)
	if !ok {
		return
	}
	rev := stringField(fields, "_rev")
	if rev == "" {
		rev = c.Query("rev")
	}
	s.write(c, c.Param("db"), c.Param("docid"), rev, fields)
}

func (s *Server) write(c *gin.Context, db, id, rev string, fields map[string]json.RawMessage) {
	if strings.HasPrefix(id, "_") {
		c.JSON(http.StatusBadRequest, couchError{Error: "illegal_docid", Reason: "Only reserved document ids may start with underscore."})
		return
	}
	body, err := json.Marshal(stripMeta(fields))
	if err != nil {
		s.internalError(c, err)
		return
	}
	newRev, err := s.db.PutDocument(db, id, rev, body)
	if s.storageError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, writeResponse{OK: true, ID: id, Rev: newRev})
}

func (s *Server) getDocument(c *gin.Context) {
	db, id := c.Param("db"), c.Param("docid")
	if id == "_all_docs" {
		s.allDocuments(c, db)
		return
	}
	doc, err := s.db.GetDocument(db, id)
	if s.storageError(c, err) {
		return
	}
	out, err := withMeta(doc)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !doc.UpdatedAt.IsZero() {
		c.Header("Last-Modified", doc.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	c.Data(http.StatusOK, "application/json", out)
}

func (s *Server) allDocuments(c *gin.Context, db string) {
	docs, err := s.db.AllDocuments(db)
	if s.storageError(c, err) {
		return
	}
	includeDocs := c.Query("include_docs") == "true"

	resp := allDocsResponse{TotalRows: len(docs), Rows: make([]allDocsRow, 0, len(docs))}
	for i := range docs {
		row := allDocsRow{ID: docs[i].ID, Key: docs[i].ID, Value: allDocsValue{Rev: docs[i].Rev, UpdatedAt: timestamp(docs[i].UpdatedAt)}}
		if includeDocs {
			full, err := withMeta(&docs[i])
			if err != nil {
				s.internalError(c, err)
				return
			}
			row.Doc = full
		}
		resp.Rows = append(resp.Rows, row)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteDocument(c *gin.Context) {
	db, id := c.Param("db"), c.Param("docid")
	rev := c.Query("rev")
	if rev == "" {
		rev = strings.Trim(c.GetHeader("If-Match"), `"`)
	}
	newRev, err := s.db.DeleteDocument(db, id, rev)
	if s.storageError(c, err) {
		return
	}
	c.JSON(http.StatusOK, writeResponse{OK: true, ID: id, Rev: newRev})
}

func (s *Server) readBody(c *gin.Context) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil || fields == nil {
		c.JSON(http.StatusBadRequest, couchError{Error: "bad_request", Reason: "Document must be a JSON object"})
		return nil, false
	}
	return fields, true
}

// storageError writes the CouchDB response for err and reports whether it did.
func (s *Server) storageError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, database.ErrDatabaseNotFound):
		c.JSON(http.StatusNotFound, couchError{Error: "not_found", Reason: "Database does not exist."})
	case errors.Is(err, database.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, couchError{Error: "not_found", Reason: "missing"})
	case errors.Is(err, database.ErrRevisionConflict):
		c.JSON(http.StatusConflict, couchError{Error: "conflict", Reason: "Document update conflict."})
	default:
		s.internalError(c, err)
	}
	return true
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("document store failure", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, couchError{Error: "internal_server_error", Reason: err.Error()})
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// stripMeta drops every underscore-prefixed field; the store owns those.
func stripMeta(fields map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = v
	}
	return out
}

func withMeta(doc *database.Document) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(doc.Body, &fields); err != nil {
		return nil, err
	}
	id, _ := json.Marshal(doc.ID)
	rev, _ := json.Marshal(doc.Rev)
	fields["_id"] = id
	fields["_rev"] = rev
	return json.Marshal(fields)
}

// validDatabaseName follows CouchDB: lowercase start, then [a-z0-9_$()+/-].
func validDatabaseName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune("_$()+-/", r):
		default:
			return false
		}
	}
	return true
}
