package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDatabaseExists   = errors.New("database already exists")
	ErrDatabaseNotFound = errors.New("database does not exist")
	ErrDocumentNotFound = errors.New("document not found")
	ErrRevisionConflict = errors.New("document update conflict")
)

// Document is a stored JSON body plus its revision.
// Body never contains the _id or _rev fields.
type Document struct {
	ID        string
	Rev       string
	Body      []byte
	UpdatedAt time.Time
}

// txExec is satisfied by *sql.DB and *sql.Tx.
type txExec interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// CreateDatabase registers a new database name.
func (db *DB) CreateDatabase(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	exists, err := databaseExists(db.conn, name)
	if err != nil {
		return err
	}
	if exists {
		return ErrDatabaseExists
	}
	if _, err := db.conn.Exec(`INSERT INTO databases (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// DeleteDatabase removes a database and all of its documents.
func (db *DB) DeleteDatabase(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := databaseExists(tx, name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrDatabaseNotFound
	}
	if _, err := tx.Exec(`DELETE FROM documents WHERE db = ?`, name); err != nil {
		return fmt.Errorf("failed to delete documents of %s: %w", name, err)
	}
	if _, err := tx.Exec(`DELETE FROM databases WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete database %s: %w", name, err)
	}
	return tx.Commit()
}

// DatabaseExists reports whether name has been created.
func (db *DB) DatabaseExists(name string) (bool, error) {
	return databaseExists(db.conn, name)
}

// ListDatabases returns all database names in lexical order.
func (db *DB) ListDatabases() ([]string, error) {
	rows, err := db.conn.Query(`SELECT name FROM databases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// CountDocuments returns the number of live documents in a database.
func (db *DB) CountDocuments(name string) (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM documents WHERE db = ?`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// GetDocument loads a single document.
func (db *DB) GetDocument(dbName, id string) (*Document, error) {
	exists, err := databaseExists(db.conn, dbName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDatabaseNotFound
	}
	return getDocument(db.conn, dbName, id)
}

// PutDocument creates or updates a document. rev must be empty for a new
// document and must equal the stored revision for an existing one;
// otherwise ErrRevisionConflict is returned. It returns the new revision.
func (db *DB) PutDocument(dbName, id, rev string, body []byte) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := databaseExists(tx, dbName)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrDatabaseNotFound
	}

	current, err := getDocument(tx, dbName, id)
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		if rev != "" {
			return "", ErrRevisionConflict
		}
		newRev := nextRevision(0)
		if _, err := tx.Exec(
			`INSERT INTO documents (db, id, rev, generation, body) VALUES (?, ?, ?, 1, ?)`,
			dbName, id, newRev, string(body),
		); err != nil {
			return "", fmt.Errorf("failed to insert document %s: %w", id, err)
		}
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit: %w", err)
		}
		return newRev, nil
	case err != nil:
		return "", err
	}

	if rev != current.Rev {
		return "", ErrRevisionConflict
	}
	gen := revisionGeneration(current.Rev)
	newRev := nextRevision(gen)
	if _, err := tx.Exec(
		`UPDATE documents SET rev = ?, generation = ?, body = ?, updated_at = CURRENT_TIMESTAMP WHERE db = ? AND id = ?`,
		newRev, gen+1, string(body), dbName, id,
	); err != nil {
		return "", fmt.Errorf("failed to update document %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return newRev, nil
}

// DeleteDocument removes a document if rev is current. It returns the
// tombstone revision reported to clients.
func (db *DB) DeleteDocument(dbName, id, rev string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := databaseExists(tx, dbName)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrDatabaseNotFound
	}
	current, err := getDocument(tx, dbName, id)
	if err != nil {
		return "", err
	}
	if rev != current.Rev {
		return "", ErrRevisionConflict
	}
	if _, err := tx.Exec(`DELETE FROM documents WHERE db = ? AND id = ?`, dbName, id); err != nil {
		return "", fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return nextRevision(revisionGeneration(current.Rev)), nil
}

// AllDocuments returns every document of a database ordered by id.
func (db *DB) AllDocuments(dbName string) ([]Document, error) {
	exists, err := databaseExists(db.conn, dbName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDatabaseNotFound
	}

	rows, err := db.conn.Query(`SELECT id, rev, body, updated_at FROM documents WHERE db = ? ORDER BY id`, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var d Document
		var body string
		var updated any
		if err := rows.Scan(&d.ID, &d.Rev, &body, &updated); err != nil {
			return nil, err
		}
		d.Body = []byte(body)
		d.UpdatedAt = parseTimestamp(updated)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func databaseExists(q txExec, name string) (bool, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM databases WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up database %s: %w", name, err)
	}
	return n > 0, nil
}

func getDocument(q txExec, dbName, id string) (*Document, error) {
	var d Document
	var body string
	var updated any
	err := q.QueryRow(
		`SELECT id, rev, body, updated_at FROM documents WHERE db = ? AND id = ?`, dbName, id,
	).Scan(&d.ID, &d.Rev, &body, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	d.Body = []byte(body)
	d.UpdatedAt = parseTimestamp(updated)
	return &d, nil
}

// parseTimestamp accepts whatever the driver hands back for a TIMESTAMP column.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTimestamp(string(t))
	}
	return time.Time{}
}

// Revisions look like "<generation>-<32 hex chars>".
func nextRevision(gen int) string {
	return strconv.Itoa(gen+1) + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func revisionGeneration(rev string) int {
	prefix, _, ok := strings.Cut(rev, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return n
}
