package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/ivlev/actiondirector/internal/director"
)

var ErrNotFound = errors.New("asset not found")

const cacheSize = 128

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	name       TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	length     REAL NOT NULL,
	updated_at INTEGER NOT NULL,
	opened_at  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_assets_opened_at ON assets(opened_at);
`

// Entry is the listing row of a stored asset.
type Entry struct {
	Name      string
	Length    float64
	UpdatedAt time.Time
	OpenedAt  time.Time // zero when never opened
}

// Store is an asset library kept in a SQLite database. Decoded documents
// are cached by name.
type Store struct {
	db    *sql.DB
	cache *lru.Cache[string, *director.Document]
}

// Open opens or creates the library at path (":memory:" for a private one).
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a :memory: database lives on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	cache, err := lru.New[string, *director.Document](cacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

func (s *Store) Close() error {
	s.cache.Purge()
	return s.db.Close()
}

// Put serializes the asset and stores it under name, replacing any previous version.
func (s *Store) Put(ctx context.Context, name string, a *director.Asset) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("put: empty asset name")
	}

	data, err := director.EncodeDocument(director.Serialize(a), director.FormatJSON)
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assets (name, document, length, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			length = excluded.length,
			updated_at = excluded.updated_at`,
		name, string(data), a.Length(), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	s.cache.Remove(name)
	return nil
}

// Document returns a copy of the stored document without building an asset.
func (s *Store) Document(ctx context.Context, name string) (*director.Document, error) {
	doc, err := s.document(ctx, name)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// document returns the cached document itself. Callers must not modify it.
func (s *Store) document(ctx context.Context, name string) (*director.Document, error) {
	if doc, ok := s.cache.Get(name); ok {
		return doc, nil
	}

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM assets WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}

	doc, err := director.DecodeDocument([]byte(data), director.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	s.cache.Add(name, doc)
	return doc, nil
}

// Get loads and deserializes the asset stored under name.
func (s *Store) Get(ctx context.Context, name string, reg *director.Registry) (*director.Asset, error) {
	doc, err := s.Document(ctx, name)
	if err != nil {
		return nil, err
	}
	return director.Deserialize(doc, reg)
}

// List returns every stored asset ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `SELECT name, length, updated_at, opened_at FROM assets ORDER BY name`)
}

// Recent returns up to n assets, most recently opened first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.query(ctx, `
		SELECT name, length, updated_at, opened_at FROM assets
		WHERE opened_at > 0 ORDER BY opened_at DESC LIMIT ?`, n)
}

// Touch marks name as just opened. Stamps are strictly increasing.
func (s *Store) Touch(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE assets SET opened_at = MAX(?, (SELECT COALESCE(MAX(opened_at), 0) + 1 FROM assets))
		WHERE name = ?`, time.Now().UnixNano(), name)
	if err != nil {
		return fmt.Errorf("touch %s: %w", name, err)
	}
	return affected(res, name)
}

// Delete removes name from the library.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	s.cache.Remove(name)
	return affected(res, name)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                 Entry
			updated, openedAt int64
		)
		if err := rows.Scan(&e.Name, &e.Length, &updated, &openedAt); err != nil {
			return nil, err
		}
		e.UpdatedAt = time.Unix(0, updated)
		if openedAt > 0 {
			e.OpenedAt = time.Unix(0, openedAt)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func affected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}
