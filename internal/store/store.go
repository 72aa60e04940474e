// Package store persists documents and named presets in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// AutosaveKey is the key the running document is saved under.
const AutosaveKey = "orbital_autosave"

// ErrNotFound is returned when a key or preset does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS presets (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    document   TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

// Store is a SQLite-backed key/value and preset store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, string(value), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// LoadAutosave returns the autosaved document, or ErrNotFound.
func (s *Store) LoadAutosave(ctx context.Context) (Document, error) {
	data, err := s.Get(ctx, AutosaveKey)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode autosave: %w", err)
	}
	return doc, nil
}

// SaveAutosave stores doc under AutosaveKey.
func (s *Store) SaveAutosave(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode autosave: %w", err)
	}
	return s.Put(ctx, AutosaveKey, data)
}

// Preset is a named saved document.
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Document  Document  `json:"document"`
}

// SavePreset stores doc as a new preset.
func (s *Store) SavePreset(ctx context.Context, name string, doc Document) (Preset, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Preset{}, fmt.Errorf("encode preset: %w", err)
	}
	p := Preset{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.UnixMilli(time.Now().UnixMilli()),
		Document:  doc,
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO presets (id, name, document, created_at) VALUES (?, ?, ?, ?)
    `, p.ID, p.Name, string(data), p.CreatedAt.UnixMilli())
	if err != nil {
		return Preset{}, fmt.Errorf("insert preset: %w", err)
	}
	return p, nil
}

// Preset returns the preset with id.
func (s *Store) Preset(ctx context.Context, id string) (Preset, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, document, created_at FROM presets WHERE id = ?
    `, id)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	return p, nil
}

// Presets lists all presets, newest first.
func (s *Store) Presets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, document, created_at FROM presets ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePreset removes the preset with id.
func (s *Store) DeletePreset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (Preset, error) {
	var (
		p       Preset
		doc     string
		created int64
	)
	if err := row.Scan(&p.ID, &p.Name, &doc, &created); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal([]byte(doc), &p.Document); err != nil {
		return Preset{}, fmt.Errorf("decode preset document: %w", err)
	}
	p.CreatedAt = time.UnixMilli(created)
	return p, nil
}
