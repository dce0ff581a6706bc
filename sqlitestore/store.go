// Package sqlitestore persists drawing entities in SQLite and serves them to
// a gripedit.Controller as its scene store.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/gripedit"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
    seq  INTEGER PRIMARY KEY AUTOINCREMENT,
    id   TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    data TEXT NOT NULL
)`

// Store is an entity table. Every entity is stored as its JSON encoding.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. Call Init before use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the entity table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert adds e. It fails if the ID already exists.
func (s *Store) Insert(ctx context.Context, e gripedit.Entity) error {
	data, err := gripedit.MarshalEntity(e)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO entities (id, kind, data)
        VALUES (?, ?, ?)
    `, e.ID(), e.Kind().String(), string(data))
	if err != nil {
		return fmt.Errorf("insert %s: %w", e.ID(), err)
	}
	return nil
}

// Get loads the entity with id. A missing row is reported as
// gripedit.ErrEntityNotFound.
func (s *Store) Get(ctx context.Context, id string) (gripedit.Entity, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT data
        FROM entities
        WHERE id = ?
    `, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", gripedit.ErrEntityNotFound, id)
		}
		return nil, err
	}
	return gripedit.UnmarshalEntity([]byte(data))
}

// Put replaces the stored entity with e inside one transaction. The stored
// kind must match.
func (s *Store) Put(ctx context.Context, e gripedit.Entity) error {
	data, err := gripedit.MarshalEntity(e)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var kind string
	err = tx.QueryRowContext(ctx, `SELECT kind FROM entities WHERE id = ?`, e.ID()).Scan(&kind)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", gripedit.ErrEntityNotFound, e.ID())
	}
	if err != nil {
		return err
	}
	if kind != e.Kind().String() {
		return fmt.Errorf("sqlitestore: cannot replace %s %s with %s", kind, e.ID(), e.Kind())
	}

	if _, err := tx.ExecContext(ctx, `UPDATE entities SET data = ? WHERE id = ?`, string(data), e.ID()); err != nil {
		return fmt.Errorf("update %s: %w", e.ID(), err)
	}
	return tx.Commit()
}

// Delete removes the entity with id. It reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every entity in insertion order.
func (s *Store) List(ctx context.Context) ([]gripedit.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM entities ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gripedit.Entity
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e, err := gripedit.UnmarshalEntity([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Bind returns a gripedit.SceneStore whose calls run with ctx.
func (s *Store) Bind(ctx context.Context) gripedit.SceneStore {
	return &boundStore{s: s, ctx: ctx}
}

type boundStore struct {
	s   *Store
	ctx context.Context
}

func (b *boundStore) Entity(id string) (gripedit.Entity, bool) {
	e, err := b.s.Get(b.ctx, id)
	if err != nil {
		if !errors.Is(err, gripedit.ErrEntityNotFound) {
			gripedit.Logger().Warn("sqlite entity read failed", "entity", id, "err", err)
		}
		return nil, false
	}
	return e, true
}

func (b *boundStore) Update(e gripedit.Entity) error {
	return b.s.Put(b.ctx, e)
}
