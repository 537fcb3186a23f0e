package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the same JSON slot in a one-row-per-slot table.
type SQLiteStore struct {
	slotStore
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		`CREATE TABLE IF NOT EXISTS history_slots (
            name TEXT PRIMARY KEY,
            payload TEXT NOT NULL
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", stmt, err)
		}
	}

	return &SQLiteStore{
		slotStore: slotStore{slot: &sqliteSlot{db: db, name: SlotName}},
		db:        db,
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type sqliteSlot struct {
	db   *sql.DB
	name string
}

func (s *sqliteSlot) load(ctx context.Context) ([]byte, error) {
	return readSlot(ctx, s.db, s.name)
}

func (s *sqliteSlot) modify(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	raw, err := readSlot(ctx, tx, s.name)
	if err != nil {
		return err
	}
	next, err := fn(raw)
	if err != nil {
		return err
	}

	if next == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM history_slots WHERE name = ?`, s.name)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO history_slots (name, payload) VALUES (?, ?)
             ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
			s.name, string(next))
	}
	if err != nil {
		return fmt.Errorf("write history slot: %w", err)
	}
	return tx.Commit()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readSlot(ctx context.Context, q queryRower, name string) ([]byte, error) {
	var payload string
	err := q.QueryRowContext(ctx, `SELECT payload FROM history_slots WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history slot: %w", err)
	}
	return []byte(payload), nil
}
