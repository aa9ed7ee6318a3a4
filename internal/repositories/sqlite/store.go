// Package sqlite implements the repository ports over an indexed sqlite
// dictionary database. The driver is cgo-free (modernc.org/sqlite); all
// access goes through database/sql prepared queries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store owns the database handle shared by the sqlite repositories.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the dictionary database and ensures the schema
// exists. The WAL journal and busy timeout pragmas make concurrent
// read-heavy access safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS hanja_entries (
	hangul            TEXT NOT NULL,
	hanja             TEXT NOT NULL,
	strokes           INTEGER NOT NULL,
	stroke_element    INTEGER NOT NULL,
	resource_element  INTEGER NOT NULL,
	phonetic_element  INTEGER NOT NULL,
	phonetic_polarity INTEGER NOT NULL,
	stroke_polarity   INTEGER NOT NULL,
	is_surname        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_hanja_pair ON hanja_entries (hangul, hanja);
CREATE INDEX IF NOT EXISTS idx_hanja_only ON hanja_entries (hanja);
CREATE INDEX IF NOT EXISTS idx_hanja_surname ON hanja_entries (hangul, is_surname);

CREATE TABLE IF NOT EXISTS surname_pairs (
	hangul TEXT NOT NULL,
	hanja  TEXT NOT NULL,
	PRIMARY KEY (hangul, hanja)
);

CREATE TABLE IF NOT EXISTS name_stats (
	hangul TEXT NOT NULL,
	hanja  TEXT NOT NULL,
	length INTEGER NOT NULL,
	h1 TEXT, h2 TEXT, h3 TEXT, h4 TEXT,
	j1 TEXT, j2 TEXT, j3 TEXT, j4 TEXT,
	s1 INTEGER NOT NULL DEFAULT 0,
	s2 INTEGER NOT NULL DEFAULT 0,
	s3 INTEGER NOT NULL DEFAULT 0,
	s4 INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_stats_length ON name_stats (length);
CREATE INDEX IF NOT EXISTS idx_stats_h1 ON name_stats (length, h1);
`
	_, err := s.db.Exec(schema)
	return err
}

// storeError carries the repository error categories over sqlite failures.
type storeError struct {
	err         error
	notFound    bool
	unavailable bool
}

func (e *storeError) Error() string       { return e.err.Error() }
func (e *storeError) Unwrap() error       { return e.err }
func (e *storeError) IsNotFound() bool    { return e.notFound }
func (e *storeError) IsUnavailable() bool { return e.unavailable }

func unavailable(err error) error {
	return &storeError{err: err, unavailable: true}
}
