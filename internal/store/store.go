// Package store persists candidate records in SQLite. It is deliberately
// thin plumbing: the matching engine never touches it, and no durability or
// concurrency guarantees beyond SQLite's own are claimed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"resume-screener/internal/models"
)

// ErrNotFound is returned when no candidate exists for the given id.
var ErrNotFound = errors.New("candidate not found")

// Store is a SQLite-backed candidate repository.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the candidate database at the given path.
// ":memory:" yields an ephemeral store for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// initSchema creates the candidates table if it doesn't exist.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS candidates (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT,
		phone       TEXT,
		skills      TEXT,
		experience  TEXT,
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`)
	return err
}

// Put inserts a candidate. Inserting an id that already exists is a no-op,
// which is how duplicate uploads are de-duplicated. Returns whether a row
// was actually inserted.
func (s *Store) Put(ctx context.Context, c models.Candidate) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO candidates
		 (id, name, email, phone, skills, experience, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, strings.Join(c.Skills, ","),
		c.Experience, c.Content, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("store: insert candidate %s: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: rows affected: %w", err)
	}
	return n > 0, nil
}

// Get returns one candidate by id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (models.Candidate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, skills, experience, content
		 FROM candidates WHERE id = ?`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("store: get candidate %s: %w", id, err)
	}
	return c, nil
}

// List returns all candidates in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, skills, experience, content
		 FROM candidates ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: list candidates: %w", err)
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a candidate record entirely.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete candidate %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored candidates.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count candidates: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var c models.Candidate
	var skills string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &skills, &c.Experience, &c.Content); err != nil {
		return models.Candidate{}, err
	}
	if skills != "" {
		c.Skills = strings.Split(skills, ",")
	}
	return c, nil
}
