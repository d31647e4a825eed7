// Package catalog persists named target sets and resolver results in a
// local sqlite database.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/naojsoft/spot/internal/target"
)

// DefaultPath returns the path of the user's catalog database.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "spot.db")
	}
	return filepath.Join(home, ".spot", "spot.db")
}

// Store persists target sets and the name-resolver cache.
type Store struct {
	path string
}

// NewStore creates a store backed by the sqlite database at path. The
// parent directory is created if needed; the schema on first use.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS target_sets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_target_sets_name ON target_sets(name);
		CREATE TABLE IF NOT EXISTS target_set_members (
			set_id TEXT NOT NULL REFERENCES target_sets(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			ra_deg REAL NOT NULL,
			dec_deg REAL NOT NULL,
			equinox REAL NOT NULL,
			pm_ra REAL NOT NULL DEFAULT 0,
			pm_dec REAL NOT NULL DEFAULT 0,
			comment TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_members_set ON target_set_members(set_id);
		CREATE TABLE IF NOT EXISTS name_cache (
			name TEXT PRIMARY KEY,
			ra_deg REAL NOT NULL,
			dec_deg REAL NOT NULL,
			resolver TEXT NOT NULL,
			resolved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating catalog schema: %w", err)
	}
	return nil
}

// SetInfo summarizes one stored target set.
type SetInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Count     int
}

// SaveSet stores targets under the given set name, replacing any previous
// set of that name. It returns the set's id.
func (s *Store) SaveSet(name string, targets []*target.Target) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.Exec(
		`DELETE FROM target_set_members WHERE set_id IN (SELECT id FROM target_sets WHERE name = ?)`,
		name); err != nil {
		return "", fmt.Errorf("clearing old set members: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM target_sets WHERE name = ?`, name); err != nil {
		return "", fmt.Errorf("clearing old set: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO target_sets (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now()); err != nil {
		return "", fmt.Errorf("saving set: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO target_set_members (set_id, name, ra_deg, dec_deg, equinox, pm_ra, pm_dec, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing member insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range targets {
		if _, err := stmt.Exec(id, t.Name, t.RADeg, t.DecDeg, t.Equinox, t.PMRA, t.PMDec, t.Comment); err != nil {
			return "", fmt.Errorf("saving target %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing set: %w", err)
	}
	return id, nil
}

// LoadSet retrieves the targets of a stored set by name.
func (s *Store) LoadSet(name string) ([]*target.Target, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT m.name, m.ra_deg, m.dec_deg, m.equinox, m.pm_ra, m.pm_dec, m.comment
		FROM target_set_members m
		JOIN target_sets ts ON ts.id = m.set_id
		WHERE ts.name = ?
		ORDER BY m.rowid`, name)
	if err != nil {
		return nil, fmt.Errorf("querying set %q: %w", name, err)
	}
	defer rows.Close()

	var targets []*target.Target
	for rows.Next() {
		t := &target.Target{Category: name}
		var comment sql.NullString
		if err := rows.Scan(&t.Name, &t.RADeg, &t.DecDeg, &t.Equinox, &t.PMRA, &t.PMDec, &comment); err != nil {
			return nil, fmt.Errorf("scanning target: %w", err)
		}
		t.Comment = comment.String
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading set %q: %w", name, err)
	}
	if targets == nil {
		return nil, fmt.Errorf("target set %q not found", name)
	}
	return targets, nil
}

// ListSets returns the stored sets ordered by name.
func (s *Store) ListSets() ([]SetInfo, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT ts.id, ts.name, ts.created_at,
		       (SELECT COUNT(*) FROM target_set_members m WHERE m.set_id = ts.id)
		FROM target_sets ts
		ORDER BY ts.name`)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	defer rows.Close()

	var sets []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.Count); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		sets = append(sets, info)
	}
	return sets, rows.Err()
}

// DeleteSet removes a stored set and its members.
func (s *Store) DeleteSet(name string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(
		`DELETE FROM target_set_members WHERE set_id IN (SELECT id FROM target_sets WHERE name = ?)`,
		name); err != nil {
		return fmt.Errorf("deleting set members: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM target_sets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	return nil
}

// CachedCoords returns a previously resolved position for name. ok is
// false on a cache miss.
func (s *Store) CachedCoords(name string) (raDeg, decDeg float64, ok bool, err error) {
	db, err := s.open()
	if err != nil {
		return 0, 0, false, err
	}
	defer db.Close()

	err = db.QueryRow(`SELECT ra_deg, dec_deg FROM name_cache WHERE name = ?`, name).
		Scan(&raDeg, &decDeg)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("querying name cache: %w", err)
	}
	return raDeg, decDeg, true, nil
}

// StoreCoords records a resolved position for name.
func (s *Store) StoreCoords(name string, raDeg, decDeg float64, resolver string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		INSERT INTO name_cache (name, ra_deg, dec_deg, resolver, resolved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			ra_deg = excluded.ra_deg,
			dec_deg = excluded.dec_deg,
			resolver = excluded.resolver,
			resolved_at = excluded.resolved_at`,
		name, raDeg, decDeg, resolver, time.Now())
	if err != nil {
		return fmt.Errorf("caching resolved name %q: %w", name, err)
	}
	return nil
}
