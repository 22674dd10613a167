// Package session owns the locally persisted login state and the archive
// of barcode tokens issued to this device.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"rentauto-client/internal/domain"
)

// Store persists a single session record plus issued barcodes in a local
// SQLite database that survives app restarts.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database and runs
// the schema migration.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	store := NewWithDB(db)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewWithDB wraps an existing database handle. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS session (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	user_id      INTEGER NOT NULL,
	is_admin     INTEGER NOT NULL DEFAULT 0,
	is_logged_in INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS barcodes (
	rental_id  INTEGER PRIMARY KEY,
	token      TEXT NOT NULL,
	created_on TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate session store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the single session row.
func (s *Store) Save(sess domain.Session) error {
	_, err := s.db.Exec(
		`INSERT INTO session (id, user_id, is_admin, is_logged_in) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, is_admin = excluded.is_admin, is_logged_in = excluded.is_logged_in`,
		sess.UserID, boolToInt(sess.Admin), boolToInt(sess.LoggedIn))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the persisted session; absence yields the zero
// (unauthenticated) session, not an error.
func (s *Store) Current() (domain.Session, error) {
	var sess domain.Session
	var admin, loggedIn int
	err := s.db.QueryRow(`SELECT user_id, is_admin, is_logged_in FROM session WHERE id = 1`).
		Scan(&sess.UserID, &admin, &loggedIn)
	if err == sql.ErrNoRows {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	sess.Admin = admin != 0
	sess.LoggedIn = loggedIn != 0
	return sess, nil
}

// Clear wipes the session and the barcode archive, as logout does.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM barcodes`); err != nil {
		return fmt.Errorf("failed to clear barcodes: %w", err)
	}
	return nil
}

// SaveBarcode archives the token issued for a rental so the confirmation
// can be re-displayed and a return started without re-fetching history.
func (s *Store) SaveBarcode(rentalID int, token string) error {
	_, err := s.db.Exec(
		`INSERT INTO barcodes (rental_id, token, created_on) VALUES (?, ?, ?)
		 ON CONFLICT(rental_id) DO UPDATE SET token = excluded.token`,
		rentalID, token, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to archive barcode: %w", err)
	}
	return nil
}

// Barcode returns the archived token for a rental, or empty if unknown.
func (s *Store) Barcode(rentalID int) (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM barcodes WHERE rental_id = ?`, rentalID).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read barcode: %w", err)
	}
	return token, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
