// Package store persists OAuth token state in a local SQLite database so a
// rotated refresh token survives process restarts. The engine itself only
// depends on the TokenStore interface; this is one implementation of it.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// ErrNoToken is returned when no token has been stored yet.
var ErrNoToken = errors.New("no token stored")

// TokenStore loads and saves the engine's OAuth token state.
type TokenStore interface {
	Load() (strava.Token, error)
	Save(strava.Token) error
}

// DB is a SQLite-backed TokenStore.
type DB struct {
	db *sql.DB
}

// Open opens (and if needed creates) the token database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load returns the stored token state, or ErrNoToken when none exists.
func (d *DB) Load() (strava.Token, error) {
	row := d.db.QueryRow(`
		SELECT access_token, refresh_token, expires_at, last_refresh_at
		FROM oauth_token
		WHERE id = 1
	`)

	var tok strava.Token
	var expiresAt, lastRefreshAt int64
	err := row.Scan(&tok.AccessToken, &tok.RefreshToken, &expiresAt, &lastRefreshAt)
	if errors.Is(err, sql.ErrNoRows) {
		return strava.Token{}, ErrNoToken
	}
	if err != nil {
		return strava.Token{}, err
	}

	if expiresAt > 0 {
		tok.ExpiresAt = time.Unix(expiresAt, 0)
	}
	if lastRefreshAt > 0 {
		tok.LastRefreshAt = time.Unix(lastRefreshAt, 0)
	}
	return tok, nil
}

// Save stores or replaces the token state. The table holds a singleton row:
// exactly one logical token exists per process.
func (d *DB) Save(tok strava.Token) error {
	var expiresAt, lastRefreshAt int64
	if !tok.ExpiresAt.IsZero() {
		expiresAt = tok.ExpiresAt.Unix()
	}
	if !tok.LastRefreshAt.IsZero() {
		lastRefreshAt = tok.LastRefreshAt.Unix()
	}

	_, err := d.db.Exec(`
		INSERT INTO oauth_token (id, access_token, refresh_token, expires_at, last_refresh_at, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			last_refresh_at = excluded.last_refresh_at,
			updated_at = CURRENT_TIMESTAMP
	`, tok.AccessToken, tok.RefreshToken, expiresAt, lastRefreshAt)
	return err
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS oauth_token (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0,
			last_refresh_at INTEGER NOT NULL DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
