// Package sqlite provides a SQLite-backed implementation of
// storage.Repository.
//
// WAL mode is enabled on Open so a reader (e.g. a GET on one cart) never
// blocks a writer storing another.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcmexdev/shopping-cart/internal/cart/storage"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Docker (Alpine) builds simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. One row per
// (external_id, instance) pair; Store overwrites the row in place.
const schema = `
CREATE TABLE IF NOT EXISTS cart_records (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Caller-supplied key, typically a user or session identifier.
    external_id TEXT NOT NULL,

    -- Fully qualified instance name, e.g. "shopping-cart.default".
    instance    TEXT NOT NULL,

    -- Serialized cart state. Opaque to this layer.
    content     BLOB NOT NULL,

    -- RFC3339 stored as TEXT, SQLite idiom.
    updated_at  TEXT NOT NULL,

    UNIQUE (external_id, instance)
);
`

// Repository is the SQLite implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

var _ storage.Repository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/carts.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes _pragma query parameters. busy_timeout
	// waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// CreateOrUpdate upserts the serialized cart under its composite key.
func (r *Repository) CreateOrUpdate(ctx context.Context, externalID, instanceName string, content []byte) error {
	const q = `
		INSERT INTO cart_records (external_id, instance, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (external_id, instance)
		DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, q,
		externalID,
		instanceName,
		content,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upsert cart %q/%q: %w", externalID, instanceName, err)
	}
	return nil
}

// FindByIDAndInstanceName returns the stored cart record, or (nil, nil)
// when no row exists for the key.
func (r *Repository) FindByIDAndInstanceName(ctx context.Context, externalID, instanceName string) (*storage.Record, error) {
	const q = `
		SELECT external_id, instance, content, updated_at
		FROM   cart_records
		WHERE  external_id = ? AND instance = ?`

	row := r.db.QueryRowContext(ctx, q, externalID, instanceName)

	var rec storage.Record
	var updatedAt string
	err := row.Scan(&rec.ExternalID, &rec.Instance, &rec.Content, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find cart %q/%q: %w", externalID, instanceName, err)
	}

	rec.UpdatedAt, err = parseRFC3339(updatedAt)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Remove deletes the record for the key. Deleting a missing row is a no-op.
func (r *Repository) Remove(ctx context.Context, externalID, instanceName string) error {
	const q = `DELETE FROM cart_records WHERE external_id = ? AND instance = ?`

	if _, err := r.db.ExecContext(ctx, q, externalID, instanceName); err != nil {
		return fmt.Errorf("sqlite: remove cart %q/%q: %w", externalID, instanceName, err)
	}
	return nil
}

// parseRFC3339 parses the timestamp strings stored in SQLite.
// SQLite has no native datetime type; we store RFC3339 TEXT.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
