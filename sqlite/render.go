package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/viewdocs"
)

// Ensure RenderCache implements viewdocs.RenderCache at compile time.
var _ viewdocs.RenderCache = (*RenderCache)(nil)

// RenderCache stores rendered HTML in SQLite.
type RenderCache struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewRenderCache creates a new RenderCache.
func NewRenderCache(db *DB) *RenderCache {
	return &RenderCache{db: db, Now: time.Now}
}

// Get returns the HTML stored under key.
func (c *RenderCache) Get(ctx context.Context, key string) ([]byte, error) {
	var html string
	err := c.db.QueryRowContext(ctx, `SELECT html FROM renders WHERE key = ?`, key).Scan(&html)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, viewdocs.Errorf(viewdocs.ENOTFOUND, "render %q not cached", key)
	} else if err != nil {
		return nil, fmt.Errorf("get render: %w", err)
	}
	return []byte(html), nil
}

// Put stores html under key, replacing any previous value.
func (c *RenderCache) Put(ctx context.Context, key string, html []byte) error {
	if key == "" {
		return viewdocs.Errorf(viewdocs.EINVALID, "render cache key required")
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO renders (key, html, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET html = excluded.html, created_at = excluded.created_at
	`, key, string(html), c.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put render: %w", err)
	}
	return nil
}

// Prune deletes entries stored before cutoff and returns how many were removed.
func (c *RenderCache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM renders WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("prune renders: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune renders: %w", err)
	}
	return n, nil
}
