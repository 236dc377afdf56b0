package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/repository"
)

// compile-time check that *DB implements repository.ContentRepository
var _ repository.ContentRepository = (*DB)(nil)

const contentColumns = `id, title, content_type, text, keywords, user_id, created_at`

// CreateContent inserts a new content record.
//
// The repository owns ID generation (xid: 20 chars, URL-safe, sortable by
// creation time) and the created_at timestamp. The caller's struct is
// modified in place, which is why this takes a pointer.
func (db *DB) CreateContent(ctx context.Context, content *model.Content) error {
	content.ID = xid.New().String()
	content.CreatedAt = time.Now()

	// Parameterized query — the driver escapes every value, so a keyword
	// string containing quotes can't break out of the INSERT.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO contents (id, title, content_type, text, keywords, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		content.ID,
		content.Title,
		content.ContentType,
		content.Text,
		content.Keywords,
		content.UserID,
		content.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating content: %w", err)
	}

	return nil
}

// GetContentByID retrieves a single record, scoped to its owner.
//
// The WHERE clause filters on BOTH id and user_id: a record that exists but
// belongs to someone else produces the same NotFound as a record that
// doesn't exist at all. Callers can't distinguish the two, by contract.
func (db *DB) GetContentByID(ctx context.Context, id, ownerID string) (*model.Content, error) {
	var c model.Content

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+contentColumns+`
		 FROM contents
		 WHERE id = ? AND user_id = ?`,
		id, ownerID,
	).Scan(
		&c.ID,
		&c.Title,
		&c.ContentType,
		&c.Text,
		&c.Keywords,
		&c.UserID,
		&c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("content", id)
		}
		return nil, fmt.Errorf("sqlite: getting content %s: %w", id, err)
	}

	return &c, nil
}

// ListContentByOwner retrieves a page of the owner's records, newest first.
func (db *DB) ListContentByOwner(ctx context.Context, ownerID string, opts repository.ListOptions) ([]model.Content, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contentColumns+`
		 FROM contents
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing content: %w", err)
	}
	defer rows.Close()

	return scanContents(rows, limit)
}

// AllContentByOwner retrieves every record the owner has, unpaginated.
// The analytics aggregator reads the full set on every call — no caching.
func (db *DB) AllContentByOwner(ctx context.Context, ownerID string) ([]model.Content, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contentColumns+`
		 FROM contents
		 WHERE user_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading content for user %s: %w", ownerID, err)
	}
	defer rows.Close()

	return scanContents(rows, 16)
}

// CountContentByType returns one (type, count) pair per distinct
// content_type among the owner's records.
//
// The grouping is exact and case-sensitive — "Blog" and "blog" are separate
// rows in the result. Pair order is whatever GROUP BY yields; the contract
// leaves it unspecified.
func (db *DB) CountContentByType(ctx context.Context, ownerID string) ([]model.TypeCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT content_type, COUNT(id)
		 FROM contents
		 WHERE user_id = ?
		 GROUP BY content_type`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting content by type: %w", err)
	}
	defer rows.Close()

	counts := make([]model.TypeCount, 0, 8)
	for rows.Next() {
		var tc model.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning type count row: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating type counts: %w", err)
	}

	return counts, nil
}

// scanContents drains a result set into a slice. Shared by the two listing
// queries, which select the same columns in the same order.
func scanContents(rows *sql.Rows, sizeHint int) ([]model.Content, error) {
	contents := make([]model.Content, 0, sizeHint)

	for rows.Next() {
		var c model.Content
		if err := rows.Scan(
			&c.ID, &c.Title, &c.ContentType, &c.Text,
			&c.Keywords, &c.UserID, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning content row: %w", err)
		}
		contents = append(contents, c)
	}

	// rows.Err() catches errors that happened DURING iteration (e.g. the
	// connection dropping mid-scan) — rows.Next() just returns false.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating content rows: %w", err)
	}

	return contents, nil
}
