package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theogravity/config-ready/internal/config"
	"github.com/theogravity/config-ready/internal/types"
)

// Document is one stored settings document version. UUIDv7 snapshot IDs
// sort by creation time, so the latest version of a name is the highest ID.
type Document struct {
	SnapshotID types.SnapshotID `db:"snapshot_id"`
	Name       string           `db:"name"`
	Body       []byte           `db:"body"`
	CreatedAt  time.Time        `db:"created_at"`
}

// SaveDocument validates and persists a settings document under name,
// returning the new snapshot ID. The body is parsed before insert so the
// store never holds a document the evaluator would reject.
func (s *Store) SaveDocument(ctx context.Context, name string, body []byte) (types.SnapshotID, error) {
	if name == "" {
		return "", fmt.Errorf("document name is required")
	}
	if _, err := config.ParseDocument(body); err != nil {
		return "", err
	}

	stmt, err := s.queries.raw("insert-document")
	if err != nil {
		return "", err
	}

	id := types.NewSnapshotID()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(stmt),
		string(id), name, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return id, nil
}

// Document fetches one document version by snapshot ID.
func (s *Store) Document(ctx context.Context, id types.SnapshotID) (*Document, error) {
	stmt, err := s.queries.raw("get-document")
	if err != nil {
		return nil, err
	}
	return s.fetchDocument(ctx, stmt, string(id))
}

// LatestDocument fetches the newest version stored under name.
func (s *Store) LatestDocument(ctx context.Context, name string) (*Document, error) {
	stmt, err := s.queries.raw("latest-document")
	if err != nil {
		return nil, err
	}
	return s.fetchDocument(ctx, stmt, name)
}

// LoadEntries fetches the latest document under name and parses it into
// evaluator entries.
func (s *Store) LoadEntries(ctx context.Context, name string) ([]types.Entry, error) {
	doc, err := s.LatestDocument(ctx, name)
	if err != nil {
		return nil, err
	}
	return config.ParseDocument(doc.Body)
}

// DocumentVersion summarizes one stored version for listings.
type DocumentVersion struct {
	SnapshotID types.SnapshotID `db:"snapshot_id"`
	Name       string           `db:"name"`
	CreatedAt  time.Time        `db:"created_at"`
}

// ListDocuments returns all stored versions of name, newest first.
func (s *Store) ListDocuments(ctx context.Context, name string) ([]DocumentVersion, error) {
	stmt, err := s.queries.raw("list-documents")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(stmt), name)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var versions []DocumentVersion
	for rows.Next() {
		var id, docName, created string
		if err := rows.Scan(&id, &docName, &created); err != nil {
			return nil, err
		}
		v, err := versionFromRow(id, docName, created)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// fetchDocument runs a single-row document query.
func (s *Store) fetchDocument(ctx context.Context, stmt, arg string) (*Document, error) {
	var id, name, body, created string
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(stmt), arg).
		Scan(&id, &name, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", arg, types.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	v, err := versionFromRow(id, name, created)
	if err != nil {
		return nil, err
	}
	return &Document{
		SnapshotID: v.SnapshotID,
		Name:       v.Name,
		Body:       []byte(body),
		CreatedAt:  v.CreatedAt,
	}, nil
}

// versionFromRow validates scanned row fields. Timestamps are stored as
// RFC 3339 text in both backends for uniform scanning.
func versionFromRow(id, name, created string) (DocumentVersion, error) {
	snapshotID, err := types.ParseSnapshotID(id)
	if err != nil {
		return DocumentVersion{}, fmt.Errorf("malformed snapshot_id %q: %w", id, err)
	}
	createdAt, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return DocumentVersion{}, fmt.Errorf("malformed created_at %q: %w", created, err)
	}
	return DocumentVersion{SnapshotID: snapshotID, Name: name, CreatedAt: createdAt}, nil
}
