package store

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// queries wraps the dotsql named-query set loaded from embedded .sql
// files. Queries are written with ? placeholders and rebound per driver
// through sqlx.Rebind at call sites.
type queries struct {
	dot *dotsql.DotSql
}

// loadQueries loads all .sql files from the embedded filesystem.
func loadQueries() (*queries, error) {
	var combinedSQL string

	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		combinedSQL += string(content) + "\n"
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combinedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}

	return &queries{dot: dot}, nil
}

// raw returns the named query text or an error naming the missing query.
func (q *queries) raw(name string) (string, error) {
	stmt, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query %q: %w", name, err)
	}
	return stmt, nil
}
