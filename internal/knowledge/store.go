// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge caches extracted manual pages in SQLite so a restart
// does not re-parse an unchanged PDF. Entries are keyed by file path and
// invalidated when the file's modification time or size changes.
package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/swat-chat/pkg/types"
)

// Store manages the page cache database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the cache database at dbPath and creates the
// schema if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			page_count INTEGER NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			path TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (path, number)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Source identifies a cached file version.
type Source struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// SourceOf stats path and returns its cache key.
func SourceOf(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, err
	}
	return Source{Path: path, ModTime: info.ModTime(), Size: info.Size()}, nil
}

func (src Source) modTime() string {
	return src.ModTime.UTC().Format(time.RFC3339Nano)
}

// Pages returns the cached pages of src in page order. The boolean is false
// when nothing is cached or the cached entry belongs to another version of
// the file.
func (s *Store) Pages(ctx context.Context, src Source) ([]types.Page, bool, error) {
	var storedModTime string
	var storedSize int64
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT file_mod_time, file_size, page_count FROM sources WHERE path = ?`, src.Path,
	).Scan(&storedModTime, &storedSize, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading source %s: %w", src.Path, err)
	}
	if storedModTime != src.modTime() || storedSize != src.Size {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT number, content FROM pages WHERE path = ? ORDER BY number`, src.Path)
	if err != nil {
		return nil, false, fmt.Errorf("reading pages: %w", err)
	}
	defer rows.Close()

	pages := make([]types.Page, 0, count)
	for rows.Next() {
		var p types.Page
		if err := rows.Scan(&p.Number, &p.Content); err != nil {
			return nil, false, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(pages) != count {
		return nil, false, nil
	}
	return pages, true, nil
}

// Replace stores pages as the cached content of src, discarding any
// previous entry for the same path.
func (s *Store) Replace(ctx context.Context, src Source, pages []types.Page) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE path = ?`, src.Path); err != nil {
		return fmt.Errorf("deleting pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (path, file_mod_time, file_size, page_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			file_mod_time = excluded.file_mod_time,
			file_size = excluded.file_size,
			page_count = excluded.page_count,
			indexed_at = excluded.indexed_at`,
		src.Path, src.modTime(), src.Size, len(pages), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("upserting source: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (path, number, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, src.Path, p.Number, p.Content); err != nil {
			return fmt.Errorf("inserting page %d: %w", p.Number, err)
		}
	}
	return tx.Commit()
}
