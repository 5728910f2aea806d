// Package index caches scan results in a SQLite database inside the
// library, so listing and facet queries don't rescan the tree.
package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/model"
)

// Database is the SQLite cache handle.
type Database struct {
	db *sql.DB
}

// Open opens or creates the cache database under the library's settings
// directory.
func Open(libraryPath string) (*Database, error) {
	dbDir := filepath.Join(libraryPath, config.SettingsDir)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.SettingsDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		path TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		presenter TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		date_added TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		completion_date TEXT NOT NULL DEFAULT '',
		duration INTEGER NOT NULL DEFAULT 0,
		item_count INTEGER NOT NULL DEFAULT 0,
		pages INTEGER NOT NULL DEFAULT 0,
		external_id TEXT NOT NULL DEFAULT '',
		categories TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
	CREATE INDEX IF NOT EXISTS idx_records_status ON records(status);

	CREATE TABLE IF NOT EXISTS record_facets (
		path TEXT NOT NULL,
		facet TEXT NOT NULL,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_facets_facet ON record_facets(facet, value);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Rebuild replaces the cache contents with a fresh scan's records in one
// transaction.
func (d *Database) Rebuild(records []model.Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM record_facets`); err != nil {
		return err
	}

	insertRecord, err := tx.Prepare(`
		INSERT INTO records (path, id, kind, title, presenter, author, status,
			language, date_added, start_date, completion_date, duration,
			item_count, pages, external_id, categories, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertRecord.Close()

	insertFacet, err := tx.Prepare(`INSERT INTO record_facets (path, facet, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertFacet.Close()

	for _, r := range records {
		categories, _ := json.Marshal(r.Categories)
		tags, _ := json.Marshal(r.Tags)
		if _, err := insertRecord.Exec(r.Path, r.ID, string(r.Kind), r.Title,
			r.Presenter, r.Author, r.Status, r.Language, r.DateAdded,
			r.StartDate, r.CompletionDate, r.Duration, r.ItemCount, r.Pages,
			r.ExternalID, string(categories), string(tags)); err != nil {
			return err
		}
		for _, c := range r.Categories {
			if _, err := insertFacet.Exec(r.Path, "category", c); err != nil {
				return err
			}
		}
		for _, t := range r.Tags {
			if _, err := insertFacet.Exec(r.Path, "tag", t); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Filter narrows a Records query. Empty fields match everything.
type Filter struct {
	Kind   string
	Status string
}

// Records returns cached records matching the filter, ordered by path.
func (d *Database) Records(filter Filter) ([]model.Record, error) {
	query := `
		SELECT path, id, kind, title, presenter, author, status, language,
			date_added, start_date, completion_date, duration, item_count,
			pages, external_id, categories, tags
		FROM records WHERE 1=1`
	var args []interface{}
	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY path`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var kind, categories, tags string
		if err := rows.Scan(&r.Path, &r.ID, &kind, &r.Title, &r.Presenter,
			&r.Author, &r.Status, &r.Language, &r.DateAdded, &r.StartDate,
			&r.CompletionDate, &r.Duration, &r.ItemCount, &r.Pages,
			&r.ExternalID, &categories, &tags); err != nil {
			return nil, err
		}
		r.Kind = model.Kind(kind)
		_ = json.Unmarshal([]byte(categories), &r.Categories)
		_ = json.Unmarshal([]byte(tags), &r.Tags)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Facets returns the distinct parties, categories, and tags, each sorted
// ascending.
func (d *Database) Facets() (model.Facets, error) {
	var facets model.Facets

	parties, err := d.stringColumn(`
		SELECT DISTINCT party FROM (
			SELECT presenter AS party FROM records WHERE presenter != ''
			UNION
			SELECT author AS party FROM records WHERE author != ''
		) ORDER BY party`)
	if err != nil {
		return facets, err
	}
	facets.Parties = parties

	facets.Categories, err = d.stringColumn(
		`SELECT DISTINCT value FROM record_facets WHERE facet = 'category' ORDER BY value`)
	if err != nil {
		return facets, err
	}

	facets.Tags, err = d.stringColumn(
		`SELECT DISTINCT value FROM record_facets WHERE facet = 'tag' ORDER BY value`)
	return facets, err
}

func (d *Database) stringColumn(query string) ([]string, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
