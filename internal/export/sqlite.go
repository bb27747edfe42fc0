package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitecontent/internal/content"
)

const schema = `
DROP TABLE IF EXISTS pages;
DROP TABLE IF EXISTS sections;
DROP TABLE IF EXISTS assets;
DROP TABLE IF EXISTS version_scopes;
CREATE TABLE pages (
	route TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	source_path TEXT NOT NULL,
	parent TEXT,
	id TEXT,
	title TEXT,
	description TEXT,
	label TEXT,
	layout TEXT,
	version TEXT,
	version_scope TEXT,
	is_index INTEGER NOT NULL,
	is_dynamic INTEGER NOT NULL,
	hidden INTEGER NOT NULL,
	source TEXT NOT NULL,
	build_id TEXT NOT NULL
);
CREATE TABLE sections (
	route TEXT NOT NULL,
	position INTEGER NOT NULL,
	section_id TEXT NOT NULL,
	parent_section TEXT,
	stable_id TEXT NOT NULL,
	type TEXT,
	hash TEXT NOT NULL,
	source TEXT NOT NULL,
	params TEXT,
	content TEXT,
	PRIMARY KEY (route, position)
);
CREATE INDEX idx_sections_stable_id ON sections(stable_id);
CREATE TABLE assets (
	path TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	present INTEGER NOT NULL,
	size INTEGER NOT NULL,
	optimize INTEGER NOT NULL,
	referenced_by TEXT NOT NULL
);
CREATE TABLE version_scopes (
	scope TEXT NOT NULL,
	version_id TEXT NOT NULL,
	label TEXT NOT NULL,
	latest INTEGER NOT NULL,
	deprecated INTEGER NOT NULL,
	route TEXT NOT NULL,
	PRIMARY KEY (scope, version_id)
);
`

// SQLiteWriter exports the document into a SQLite database. Every write
// replaces the previous build's rows in one transaction.
type SQLiteWriter struct {
	path string
	mu   sync.Mutex
}

// NewSQLiteWriter returns a writer for the database file at path.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{path: path}
}

// Open opens the export database.
func (w *SQLiteWriter) Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", w.path)
	if err != nil {
		return nil, exportError(err, "open sqlite database", w.path)
	}
	return db, nil
}

func (w *SQLiteWriter) Write(ctx context.Context, sc *content.SiteContent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	db, err := w.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := WriteTables(ctx, db, sc); err != nil {
		return exportError(err, "write sqlite export", w.path)
	}
	return nil
}

// WriteTables recreates the export tables on db and fills them from sc.
func WriteTables(ctx context.Context, db *sql.DB, sc *content.SiteContent) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fill(ctx, tx, sc); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func fill(ctx context.Context, tx *sql.Tx, sc *content.SiteContent) error {
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	pageStmt, err := tx.PrepareContext(ctx, `INSERT INTO pages
		(route, position, source_path, parent, id, title, description, label, layout, version, version_scope, is_index, is_dynamic, hidden, source, build_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare pages: %w", err)
	}
	defer pageStmt.Close()

	sectionStmt, err := tx.PrepareContext(ctx, `INSERT INTO sections
		(route, position, section_id, parent_section, stable_id, type, hash, source, params, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare sections: %w", err)
	}
	defer sectionStmt.Close()

	for i := range sc.Pages {
		p := &sc.Pages[i]
		if _, err := pageStmt.ExecContext(ctx,
			p.Route, i, p.SourcePath, nullable(p.Parent), p.ID, p.Title, p.Description, p.Label,
			p.Layout.Name, p.Version, p.VersionScope, p.IsIndex, p.IsDynamic, p.Hidden, p.Source, sc.Build.ID,
		); err != nil {
			return fmt.Errorf("insert page %s: %w", p.Route, err)
		}
		pos := 0
		var insert func(list []*content.Section, parent *string) error
		insert = func(list []*content.Section, parent *string) error {
			for _, s := range list {
				params, err := jsonText(s.Params)
				if err != nil {
					return err
				}
				body, err := jsonText(s.Content)
				if err != nil {
					return err
				}
				if _, err := sectionStmt.ExecContext(ctx,
					p.Route, pos, s.ID, nullable(parent), s.StableID, s.Type, s.Hash, s.Source, params, body,
				); err != nil {
					return fmt.Errorf("insert section %s of %s: %w", s.ID, p.Route, err)
				}
				pos++
				id := s.ID
				if err := insert(s.Subsections, &id); err != nil {
					return err
				}
			}
			return nil
		}
		if err := insert(p.Sections, nil); err != nil {
			return err
		}
	}

	paths := make([]string, 0, len(sc.Assets))
	for k := range sc.Assets {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	for _, k := range paths {
		a := sc.Assets[k]
		refs, err := jsonText(a.ReferencedBy)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO assets (path, kind, present, size, optimize, referenced_by) VALUES (?, ?, ?, ?, ?, ?)`,
			k, string(a.Kind), a.Exists, a.Size, a.Optimize, refs,
		); err != nil {
			return fmt.Errorf("insert asset %s: %w", k, err)
		}
	}

	for scope, meta := range sc.VersionScopes {
		for _, v := range meta.Versions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO version_scopes (scope, version_id, label, latest, deprecated, route) VALUES (?, ?, ?, ?, ?, ?)`,
				scope, v.ID, v.Label, v.Latest, v.Deprecated, v.Route,
			); err != nil {
				return fmt.Errorf("insert version %s of %s: %w", v.ID, scope, err)
			}
		}
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func jsonText(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal column: %w", err)
	}
	return string(b), nil
}
