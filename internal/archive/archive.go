// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists every completed search's papers in a local
// SQLite database with full-text retrieval. The archive is optional
// and advisory: recording failures are logged by callers, never fatal
// to a search.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// Archive manages the paper archive database.
type Archive struct {
	db   *sql.DB
	path string
}

// Open opens or creates the archive database at cfg.Path, creating the
// schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &Archive{db: db, path: cfg.Path}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createSchema() error {
	if _, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		abstract TEXT,
		authors TEXT,
		published TEXT,
		url TEXT,
		pdf_url TEXT,
		categories TEXT,
		relevance_score REAL,
		recorded_at TEXT
	)`); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := a.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, authors, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, authors)
				VALUES (new.rowid, new.title, new.abstract, new.authors);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, authors)
				VALUES('delete', old.rowid, old.title, old.abstract, old.authors);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, authors)
				VALUES('delete', old.rowid, old.title, old.abstract, old.authors);
				INSERT INTO papers_fts(rowid, title, abstract, authors)
				VALUES (new.rowid, new.title, new.abstract, new.authors);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := a.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Record upserts the papers by arXiv ID. Later recordings of the same
// paper overwrite earlier ones.
func (a *Archive) Record(ctx context.Context, papers []types.PaperRecord) error {
	if len(papers) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (id, title, abstract, authors, published, url, pdf_url, categories, relevance_score, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, authors=excluded.authors,
			published=excluded.published, url=excluded.url, pdf_url=excluded.pdf_url,
			categories=excluded.categories, relevance_score=excluded.relevance_score,
			recorded_at=excluded.recorded_at`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range papers {
		authorsJSON, _ := json.Marshal(p.Authors)
		categoriesJSON, _ := json.Marshal(p.Categories)
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Abstract, string(authorsJSON), published,
			p.URL, p.PDFURL, string(categoriesJSON), p.RelevanceScore, now,
		); err != nil {
			return fmt.Errorf("upserting paper %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Search runs an FTS5 MATCH query over title, abstract, and authors,
// ordered by bm25 relevance, returning at most limit papers.
func (a *Archive) Search(ctx context.Context, term string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.abstract, p.authors, p.published, p.url, p.pdf_url, p.categories, p.relevance_score
		 FROM papers_fts f
		 JOIN papers p ON p.rowid = f.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY bm25(papers_fts)
		 LIMIT ?`,
		quoteFTSTerm(term), limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

func scanPaper(rows *sql.Rows) (types.PaperRecord, error) {
	var p types.PaperRecord
	var authorsJSON, categoriesJSON, published string
	if err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &authorsJSON, &published,
		&p.URL, &p.PDFURL, &categoriesJSON, &p.RelevanceScore); err != nil {
		return p, fmt.Errorf("scanning paper row: %w", err)
	}
	json.Unmarshal([]byte(authorsJSON), &p.Authors)
	json.Unmarshal([]byte(categoriesJSON), &p.Categories)
	if published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			p.Published = t
		}
	}
	return p, nil
}

// quoteFTSTerm wraps each word in double quotes so user text cannot be
// parsed as FTS5 query syntax.
func quoteFTSTerm(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, ``) + `"`
	}
	return strings.Join(words, " ")
}

// ArchiveStats summarizes the archive contents.
type ArchiveStats struct {
	PaperCount    int   `json:"paper_count" yaml:"paper_count"`
	DBSizeBytes   int64 `json:"db_size_bytes" yaml:"db_size_bytes"`
	DistinctYears int   `json:"distinct_years" yaml:"distinct_years"`
}

// Stats aggregates archive metrics without mutating state.
func (a *Archive) Stats(ctx context.Context) (ArchiveStats, error) {
	var stats ArchiveStats
	if err := a.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&stats.PaperCount); err != nil {
		return stats, fmt.Errorf("counting papers: %w", err)
	}
	if err := a.db.QueryRowContext(ctx,
		`SELECT count(DISTINCT substr(published, 1, 4)) FROM papers WHERE published != ''`,
	).Scan(&stats.DistinctYears); err != nil {
		return stats, fmt.Errorf("counting years: %w", err)
	}
	if info, err := os.Stat(a.path); err == nil {
		stats.DBSizeBytes = info.Size()
	}
	return stats, nil
}
