// Package store archives finished StyleReports in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dgallion1/stylegest/internal/report"
)

// ErrNotFound is returned when no report has the requested ID.
var ErrNotFound = errors.New("report not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reports (
	id              TEXT PRIMARY KEY,
	journal_name    TEXT NOT NULL,
	papers_analyzed INTEGER NOT NULL,
	created_at      INTEGER NOT NULL,
	report_json     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
`

// Store is a SQLite-backed report archive.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Meta describes a stored report without its body.
type Meta struct {
	ID             string    `json:"id"`
	JournalName    string    `json:"journal_name"`
	PapersAnalyzed int       `json:"papers_analyzed"`
	CreatedAt      time.Time `json:"created_at"`
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r under id, replacing any report with the same id.
func (s *Store) Save(ctx context.Context, id string, r report.StyleReport) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reports (id, journal_name, papers_analyzed, created_at, report_json)
		VALUES (?, ?, ?, ?, ?)`,
		id, r.Metadata.JournalName, r.Metadata.PapersAnalyzed, s.now().UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("insert report %s: %w", id, err)
	}
	return nil
}

// Get loads one report.
func (s *Store) Get(ctx context.Context, id string) (report.StyleReport, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return report.StyleReport{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return report.StyleReport{}, fmt.Errorf("query report %s: %w", id, err)
	}
	var r report.StyleReport
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return report.StyleReport{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return r, nil
}

// List returns up to limit reports, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, journal_name, papers_analyzed, created_at
		FROM reports ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := []Meta{}
	for rows.Next() {
		var m Meta
		var created int64
		if err := rows.Scan(&m.ID, &m.JournalName, &m.PapersAnalyzed, &created); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes one report.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
