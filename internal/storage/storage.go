// Package storage persists privacy-conscious visitor and navigation records
// in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/letsjoyn/portfolio/internal/section"
)

// Visit is one tracked page request. The client IP is stored hashed only.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type SectionCount struct {
	Section section.ID `json:"section"`
	Count   int64      `json:"count"`
}

type Stats struct {
	TotalVisitors    int64          `json:"total_visitors"`
	UniqueVisitors   int64          `json:"unique_visitors"`
	VisitorsToday    int64          `json:"visitors_today"`
	VisitorsThisWeek int64          `json:"visitors_this_week"`
	TotalNavigations int64          `json:"total_navigations"`
	Navigations      []SectionCount `json:"navigations"`
	RecentVisitors   []Visit        `json:"recent_visitors"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite serialises writers anyway, and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			ts INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_ts ON visitors (ts)`,
		`CREATE TABLE IF NOT EXISTS navigations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			view_id TEXT NOT NULL,
			section TEXT NOT NULL,
			ts INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordNavigation(ctx context.Context, viewID string, id section.ID, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO navigations (view_id, section, ts) VALUES (?, ?, ?)`,
		viewID, string(id), at.Unix())
	if err != nil {
		return fmt.Errorf("record navigation: %w", err)
	}
	return nil
}

// VisitorCount is the number shown in the page footer.
func (s *Store) VisitorCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visitors: %w", err)
	}
	return n, nil
}

// Stats aggregates the admin dashboard figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	dayStart := now.UTC().Truncate(24 * time.Hour)
	weekStart := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{dayStart.Unix()}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{weekStart.Unix()}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM navigations`, nil, &stats.TotalNavigations},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT section, COUNT(*) AS n
		FROM navigations
		GROUP BY section
		ORDER BY n DESC, section ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("stats navigations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc SectionCount
		var name string
		if err := rows.Scan(&name, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan navigation count: %w", err)
		}
		sc.Section = section.ID(name)
		stats.Navigations = append(stats.Navigations, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats navigations: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), ts
		FROM visitors
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// PurgeVisitorsBefore deletes visitor records older than cutoff.
func (s *Store) PurgeVisitorsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE ts < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge visitors: %w", err)
	}
	return res.RowsAffected()
}
