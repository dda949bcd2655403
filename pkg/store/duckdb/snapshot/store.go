package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seo-tools/traffic-atlas/pkg/models/store"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb"
)

// Store persists collection runs so reports can be re-rendered and compared
// without refetching the GA4 API.
type Store interface {
	AddRun(ctx context.Context, run store.Run, records []store.TrafficRecord) error
	FindRun(ctx context.Context, property string, rangeStart, rangeEnd time.Time) (*store.Run, error)
	GetRecords(ctx context.Context, runID string) ([]store.TrafficRecord, error)
	ListRuns(ctx context.Context, property string) ([]store.Run, error)
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) AddRun(ctx context.Context, run store.Run, records []store.TrafficRecord) error {
	tx := duckdb.GetTransaction(ctx)
	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, property, range_start, range_end, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Property, run.RangeStart, run.RangeEnd, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO traffic_rows (
			run_id, axis, dimension, seq, sessions, total_users, new_users,
			conversions, total_revenue, engagement_rate, bounce_rate, avg_session_duration
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	// seq keeps the fetch order stable across replays.
	for seq, record := range records {
		_, err = stmt.ExecContext(ctx,
			run.ID,
			record.Axis,
			record.Dimension,
			seq,
			record.Sessions,
			record.TotalUsers,
			record.NewUsers,
			record.Conversions,
			record.TotalRevenue,
			record.EngagementRate,
			record.BounceRate,
			record.AvgSessionDuration,
		)
		if err != nil {
			return fmt.Errorf("insert traffic row: %w", err)
		}
	}

	if ownTx {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
	}
	return nil
}

func (s *snapshotStore) FindRun(ctx context.Context, property string, rangeStart, rangeEnd time.Time) (*store.Run, error) {
	query := `
		SELECT id, property, range_start, range_end, created_at
		FROM runs
		WHERE property = ? AND range_start = ? AND range_end = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, property, rangeStart, rangeEnd)

	var run store.Run
	err := row.Scan(&run.ID, &run.Property, &run.RangeStart, &run.RangeEnd, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return &run, nil
}

func (s *snapshotStore) GetRecords(ctx context.Context, runID string) ([]store.TrafficRecord, error) {
	query := `
		SELECT run_id, axis, dimension, sessions, total_users, new_users,
		       conversions, total_revenue, engagement_rate, bounce_rate, avg_session_duration
		FROM traffic_rows
		WHERE run_id = ?
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query traffic rows: %w", err)
	}
	defer rows.Close()

	var records []store.TrafficRecord
	for rows.Next() {
		var r store.TrafficRecord
		err := rows.Scan(
			&r.RunID, &r.Axis, &r.Dimension, &r.Sessions, &r.TotalUsers, &r.NewUsers,
			&r.Conversions, &r.TotalRevenue, &r.EngagementRate, &r.BounceRate, &r.AvgSessionDuration,
		)
		if err != nil {
			return nil, fmt.Errorf("scan traffic row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *snapshotStore) ListRuns(ctx context.Context, property string) ([]store.Run, error) {
	query := `
		SELECT id, property, range_start, range_end, created_at
		FROM runs
		WHERE property = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, property)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		err := rows.Scan(&run.ID, &run.Property, &run.RangeStart, &run.RangeEnd, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
