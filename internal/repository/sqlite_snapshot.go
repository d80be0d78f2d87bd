package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(dbtx db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: dbtx}
}

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (id, work_id, taken_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.WorkID, s.TakenAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	countQuery := `INSERT INTO snapshot_counts (snapshot_id, stage_id, count) VALUES (?, ?, ?)`
	for _, c := range s.Counts {
		if _, err := r.db.ExecContext(ctx, countQuery, s.ID, c.StageID, c.Count); err != nil {
			return fmt.Errorf("inserting snapshot count for stage %d: %w", c.StageID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT id, work_id, taken_at FROM snapshots WHERE id = ?`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadCounts(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSnapshotRepo) ListByWork(ctx context.Context, workID string) ([]*domain.Snapshot, error) {
	query := `SELECT id, work_id, taken_at FROM snapshots WHERE work_id = ? ORDER BY taken_at`
	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var takenAt string
		if err := rows.Scan(&s.ID, &s.WorkID, &takenAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			s.TakenAt = t
		}
		snaps = append(snaps, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range snaps {
		if err := r.loadCounts(ctx, s); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("snapshot %s not found", id)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) loadCounts(ctx context.Context, s *domain.Snapshot) error {
	query := `SELECT stage_id, count FROM snapshot_counts WHERE snapshot_id = ? ORDER BY stage_id`
	rows, err := r.db.QueryContext(ctx, query, s.ID)
	if err != nil {
		return fmt.Errorf("loading snapshot counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.StageCount
		if err := rows.Scan(&c.StageID, &c.Count); err != nil {
			return fmt.Errorf("scanning snapshot count: %w", err)
		}
		s.Counts = append(s.Counts, c)
	}
	return rows.Err()
}

func scanSnapshot(row *sql.Row) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var takenAt string
	if err := row.Scan(&s.ID, &s.WorkID, &takenAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found")
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
		s.TakenAt = t
	}
	return &s, nil
}
