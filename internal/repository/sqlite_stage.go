package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
)

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo.
func NewSQLiteStageRepo(dbtx db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: dbtx}
}

func (r *SQLiteStageRepo) Replace(ctx context.Context, workID string, stages domain.StageTable) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE work_id = ?`, workID); err != nil {
		return fmt.Errorf("clearing stage table: %w", err)
	}
	query := `INSERT INTO stages (work_id, stage_id, position, label, color, base_hours)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, s := range stages {
		_, err := r.db.ExecContext(ctx, query,
			workID, s.ID, i, s.Label, s.Color, nullableFloatToValue(s.BaseHours))
		if err != nil {
			return fmt.Errorf("inserting stage %d: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteStageRepo) Load(ctx context.Context, workID string) (domain.StageTable, error) {
	query := `SELECT stage_id, label, color, base_hours FROM stages
		WHERE work_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("loading stage table: %w", err)
	}
	defer rows.Close()

	var stages domain.StageTable
	for rows.Next() {
		var s domain.Stage
		var baseHours sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.Label, &s.Color, &baseHours); err != nil {
			return nil, fmt.Errorf("scanning stage: %w", err)
		}
		if baseHours.Valid {
			v := baseHours.Float64
			s.BaseHours = &v
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}
