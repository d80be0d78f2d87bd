package repository

import (
	"context"
	"fmt"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
)

// SQLiteGranularityRepo implements GranularityRepo using a SQLite database.
type SQLiteGranularityRepo struct {
	db db.DBTX
}

// NewSQLiteGranularityRepo creates a new SQLiteGranularityRepo.
func NewSQLiteGranularityRepo(dbtx db.DBTX) *SQLiteGranularityRepo {
	return &SQLiteGranularityRepo{db: dbtx}
}

func (r *SQLiteGranularityRepo) Replace(ctx context.Context, workID string, reg domain.Registry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM granularities WHERE work_id = ?`, workID); err != nil {
		return fmt.Errorf("clearing granularity registry: %w", err)
	}
	query := `INSERT INTO granularities (work_id, gran_id, position, label, weight, default_count)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, g := range reg {
		_, err := r.db.ExecContext(ctx, query, workID, g.ID, i, g.Label, g.Weight, g.DefaultCount)
		if err != nil {
			return fmt.Errorf("inserting granularity %s: %w", g.ID, err)
		}
	}
	return nil
}

func (r *SQLiteGranularityRepo) Load(ctx context.Context, workID string) (domain.Registry, error) {
	query := `SELECT gran_id, label, weight, default_count FROM granularities
		WHERE work_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("loading granularity registry: %w", err)
	}
	defer rows.Close()

	var reg domain.Registry
	for rows.Next() {
		var g domain.Granularity
		if err := rows.Scan(&g.ID, &g.Label, &g.Weight, &g.DefaultCount); err != nil {
			return nil, fmt.Errorf("scanning granularity: %w", err)
		}
		reg = append(reg, g)
	}
	return reg, rows.Err()
}
