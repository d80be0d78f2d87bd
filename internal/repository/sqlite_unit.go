package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
)

// SQLiteUnitRepo implements UnitRepo using a SQLite database. Run replaces
// inside a UnitOfWork: a failure mid-insert must not leave a half-written
// forest.
type SQLiteUnitRepo struct {
	db db.DBTX
}

// NewSQLiteUnitRepo creates a new SQLiteUnitRepo.
func NewSQLiteUnitRepo(dbtx db.DBTX) *SQLiteUnitRepo {
	return &SQLiteUnitRepo{db: dbtx}
}

func (r *SQLiteUnitRepo) ReplaceForWork(ctx context.Context, workID string, units []domain.WorkUnit) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_units WHERE work_id = ?`, workID); err != nil {
		return fmt.Errorf("clearing unit forest: %w", err)
	}
	return r.insertUnits(ctx, workID, nil, units)
}

func (r *SQLiteUnitRepo) insertUnits(ctx context.Context, workID string, parentID *string, units []domain.WorkUnit) error {
	query := `INSERT INTO work_units (id, work_id, parent_id, idx, stage_index) VALUES (?, ?, ?, ?, ?)`
	for _, u := range units {
		var stageIndex interface{}
		if leaf, isLeaf := u.(*domain.Leaf); isLeaf {
			stageIndex = leaf.StageIndex
		}
		if _, err := r.db.ExecContext(ctx, query, u.UnitID(), workID, parentID, u.UnitIndex(), stageIndex); err != nil {
			return fmt.Errorf("inserting work unit %s: %w", u.UnitID(), err)
		}
		if b, isBranch := u.(*domain.Branch); isBranch {
			id := b.ID
			if err := r.insertUnits(ctx, workID, &id, b.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *SQLiteUnitRepo) LoadForWork(ctx context.Context, workID string) ([]domain.WorkUnit, error) {
	query := `SELECT id, parent_id, idx, stage_index FROM work_units WHERE work_id = ?`
	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("loading unit forest: %w", err)
	}
	defer rows.Close()

	type row struct {
		id       string
		parentID sql.NullString
		idx      int
		unit     domain.WorkUnit
	}
	var all []*row
	for rows.Next() {
		var rec row
		var stageIndex sql.NullInt64
		if err := rows.Scan(&rec.id, &rec.parentID, &rec.idx, &stageIndex); err != nil {
			return nil, fmt.Errorf("scanning work unit: %w", err)
		}
		// A NULL stage_index marks a branch; anything else is a leaf.
		if stageIndex.Valid {
			rec.unit = &domain.Leaf{ID: rec.id, Index: rec.idx, StageIndex: int(stageIndex.Int64)}
		} else {
			rec.unit = &domain.Branch{ID: rec.id, Index: rec.idx}
		}
		all = append(all, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading work units: %w", err)
	}

	// Reassemble the forest: group children under parents, order by idx.
	sort.SliceStable(all, func(i, j int) bool { return all[i].idx < all[j].idx })
	byID := make(map[string]*row, len(all))
	for _, rec := range all {
		byID[rec.id] = rec
	}
	var roots []domain.WorkUnit
	for _, rec := range all {
		if !rec.parentID.Valid {
			roots = append(roots, rec.unit)
			continue
		}
		parent, ok := byID[rec.parentID.String]
		if !ok {
			return nil, fmt.Errorf("work unit %s references missing parent %s", rec.id, rec.parentID.String)
		}
		branch, isBranch := parent.unit.(*domain.Branch)
		if !isBranch {
			return nil, fmt.Errorf("work unit %s has leaf parent %s", rec.id, rec.parentID.String)
		}
		branch.Children = append(branch.Children, rec.unit)
	}
	return roots, nil
}
