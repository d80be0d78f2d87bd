package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
)

const dateLayout = "2006-01-02"

// workColumns is the canonical SELECT column list for works.
const workColumns = `id, title, status, deadline, created_at, updated_at`

// SQLiteWorkRepo implements WorkRepo using a SQLite database.
type SQLiteWorkRepo struct {
	db db.DBTX
}

// NewSQLiteWorkRepo creates a new SQLiteWorkRepo.
func NewSQLiteWorkRepo(dbtx db.DBTX) *SQLiteWorkRepo {
	return &SQLiteWorkRepo{db: dbtx}
}

func (r *SQLiteWorkRepo) Create(ctx context.Context, w *domain.Work) error {
	query := `INSERT INTO works (id, title, status, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		string(w.Status),
		nullableTimeToString(w.Deadline, dateLayout),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work: %w", err)
	}
	return nil
}

func (r *SQLiteWorkRepo) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works WHERE id = ?`
	return r.scanWork(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}
	defer rows.Close()

	var works []*domain.Work
	for rows.Next() {
		w, err := r.scanWorkRow(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

func (r *SQLiteWorkRepo) Update(ctx context.Context, w *domain.Work) error {
	query := `UPDATE works SET title = ?, status = ?, deadline = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		string(w.Status),
		nullableTimeToString(w.Deadline, dateLayout),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("work %s not found", w.ID)
	}
	return nil
}

func (r *SQLiteWorkRepo) Delete(ctx context.Context, id string) error {
	// Cascades remove the unit forest and snapshots; the work-scoped
	// stage table and registry are keyed by plain text and need explicit
	// cleanup.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE work_id = ?`, id); err != nil {
		return fmt.Errorf("deleting work stages: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM granularities WHERE work_id = ?`, id); err != nil {
		return fmt.Errorf("deleting work granularities: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("work %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteWorkRepo) scanWork(row *sql.Row) (*domain.Work, error) {
	w, err := scanWorkFrom(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work not found")
	}
	return w, err
}

func (r *SQLiteWorkRepo) scanWorkRow(rows *sql.Rows) (*domain.Work, error) {
	return scanWorkFrom(rows)
}

func scanWorkFrom(s rowScanner) (*domain.Work, error) {
	var w domain.Work
	var status, createdAt, updatedAt string
	var deadline sql.NullString

	if err := s.Scan(&w.ID, &w.Title, &status, &deadline, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work: %w", err)
	}

	w.Status = domain.WorkStatus(status)
	w.Deadline = parseNullableTime(deadline, dateLayout)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		w.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		w.UpdatedAt = t
	}
	return &w, nil
}
