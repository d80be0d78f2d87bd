package repository

import (
	"context"

	"github.com/Yotsura/mangaflow/internal/domain"
)

// WorkRepo persists work rows. The unit forest and the work-scoped config
// live in their own repositories; services assemble the full aggregate.
type WorkRepo interface {
	Create(ctx context.Context, w *domain.Work) error
	GetByID(ctx context.Context, id string) (*domain.Work, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Work, error)
	Update(ctx context.Context, w *domain.Work) error
	Delete(ctx context.Context, id string) error
}

// UnitRepo persists a work's unit forest wholesale. Trees are small (tens
// to low thousands of leaves) and every mutation renumbers siblings, so a
// full replace inside a transaction beats row-level diffing.
type UnitRepo interface {
	ReplaceForWork(ctx context.Context, workID string, units []domain.WorkUnit) error
	LoadForWork(ctx context.Context, workID string) ([]domain.WorkUnit, error)
}

// StageRepo persists a stage table per scope: a work id, or the empty
// default scope that seeds new works.
type StageRepo interface {
	Replace(ctx context.Context, workID string, stages domain.StageTable) error
	Load(ctx context.Context, workID string) (domain.StageTable, error)
}

// GranularityRepo persists a granularity registry per scope, like StageRepo.
type GranularityRepo interface {
	Replace(ctx context.Context, workID string, reg domain.Registry) error
	Load(ctx context.Context, workID string) (domain.Registry, error)
}

// SnapshotRepo persists point-in-time progress records.
type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	ListByWork(ctx context.Context, workID string) ([]*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
}
