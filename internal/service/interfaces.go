package service

import (
	"context"
	"time"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/workload"
)

// WorkService manages the work aggregate: its row, its unit forest and its
// work-scoped configuration.
type WorkService interface {
	// Create seeds a new work from the default settings. A non-empty
	// structure string overrides the registry's default hierarchy and must
	// validate against the registry's depth.
	Create(ctx context.Context, title string, deadline *time.Time, structureStr string) (*domain.Work, error)
	GetByID(ctx context.Context, id string) (*domain.Work, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Work, error)
	Rename(ctx context.Context, id, title string) error
	SetDeadline(ctx context.Context, id string, deadline *time.Time) error
	Complete(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// Tree mutations. Unknown unit ids follow the engine's no-op policy and
	// simply leave the forest unchanged.
	AddRootUnit(ctx context.Context, workID string) error
	AdvanceLeaf(ctx context.Context, workID, unitID string) error
	SetChildCount(ctx context.Context, workID, unitID string, count int) error
	RemoveUnit(ctx context.Context, workID, unitID string) error

	// ApplyStructure rebuilds the forest from a structure string;
	// RenderStructure is the inverse.
	ApplyStructure(ctx context.Context, workID, doc string) error
	RenderStructure(ctx context.Context, workID string) (string, error)
}

// SettingsService manages the default stage table and granularity registry
// that seed new works.
type SettingsService interface {
	// EnsureDefaults installs the built-in manga pipeline and registry when
	// the database has none yet.
	EnsureDefaults(ctx context.Context) error
	Stages(ctx context.Context) (domain.StageTable, error)
	SaveStages(ctx context.Context, stages domain.StageTable) error
	Granularities(ctx context.Context) (domain.Registry, error)
	SaveGranularities(ctx context.Context, reg domain.Registry) error
	// SetStageHours records a stage cost entered at any granularity,
	// back-deriving the stored finest-granularity value.
	SetStageHours(ctx context.Context, stageID int, hours float64, granularityID string) error
}

// Report is the full progress picture for one work.
type Report struct {
	Work    *domain.Work
	Summary workload.Summary
	Pace    workload.Pace
	// HoursPerGranularity renders the per-leaf total at every granularity.
	HoursPerGranularity map[string]float64
}

// ProgressService computes progress reports and manages snapshots.
type ProgressService interface {
	Report(ctx context.Context, workID string) (*Report, error)
	TakeSnapshot(ctx context.Context, workID string) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context, workID string) ([]*domain.Snapshot, error)
	// SnapshotReport replays a historical record against the work's current
	// stage table.
	SnapshotReport(ctx context.Context, snapshotID string) (*Report, error)
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}
