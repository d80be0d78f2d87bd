package service

import (
	"context"
	"time"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/workload"
	"github.com/google/uuid"
)

type progressService struct {
	works WorkService
	snaps repository.SnapshotRepo
	now   func() time.Time
}

func NewProgressService(works WorkService, snaps repository.SnapshotRepo) ProgressService {
	return &progressService{works: works, snaps: snaps, now: func() time.Time { return time.Now().UTC() }}
}

func (s *progressService) Report(ctx context.Context, workID string) (*Report, error) {
	w, err := s.works.GetByID(ctx, workID)
	if err != nil {
		return nil, err
	}
	return s.buildReport(w, workload.Summarize(w.Units, w.Stages)), nil
}

func (s *progressService) TakeSnapshot(ctx context.Context, workID string) (*domain.Snapshot, error) {
	w, err := s.works.GetByID(ctx, workID)
	if err != nil {
		return nil, err
	}
	snap := &domain.Snapshot{
		ID:      uuid.New().String(),
		WorkID:  w.ID,
		TakenAt: s.now(),
		Counts:  workload.CountByStage(w.Units, w.Stages),
	}
	if err := s.snaps.Create(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *progressService) ListSnapshots(ctx context.Context, workID string) ([]*domain.Snapshot, error) {
	return s.snaps.ListByWork(ctx, workID)
}

func (s *progressService) SnapshotReport(ctx context.Context, snapshotID string) (*Report, error) {
	snap, err := s.snaps.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	w, err := s.works.GetByID(ctx, snap.WorkID)
	if err != nil {
		return nil, err
	}
	return s.buildReport(w, workload.SummarizeSnapshot(snap.Counts, w.Stages)), nil
}

func (s *progressService) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	return s.snaps.Delete(ctx, snapshotID)
}

func (s *progressService) buildReport(w *domain.Work, summary workload.Summary) *Report {
	return &Report{
		Work:                w,
		Summary:             summary,
		Pace:                workload.RequiredPace(summary.RemainingHours, s.now(), w.Deadline),
		HoursPerGranularity: workload.HoursPerGranularity(w.Granularities, workload.TotalPerLeaf(w.Stages)),
	}
}
