package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/structure"
	"github.com/google/uuid"
)

type workService struct {
	works repository.WorkRepo
	units repository.UnitRepo
	stage repository.StageRepo
	grans repository.GranularityRepo
	uow   db.UnitOfWork
}

func NewWorkService(
	works repository.WorkRepo,
	units repository.UnitRepo,
	stage repository.StageRepo,
	grans repository.GranularityRepo,
	uow db.UnitOfWork,
) WorkService {
	return &workService{works: works, units: units, stage: stage, grans: grans, uow: uow}
}

func (s *workService) Create(ctx context.Context, title string, deadline *time.Time, structureStr string) (*domain.Work, error) {
	stages, err := s.stage.Load(ctx, domain.DefaultScope)
	if err != nil {
		return nil, err
	}
	reg, err := s.grans.Load(ctx, domain.DefaultScope)
	if err != nil {
		return nil, err
	}
	if len(reg) == 0 {
		return nil, errors.New("no default granularities configured")
	}

	var units []domain.WorkUnit
	if structureStr != "" {
		v := structure.Validate(structureStr, reg.Depth())
		if !v.OK {
			return nil, errors.New(v.Message)
		}
		parsed, _ := structure.Parse(structureStr)
		units = structure.BuildForest(parsed)
	} else {
		units = domain.NewHierarchy(reg.DefaultCounts())
	}

	now := time.Now().UTC()
	w := &domain.Work{
		ID:            uuid.New().String(),
		Title:         title,
		Status:        domain.WorkInProgress,
		Deadline:      deadline,
		Units:         units,
		Stages:        stages,
		Granularities: reg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteWorkRepo(tx).Create(ctx, w); err != nil {
			return err
		}
		if err := repository.NewSQLiteStageRepo(tx).Replace(ctx, w.ID, stages); err != nil {
			return err
		}
		if err := repository.NewSQLiteGranularityRepo(tx).Replace(ctx, w.ID, reg); err != nil {
			return err
		}
		return repository.NewSQLiteUnitRepo(tx).ReplaceForWork(ctx, w.ID, units)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workService) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	w, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Stages, err = s.stage.Load(ctx, id); err != nil {
		return nil, err
	}
	if w.Granularities, err = s.grans.Load(ctx, id); err != nil {
		return nil, err
	}
	if w.Units, err = s.units.LoadForWork(ctx, id); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workService) List(ctx context.Context, includeArchived bool) ([]*domain.Work, error) {
	return s.works.List(ctx, includeArchived)
}

func (s *workService) Rename(ctx context.Context, id, title string) error {
	return s.updateRow(ctx, id, func(w *domain.Work) error {
		w.Title = title
		return nil
	})
}

func (s *workService) SetDeadline(ctx context.Context, id string, deadline *time.Time) error {
	return s.updateRow(ctx, id, func(w *domain.Work) error {
		w.Deadline = deadline
		return nil
	})
}

func (s *workService) Complete(ctx context.Context, id string) error {
	return s.updateRow(ctx, id, func(w *domain.Work) error {
		return w.MarkCompleted(time.Now().UTC())
	})
}

func (s *workService) Reopen(ctx context.Context, id string) error {
	return s.updateRow(ctx, id, func(w *domain.Work) error {
		return w.Reopen(time.Now().UTC())
	})
}

func (s *workService) Archive(ctx context.Context, id string) error {
	return s.updateRow(ctx, id, func(w *domain.Work) error {
		w.Archive(time.Now().UTC())
		return nil
	})
}

func (s *workService) Delete(ctx context.Context, id string) error {
	return s.works.Delete(ctx, id)
}

func (s *workService) AddRootUnit(ctx context.Context, workID string) error {
	return s.mutateForest(ctx, workID, func(w *domain.Work) error {
		w.AddRootUnit()
		return nil
	})
}

func (s *workService) AdvanceLeaf(ctx context.Context, workID, unitID string) error {
	return s.mutateForest(ctx, workID, func(w *domain.Work) error {
		domain.AdvanceLeafStage(w.Units, unitID, len(w.Stages))
		return nil
	})
}

func (s *workService) SetChildCount(ctx context.Context, workID, unitID string, count int) error {
	return s.mutateForest(ctx, workID, func(w *domain.Work) error {
		domain.SetChildCount(w.Units, unitID, count)
		return nil
	})
}

func (s *workService) RemoveUnit(ctx context.Context, workID, unitID string) error {
	return s.mutateForest(ctx, workID, func(w *domain.Work) error {
		w.Units, _ = domain.RemoveUnit(w.Units, unitID)
		return nil
	})
}

func (s *workService) ApplyStructure(ctx context.Context, workID, doc string) error {
	return s.mutateForest(ctx, workID, func(w *domain.Work) error {
		v := structure.Validate(doc, w.Granularities.Depth())
		if !v.OK {
			return errors.New(v.Message)
		}
		parsed, _ := structure.Parse(doc)
		w.Units = structure.BuildForest(parsed)
		return nil
	})
}

func (s *workService) RenderStructure(ctx context.Context, workID string) (string, error) {
	units, err := s.units.LoadForWork(ctx, workID)
	if err != nil {
		return "", err
	}
	text, ok := structure.Serialize(units)
	if !ok {
		return "", fmt.Errorf("work %s has no textual structure form (deeper than three levels)", workID)
	}
	return text, nil
}

// updateRow edits the work row only, leaving the forest untouched.
func (s *workService) updateRow(ctx context.Context, id string, fn func(w *domain.Work) error) error {
	w, err := s.works.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		return err
	}
	w.UpdatedAt = time.Now().UTC()
	return s.works.Update(ctx, w)
}

// mutateForest loads the full aggregate inside a transaction, applies the
// edit, then writes the forest back wholesale and bumps the row timestamp.
func (s *workService) mutateForest(ctx context.Context, workID string, fn func(w *domain.Work) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorks := repository.NewSQLiteWorkRepo(tx)
		txUnits := repository.NewSQLiteUnitRepo(tx)

		w, err := txWorks.GetByID(ctx, workID)
		if err != nil {
			return err
		}
		if w.IsTerminal() {
			return fmt.Errorf("work %s is %s and no longer editable", workID, w.Status)
		}
		if w.Stages, err = repository.NewSQLiteStageRepo(tx).Load(ctx, workID); err != nil {
			return err
		}
		if w.Granularities, err = repository.NewSQLiteGranularityRepo(tx).Load(ctx, workID); err != nil {
			return err
		}
		if w.Units, err = txUnits.LoadForWork(ctx, workID); err != nil {
			return err
		}

		if err := fn(w); err != nil {
			return err
		}

		w.UpdatedAt = time.Now().UTC()
		if err := txUnits.ReplaceForWork(ctx, workID, w.Units); err != nil {
			return err
		}
		return txWorks.Update(ctx, w)
	})
}
