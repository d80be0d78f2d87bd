package service

import (
	"context"
	"fmt"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/workload"
)

type settingsService struct {
	stage repository.StageRepo
	grans repository.GranularityRepo
}

func NewSettingsService(stage repository.StageRepo, grans repository.GranularityRepo) SettingsService {
	return &settingsService{stage: stage, grans: grans}
}

func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	stages, err := s.stage.Load(ctx, domain.DefaultScope)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		if err := s.stage.Replace(ctx, domain.DefaultScope, builtinStages()); err != nil {
			return err
		}
	}
	reg, err := s.grans.Load(ctx, domain.DefaultScope)
	if err != nil {
		return err
	}
	if len(reg) == 0 {
		if err := s.grans.Replace(ctx, domain.DefaultScope, builtinRegistry()); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsService) Stages(ctx context.Context) (domain.StageTable, error) {
	return s.stage.Load(ctx, domain.DefaultScope)
}

func (s *settingsService) SaveStages(ctx context.Context, stages domain.StageTable) error {
	seen := make(map[int]bool, len(stages))
	for _, st := range stages {
		if seen[st.ID] {
			return fmt.Errorf("duplicate stage id %d", st.ID)
		}
		seen[st.ID] = true
	}
	return s.stage.Replace(ctx, domain.DefaultScope, stages)
}

func (s *settingsService) Granularities(ctx context.Context) (domain.Registry, error) {
	return s.grans.Load(ctx, domain.DefaultScope)
}

func (s *settingsService) SaveGranularities(ctx context.Context, reg domain.Registry) error {
	seen := make(map[string]bool, len(reg))
	for _, g := range reg {
		if g.ID == "" {
			return fmt.Errorf("granularity id must not be empty")
		}
		if seen[g.ID] {
			return fmt.Errorf("duplicate granularity id %q", g.ID)
		}
		if g.Weight < 1 {
			return fmt.Errorf("granularity %q needs a positive weight", g.ID)
		}
		seen[g.ID] = true
	}
	return s.grans.Replace(ctx, domain.DefaultScope, reg)
}

func (s *settingsService) SetStageHours(ctx context.Context, stageID int, hours float64, granularityID string) error {
	stages, err := s.stage.Load(ctx, domain.DefaultScope)
	if err != nil {
		return err
	}
	reg, err := s.grans.Load(ctx, domain.DefaultScope)
	if err != nil {
		return err
	}
	finest, ok := reg.Finest()
	if !ok {
		return fmt.Errorf("no granularities configured")
	}
	entry := finest
	if granularityID != "" {
		entry, ok = reg.ByID(granularityID)
		if !ok {
			return fmt.Errorf("unknown granularity %q", granularityID)
		}
	}

	pos, ok := stages.PositionByID()[stageID]
	if !ok {
		return fmt.Errorf("unknown stage id %d", stageID)
	}
	base := workload.BaseHoursFrom(hours, entry, finest)
	stages[pos].BaseHours = &base
	return s.stage.Replace(ctx, domain.DefaultScope, stages)
}

// builtinStages is the out-of-the-box manga pipeline.
func builtinStages() domain.StageTable {
	h := func(v float64) *float64 { return &v }
	return domain.StageTable{
		{ID: 1, Label: "Not started", Color: "#928374"},
		{ID: 2, Label: "Name", Color: "#83a598", BaseHours: h(0.5)},
		{ID: 3, Label: "Rough", Color: "#d3869b", BaseHours: h(0.5)},
		{ID: 4, Label: "Pencils", Color: "#fabd2f", BaseHours: h(1)},
		{ID: 5, Label: "Ink", Color: "#fe8019", BaseHours: h(1)},
		{ID: 6, Label: "Tone", Color: "#8ec07c", BaseHours: h(0.5)},
	}
}

// builtinRegistry is the out-of-the-box page/panel breakdown.
func builtinRegistry() domain.Registry {
	return domain.Registry{
		{ID: "page", Label: "Page", Weight: 5, DefaultCount: 8},
		{ID: "panel", Label: "Panel", Weight: 1, DefaultCount: 5},
	}
}
