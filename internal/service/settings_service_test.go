package service

import (
	"context"
	"testing"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_EnsureDefaults_Idempotent(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	stages, err := svc.Settings.Stages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, stages)

	// Edit a stage, then re-run: the edit must survive.
	h := 9.0
	stages[1].BaseHours = &h
	require.NoError(t, svc.Settings.SaveStages(ctx, stages))
	require.NoError(t, svc.Settings.EnsureDefaults(ctx))

	reloaded, err := svc.Settings.Stages(ctx)
	require.NoError(t, err)
	require.NotNil(t, reloaded[1].BaseHours)
	assert.Equal(t, 9.0, *reloaded[1].BaseHours)
}

func TestSettingsService_SaveStages_RejectsDuplicateIDs(t *testing.T) {
	svc := newServices(t)

	err := svc.Settings.SaveStages(context.Background(), domain.StageTable{
		{ID: 1, Label: "A"}, {ID: 1, Label: "B"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate stage id")
}

func TestSettingsService_SaveGranularities_Validates(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	err := svc.Settings.SaveGranularities(ctx, domain.Registry{
		{ID: "page", Weight: 5, DefaultCount: 4},
		{ID: "page", Weight: 1, DefaultCount: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate granularity")

	err = svc.Settings.SaveGranularities(ctx, domain.Registry{
		{ID: "page", Weight: 0, DefaultCount: 4},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive weight")
}

func TestSettingsService_SetStageHours_BackDerives(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	// Built-in registry: page weight 5, panel weight 1 (finest).
	// 2.5 hours per page back-derives to 0.5 base hours per panel.
	require.NoError(t, svc.Settings.SetStageHours(ctx, 4, 2.5, "page"))

	stages, err := svc.Settings.Stages(ctx)
	require.NoError(t, err)
	pos := stages.PositionByID()[4]
	require.NotNil(t, stages[pos].BaseHours)
	assert.InDelta(t, 0.5, *stages[pos].BaseHours, 1e-9)
}

func TestSettingsService_SetStageHours_UnknownIDs(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	err := svc.Settings.SetStageHours(ctx, 99, 1, "page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage")

	err = svc.Settings.SetStageHours(ctx, 1, 1, "chapter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown granularity")
}
