package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepareScenarioStages installs a four-stage table with costs 3, 1, unset,
// 0.5 as the defaults.
func prepareScenarioStages(t *testing.T, svc testServices) {
	t.Helper()
	h := func(v float64) *float64 { return &v }
	table := domain.StageTable{
		{ID: 1, Label: "Name", BaseHours: h(3)},
		{ID: 2, Label: "Rough", BaseHours: h(1)},
		{ID: 3, Label: "Ink"},
		{ID: 4, Label: "Tone", BaseHours: h(0.5)},
	}
	require.NoError(t, svc.Settings.SaveStages(context.Background(), table))
}

func TestProgressService_Report_WorkedScenario(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	prepareScenarioStages(t, svc)

	// Two leaves: one at stage 1, one at stage 3 (entered as 2 and 4).
	w, err := svc.Work.Create(ctx, "Scenario", nil, "[2/4]")
	require.NoError(t, err)

	report, err := svc.Progress.Report(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.LeafCount)
	assert.InDelta(t, 9.0, report.Summary.TotalHours, 1e-9)
	assert.InDelta(t, 8.5, report.Summary.CompletedHours, 1e-9)
	assert.InDelta(t, 0.5, report.Summary.RemainingHours, 1e-9)
	assert.Equal(t, 94, report.Summary.Percent)
	assert.False(t, report.Pace.HasDeadline)

	// Per-leaf total rendered at every granularity: panel 4.5, page 22.5.
	assert.InDelta(t, 4.5, report.HoursPerGranularity["panel"], 1e-9)
	assert.InDelta(t, 22.5, report.HoursPerGranularity["page"], 1e-9)
}

func TestProgressService_Report_PastDeadlineIsInfinitePace(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	prepareScenarioStages(t, svc)

	deadline := time.Now().UTC().AddDate(0, 0, -3)
	w, err := svc.Work.Create(ctx, "Late", &deadline, "[1/1]")
	require.NoError(t, err)

	report, err := svc.Progress.Report(ctx, w.ID)
	require.NoError(t, err)
	require.True(t, report.Pace.HasDeadline)
	assert.True(t, math.IsInf(report.Pace.RequiredPerDay, 1))
}

func TestProgressService_SnapshotRoundTrip(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	prepareScenarioStages(t, svc)

	w, err := svc.Work.Create(ctx, "Snap", nil, "[2/4]")
	require.NoError(t, err)

	snap, err := svc.Progress.TakeSnapshot(ctx, w.ID)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Counts)

	// Advance everything; the snapshot keeps the old picture.
	require.NoError(t, svc.Work.ApplyStructure(ctx, w.ID, "[4/4]"))

	snapReport, err := svc.Progress.SnapshotReport(ctx, snap.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.5, snapReport.Summary.CompletedHours, 1e-9)
	assert.Equal(t, 94, snapReport.Summary.Percent)

	live, err := svc.Progress.Report(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, live.Summary.Percent)

	snaps, err := svc.Progress.ListSnapshots(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestProgressService_DeleteSnapshot(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	w, err := svc.Work.Create(ctx, "Snap", nil, "[1/2]")
	require.NoError(t, err)
	snap, err := svc.Progress.TakeSnapshot(ctx, w.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Progress.DeleteSnapshot(ctx, snap.ID))

	snaps, err := svc.Progress.ListSnapshots(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, snaps)

	_, err = svc.Progress.SnapshotReport(ctx, snap.ID)
	assert.Error(t, err)
}
