package service

import (
	"context"
	"testing"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	Work     WorkService
	Settings SettingsService
	Progress ProgressService
}

// newServices wires the full service stack over an in-memory database and
// installs the built-in default settings.
func newServices(t *testing.T) testServices {
	t.Helper()
	database := testutil.NewTestDB(t)

	works := repository.NewSQLiteWorkRepo(database)
	units := repository.NewSQLiteUnitRepo(database)
	stage := repository.NewSQLiteStageRepo(database)
	grans := repository.NewSQLiteGranularityRepo(database)
	snaps := repository.NewSQLiteSnapshotRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	workSvc := NewWorkService(works, units, stage, grans, uow)
	settings := NewSettingsService(stage, grans)
	progress := NewProgressService(workSvc, snaps)

	require.NoError(t, settings.EnsureDefaults(context.Background()))
	return testServices{Work: workSvc, Settings: settings, Progress: progress}
}
