package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/service"
	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full stack over an in-memory database with the
// built-in defaults installed. Interactivity is off so commands never open
// forms under test.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	works := repository.NewSQLiteWorkRepo(database)
	units := repository.NewSQLiteUnitRepo(database)
	stage := repository.NewSQLiteStageRepo(database)
	grans := repository.NewSQLiteGranularityRepo(database)
	snaps := repository.NewSQLiteSnapshotRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	workSvc := service.NewWorkService(works, units, stage, grans, uow)
	settings := service.NewSettingsService(stage, grans)

	app := &App{
		Works:         workSvc,
		Settings:      settings,
		Progress:      service.NewProgressService(workSvc, snaps),
		IsInteractive: func() bool { return false },
	}
	require.NoError(t, app.Settings.EnsureDefaults(context.Background()))
	return app
}

// execute runs the root command with the given args and returns combined
// cobra output. Command bodies print to stdout directly, so most tests
// assert on state through the services instead.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
