package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(database)
	ctx := context.Background()

	deadline := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	w := testutil.NewTestWork("Winter Doujin", testutil.WithDeadline(deadline))
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Title, got.Title)
	assert.Equal(t, w.Status, got.Status)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, deadline, *got.Deadline)
}

func TestWorkRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWorkRepo_List_ExcludesArchivedByDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWork("Active")))
	archived := testutil.NewTestWork("Old", testutil.WithWorkStatus("archived"))
	require.NoError(t, repo.Create(ctx, archived))

	works, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, "Active", works[0].Title)

	works, err = repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, works, 2)
}

func TestWorkRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(database)
	ctx := context.Background()

	w := testutil.NewTestWork("Draft")
	require.NoError(t, repo.Create(ctx, w))

	w.Title = "Final"
	w.Deadline = nil
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Nil(t, got.Deadline)
}

func TestWorkRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(database)

	w := testutil.NewTestWork("Ghost")
	err := repo.Update(context.Background(), w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWorkRepo_Delete_CascadesAndCleansConfig(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	unitRepo := NewSQLiteUnitRepo(database)
	stageRepo := NewSQLiteStageRepo(database)

	w := testutil.NewTestWork("Doomed", testutil.WithUnits(2, 3))
	require.NoError(t, workRepo.Create(ctx, w))
	require.NoError(t, unitRepo.ReplaceForWork(ctx, w.ID, w.Units))
	require.NoError(t, stageRepo.Replace(ctx, w.ID, w.Stages))

	require.NoError(t, workRepo.Delete(ctx, w.ID))

	var unitCount, stageCount int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM work_units WHERE work_id = ?`, w.ID).Scan(&unitCount))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM stages WHERE work_id = ?`, w.ID).Scan(&stageCount))
	assert.Zero(t, unitCount, "unit forest should cascade")
	assert.Zero(t, stageCount, "work-scoped stages should be cleaned up")
}
