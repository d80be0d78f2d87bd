package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(workID string, takenAt time.Time, counts ...domain.StageCount) *domain.Snapshot {
	return &domain.Snapshot{
		ID:      uuid.New().String(),
		WorkID:  workID,
		TakenAt: takenAt,
		Counts:  counts,
	}
}

func TestSnapshotRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	repo := NewSQLiteSnapshotRepo(database)

	w := testutil.NewTestWork("Snapshot target")
	require.NoError(t, workRepo.Create(ctx, w))

	takenAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	snap := newSnapshot(w.ID, takenAt,
		domain.StageCount{StageID: 1, Count: 3},
		domain.StageCount{StageID: 5, Count: 2},
	)
	require.NoError(t, repo.Create(ctx, snap))

	got, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.WorkID)
	assert.Equal(t, takenAt, got.TakenAt)
	assert.Equal(t, snap.Counts, got.Counts)
}

func TestSnapshotRepo_ListByWork_Ordered(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	repo := NewSQLiteSnapshotRepo(database)

	w := testutil.NewTestWork("History")
	require.NoError(t, workRepo.Create(ctx, w))

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newSnapshot(w.ID, base.AddDate(0, 0, 2))))
	require.NoError(t, repo.Create(ctx, newSnapshot(w.ID, base)))

	snaps, err := repo.ListByWork(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].TakenAt.Before(snaps[1].TakenAt), "snapshots should come back oldest first")
}

func TestSnapshotRepo_DeleteWork_CascadesCounts(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	repo := NewSQLiteSnapshotRepo(database)

	w := testutil.NewTestWork("Cascade")
	require.NoError(t, workRepo.Create(ctx, w))
	require.NoError(t, repo.Create(ctx, newSnapshot(w.ID, time.Now().UTC(), domain.StageCount{StageID: 1, Count: 1})))

	require.NoError(t, workRepo.Delete(ctx, w.ID))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM snapshot_counts`).Scan(&n))
	assert.Zero(t, n)
}

func TestSnapshotRepo_Delete_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
