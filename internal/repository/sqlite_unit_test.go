package repository

import (
	"context"
	"testing"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRepo_RoundTripsForest(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	unitRepo := NewSQLiteUnitRepo(database)

	w := testutil.NewTestWork("Roundtrip", testutil.WithUnits(2, 3, 2))
	leaves := domain.CollectLeaves(w.Units)
	leaves[0].StageIndex = 2
	leaves[5].StageIndex = 4
	require.NoError(t, workRepo.Create(ctx, w))
	require.NoError(t, unitRepo.ReplaceForWork(ctx, w.ID, w.Units))

	loaded, err := unitRepo.LoadForWork(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, structureOf(w.Units), structureOf(loaded))

	gotLeaves := domain.CollectLeaves(loaded)
	require.Len(t, gotLeaves, 12)
	assert.Equal(t, 2, gotLeaves[0].StageIndex)
	assert.Equal(t, 4, gotLeaves[5].StageIndex)
}

func TestUnitRepo_ReplaceOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	workRepo := NewSQLiteWorkRepo(database)
	unitRepo := NewSQLiteUnitRepo(database)

	w := testutil.NewTestWork("Shrinking", testutil.WithUnits(3, 2))
	require.NoError(t, workRepo.Create(ctx, w))
	require.NoError(t, unitRepo.ReplaceForWork(ctx, w.ID, w.Units))

	smaller := domain.NewHierarchy([]int{1, 2})
	require.NoError(t, unitRepo.ReplaceForWork(ctx, w.ID, smaller))

	loaded, err := unitRepo.LoadForWork(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Len(t, domain.CollectLeaves(loaded), 2)
}

func TestUnitRepo_LoadForWork_Empty(t *testing.T) {
	database := testutil.NewTestDB(t)
	unitRepo := NewSQLiteUnitRepo(database)

	loaded, err := unitRepo.LoadForWork(context.Background(), "no-such-work")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// structureOf flattens a forest into (id, index, kind, stage) tuples in
// depth-first order for comparison.
func structureOf(units []domain.WorkUnit) []string {
	var out []string
	var walk func(units []domain.WorkUnit, prefix string)
	walk = func(units []domain.WorkUnit, prefix string) {
		for _, u := range units {
			switch n := u.(type) {
			case *domain.Leaf:
				out = append(out, prefix+"leaf:"+n.ID)
			case *domain.Branch:
				out = append(out, prefix+"branch:"+n.ID)
				walk(n.Children, prefix+"  ")
			}
		}
	}
	walk(units, "")
	return out
}
