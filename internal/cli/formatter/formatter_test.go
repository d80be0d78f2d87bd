package formatter

import (
	"math"
	"strings"
	"testing"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProgress_Bounds(t *testing.T) {
	cases := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10}, // clamped
		{-0.3, 0}, // clamped
	}
	for _, tc := range cases {
		out := RenderProgress(tc.pct, 10)
		assert.Equal(t, tc.filled, strings.Count(out, filledBlock), "pct=%v", tc.pct)
		assert.Equal(t, 10-tc.filled, strings.Count(out, emptyBlock), "pct=%v", tc.pct)
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "4.5h", FormatHours(4.5))
	assert.Equal(t, "12h", FormatHours(12))
	assert.Equal(t, "∞", FormatHours(math.Inf(1)))
}

func TestRenderUnitTree(t *testing.T) {
	units := domain.NewHierarchy([]int{1, 2})
	leaves := domain.CollectLeaves(units)
	leaves[1].StageIndex = 1

	out := RenderUnitTree(units, testutil.NewTestStages(), testutil.NewTestRegistry())
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Book 1")
	assert.Contains(t, out, "Page 1")
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "Name", "second leaf shows its stage label")
	assert.Contains(t, out, treeCorner)
}

func TestRenderUnitTree_RegistryShallowerThanTree(t *testing.T) {
	units := domain.NewHierarchy([]int{1, 1, 2})
	out := RenderUnitTree(units, domain.StageTable{}, domain.Registry{{ID: "page", Label: "Page"}})
	assert.Contains(t, out, "Page 1")
	assert.Contains(t, out, "#1", "levels past the registry fall back to bare indices")
	assert.Contains(t, out, "stage 1")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable(
		[]string{"TITLE", "PROGRESS"},
		[][]string{
			{"Oneshot", "94%"},
			{"Long running series", "3%"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[3], "Long running series")
}

func TestStatusIndicator(t *testing.T) {
	assert.Contains(t, StatusIndicator(domain.WorkInProgress), "IN PROGRESS")
	assert.Contains(t, StatusIndicator(domain.WorkCompleted), "COMPLETED")
	assert.Contains(t, StatusIndicator(domain.WorkArchived), "ARCHIVED")
	assert.Contains(t, StatusIndicator(domain.WorkStatus("?")), "UNKNOWN")
}
