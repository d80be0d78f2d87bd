package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoLevelDocument(t *testing.T) {
	units, ok := Parse("[1/2/3],[4/5]")
	require.True(t, ok)
	require.Len(t, units, 2)

	require.Len(t, units[0].Groups, 1)
	assert.Equal(t, []int{0, 1, 2}, units[0].Groups[0])
	assert.Equal(t, []int{3, 4}, units[1].Groups[0])
}

func TestParse_ThreeLevelDocument(t *testing.T) {
	units, ok := Parse("[[1/2][3/3/3]]")
	require.True(t, ok)
	require.Len(t, units, 1)
	require.Len(t, units[0].Groups, 2)
	assert.Equal(t, []int{0, 1}, units[0].Groups[0])
	assert.Equal(t, []int{2, 2, 2}, units[0].Groups[1])
	assert.Equal(t, []int{0, 1, 2, 2, 2}, units[0].LeafStages())
}

func TestParse_DeepNestingFlattensIntoGroups(t *testing.T) {
	units, ok := Parse("[[[1/2][3]][[4]]]")
	require.True(t, ok)
	require.Len(t, units, 1)
	require.Len(t, units[0].Groups, 2)
	assert.Equal(t, []int{0, 1, 2}, units[0].Groups[0])
	assert.Equal(t, []int{3}, units[0].Groups[1])
}

func TestParse_StageTokenConversion(t *testing.T) {
	units, ok := Parse("[0/1/10]")
	require.True(t, ok)
	// "0" clamps to stage 0 instead of going negative.
	assert.Equal(t, []int{0, 0, 9}, units[0].Groups[0])
}

func TestParse_ToleratesWhitespace(t *testing.T) {
	units, ok := Parse(" [1 / 2] , [ [3][4/5] ] ")
	require.True(t, ok)
	require.Len(t, units, 2)
	assert.Equal(t, []int{0, 1}, units[0].Groups[0])
	require.Len(t, units[1].Groups, 2)
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unbalanced open", "[1/2"},
		{"unbalanced close", "1/2]"},
		{"close before open", "]1["},
		{"no brackets", "1/2"},
		{"empty unit", "[]"},
		{"empty token", "[1//2]"},
		{"non numeric token", "[1/x]"},
		{"stray text between groups", "[[1]x[2]]"},
		{"two units without comma", "[1][2]"},
		{"trailing comma", "[1/2],"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Parse(tc.doc)
			assert.False(t, ok, "doc %q should not parse", tc.doc)
		})
	}
}

func TestUnitDepth(t *testing.T) {
	cases := []struct {
		top   string
		depth int
	}{
		{"[1/2]", 2},
		{"[[1][2]]", 3},
		{"[[[1]]]", 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.depth, unitDepth(tc.top), "top %q", tc.top)
	}
}
