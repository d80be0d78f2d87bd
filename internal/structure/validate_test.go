package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UniformDepthPasses(t *testing.T) {
	v := Validate("[1/2],[3/4]", 2)
	assert.True(t, v.OK)
	assert.Empty(t, v.Message)
	assert.Equal(t, []int{2, 2}, v.Depths)
}

func TestValidate_MixedDepthFails(t *testing.T) {
	v := Validate("[1/2],[[1][2]]", 2)
	require.False(t, v.OK)
	assert.Equal(t, []int{2, 3}, v.Depths)
	assert.Contains(t, v.Message, "expected depth 2")
	assert.Contains(t, v.Message, "[2, 3]")
}

func TestValidate_WrongUniformDepthFails(t *testing.T) {
	v := Validate("[[1][2]],[[3][4]]", 2)
	require.False(t, v.OK)
	assert.Equal(t, []int{3, 3}, v.Depths)
}

func TestValidate_MalformedReportsMessage(t *testing.T) {
	v := Validate("[1/2", 2)
	require.False(t, v.OK)
	assert.Contains(t, v.Message, "unbalanced")
	assert.Nil(t, v.Depths)
}

func TestValidate_BadTokensReportMessage(t *testing.T) {
	v := Validate("[1/x]", 2)
	require.False(t, v.OK)
	assert.Contains(t, v.Message, "malformed")
}
