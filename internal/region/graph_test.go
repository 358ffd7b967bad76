package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_Valid(t *testing.T) {
	g, err := NewGraph([][]int{
		{1},
		{0, 2},
		{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
	assert.Equal(t, 2, g.Degree(1))
}

func TestNewGraph_RejectsSelfLoop(t *testing.T) {
	_, err := NewGraph([][]int{{0}})
	assert.Error(t, err)
}

func TestNewGraph_RejectsOutOfRange(t *testing.T) {
	_, err := NewGraph([][]int{{5}})
	assert.Error(t, err)
}

func TestNewGraph_RejectsAsymmetric(t *testing.T) {
	_, err := NewGraph([][]int{
		{1},
		{},
	})
	assert.Error(t, err)
}
