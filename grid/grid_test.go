package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition(t *testing.T) {
	gd, err := NewDefinition(4, 5, 10.)
	require.NoError(t, err)
	assert.Equal(t, 20, gd.Ncells())
	assert.Equal(t, 100., gd.CellArea())

	t.Run("invalid dimensions", func(t *testing.T) {
		_, err := NewDefinition(0, 5, 10.)
		assert.Error(t, err)
		_, err = NewDefinition(4, -1, 10.)
		assert.Error(t, err)
		_, err = NewDefinition(4, 5, 0.)
		assert.Error(t, err)
	})
}

func TestIndexing(t *testing.T) {
	gd, err := NewDefinition(3, 4, 1.)
	require.NoError(t, err)

	assert.Equal(t, 0, gd.CellID(0, 0))
	assert.Equal(t, 7, gd.CellID(1, 3))
	assert.Equal(t, -1, gd.CellID(3, 0))
	assert.Equal(t, -1, gd.CellID(0, 4))
	assert.Equal(t, -1, gd.CellID(-1, 0))

	r, c := gd.RowCol(7)
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)
}

func TestBuffer(t *testing.T) {
	gd, err := NewDefinition(3, 3, 1.)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{1, 3, 4}, gd.Buffer(0))           // corner
	assert.ElementsMatch(t, []int{0, 2, 3, 4, 5}, gd.Buffer(1))     // edge
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, gd.Buffer(4)) // interior
}
