package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinPdeS/LightWave2D/grid"
)

func TestWrapHistoryShapeCheck(t *testing.T) {
	buf := make([]float64, 3*4*5)
	h, err := WrapHistory(buf, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, h.NSteps())
	assert.Equal(t, 4, h.Nx())
	assert.Equal(t, 5, h.Ny())

	_, err = WrapHistory(buf, 3, 4, 4)
	assert.Error(t, err)
	_, err = WrapHistory(buf, 0, 4, 5)
	assert.Error(t, err)
}

func TestHistoryWrapSharesCallerBuffer(t *testing.T) {
	buf := make([]float64, 2*2*2)
	h, err := WrapHistory(buf, 2, 2, 2)
	require.NoError(t, err)

	ez, err := grid.New[float64](2, 2)
	require.NoError(t, err)
	ez.Set(1, 0, 7.0)

	h.record(1, ez)
	// step 1, cell (1, 0) -> flat index (1*2+1)*2+0 = 6
	assert.Equal(t, 7.0, buf[6])
	assert.Equal(t, 7.0, h.At(1, 1, 0))
}

func TestHistoryFrameCopies(t *testing.T) {
	h, err := NewHistory(2, 3, 3)
	require.NoError(t, err)

	ez, _ := grid.New[float64](3, 3)
	ez.Set(2, 1, 4.0)
	h.record(0, ez)

	m := h.Frame(0)
	assert.Equal(t, 4.0, m.At(2, 1))

	m.Set(2, 1, -1)
	assert.Equal(t, 4.0, h.At(0, 2, 1))
}

func TestHistoryAtPanicsOutOfRange(t *testing.T) {
	h, err := NewHistory(1, 2, 2)
	require.NoError(t, err)

	assert.Panics(t, func() { h.At(1, 0, 0) })
	assert.Panics(t, func() { h.At(0, 2, 0) })
	assert.Panics(t, func() { h.At(0, 0, -1) })
	assert.Panics(t, func() { h.Frame(3) })
}
