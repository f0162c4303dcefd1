package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigValidation(t *testing.T) {
	stamps := []float64{0, 0.5, 1.0}

	cases := []struct {
		name       string
		dx, dy, dt float64
		nx, ny     int
		stamps     []float64
	}{
		{"zero dx", 0, 1, 0.1, 4, 4, stamps},
		{"negative dy", 1, -1, 0.1, 4, 4, stamps},
		{"zero dt", 1, 1, 0, 4, 4, stamps},
		{"nx too small", 1, 1, 0.1, 1, 4, stamps},
		{"ny too small", 1, 1, 0.1, 4, 1, stamps},
		{"empty stamps", 1, 1, 0.1, 4, 4, nil},
		{"decreasing stamps", 1, 1, 0.1, 4, 4, []float64{0, 0.5, 0.4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewConfig(c.dx, c.dy, c.dt, c.nx, c.ny, c.stamps)
			assert.Error(t, err)
		})
	}

	cfg, err := NewConfig(1, 1, 0.1, 4, 4, stamps)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NSteps())
	assert.Equal(t, 0, cfg.Iteration())
	assert.Equal(t, 0.0, cfg.Time())
}

func TestConfigAdvance(t *testing.T) {
	cfg, err := NewConfig(1, 1, 0.5, 4, 4, []float64{0, 0.5, 1.0})
	require.NoError(t, err)

	require.NoError(t, cfg.Advance())
	assert.Equal(t, 1, cfg.Iteration())
	assert.Equal(t, 0.5, cfg.Time())

	require.NoError(t, cfg.Advance())
	assert.Equal(t, 2, cfg.Iteration())
	assert.Equal(t, 1.0, cfg.Time())

	// The cursor must refuse to overrun the stamp sequence, and must not
	// move when it refuses.
	err = cfg.Advance()
	assert.Error(t, err)
	assert.Equal(t, 2, cfg.Iteration())
	assert.Equal(t, 1.0, cfg.Time())
}

func TestConfigTimeMatchesStamp(t *testing.T) {
	stamps := []float64{0.1, 0.1, 0.7, 2.0}
	cfg, err := NewConfig(1, 1, 0.5, 4, 4, stamps)
	require.NoError(t, err)

	for k := 0; ; k++ {
		assert.Equal(t, stamps[k], cfg.Time())
		assert.Equal(t, k, cfg.Iteration())
		if cfg.Advance() != nil {
			break
		}
	}

	cfg.rewind()
	assert.Equal(t, 0, cfg.Iteration())
	assert.Equal(t, stamps[0], cfg.Time())
}

func TestConfigCopiesStamps(t *testing.T) {
	stamps := []float64{0, 1}
	cfg, err := NewConfig(1, 1, 0.5, 4, 4, stamps)
	require.NoError(t, err)

	stamps[0] = 99
	assert.Equal(t, 0.0, cfg.Time())

	out := cfg.TimeStamps()
	out[1] = -5
	assert.Equal(t, []float64{0, 1}, cfg.TimeStamps())
}
