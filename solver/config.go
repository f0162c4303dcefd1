// Package solver implements the Yee leapfrog time-stepping engine: the
// per-step magnetic and electric updates, the nonlinear and absorption
// corrections, source injection, and time-history recording.
package solver

import "fmt"

// Config holds the immutable grid/time parameters of one simulation plus
// the step cursor. The cursor is the only mutable part and is advanced
// exactly once per completed step; Time() always equals the stamp at the
// current iteration. A Config is owned by one engine for the duration of
// a run.
type Config struct {
	dx, dy, dt float64
	nx, ny     int
	timeStamps []float64

	iteration int
	time      float64
}

// NewConfig validates and freezes the simulation parameters. The time
// stamp sequence must be non-empty and monotonically non-decreasing; its
// length fixes the number of steps.
func NewConfig(dx, dy, dt float64, nx, ny int, timeStamps []float64) (*Config, error) {
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive: dx=%g, dy=%g", dx, dy)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("time step must be positive: dt=%g", dt)
	}
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("grid must be at least 2x2: nx=%d, ny=%d", nx, ny)
	}
	if len(timeStamps) == 0 {
		return nil, fmt.Errorf("time stamp sequence is empty")
	}
	for k := 1; k < len(timeStamps); k++ {
		if timeStamps[k] < timeStamps[k-1] {
			return nil, fmt.Errorf("time stamps must be non-decreasing: stamp[%d]=%g < stamp[%d]=%g",
				k, timeStamps[k], k-1, timeStamps[k-1])
		}
	}

	stamps := append([]float64(nil), timeStamps...)
	return &Config{
		dx: dx, dy: dy, dt: dt,
		nx: nx, ny: ny,
		timeStamps: stamps,
		time:       stamps[0],
	}, nil
}

// Dx returns the grid spacing along x.
func (c *Config) Dx() float64 { return c.dx }

// Dy returns the grid spacing along y.
func (c *Config) Dy() float64 { return c.dy }

// Dt returns the time step.
func (c *Config) Dt() float64 { return c.dt }

// Nx returns the grid extent along x.
func (c *Config) Nx() int { return c.nx }

// Ny returns the grid extent along y.
func (c *Config) Ny() int { return c.ny }

// NSteps returns the total number of steps, equal to the stamp count.
func (c *Config) NSteps() int { return len(c.timeStamps) }

// Iteration returns the current step index.
func (c *Config) Iteration() int { return c.iteration }

// Time returns the stamp at the current iteration.
func (c *Config) Time() float64 { return c.time }

// TimeStamps returns a copy of the stamp sequence.
func (c *Config) TimeStamps() []float64 {
	return append([]float64(nil), c.timeStamps...)
}

// Advance moves the cursor to the next stamp. It errors, without moving,
// when the sequence is exhausted: the driving loop must not overrun it.
func (c *Config) Advance() error {
	if c.iteration+1 >= len(c.timeStamps) {
		return fmt.Errorf("cannot advance past final time stamp (iteration %d of %d)",
			c.iteration, len(c.timeStamps))
	}
	c.iteration++
	c.time = c.timeStamps[c.iteration]
	return nil
}

// rewind resets the cursor so a completed engine returns to its idle
// state and a rerun reproduces the same stamps.
func (c *Config) rewind() {
	c.iteration = 0
	c.time = c.timeStamps[0]
}
