// Package source defines the time-dependent excitations injected into the
// Ez field each step. A Source contributes additively at a fixed list of
// grid cells given the current simulated time; it carries no per-step
// state of its own.
package source

import (
	"fmt"
	"math"

	"github.com/MartinPdeS/LightWave2D/grid"
)

// Cell is a target grid coordinate.
type Cell struct {
	X, Y int
}

// Source is the extension point for excitations. AddToField adds the
// source's contribution to Ez at simulated time t; Targets exposes the
// target cells so the engine can bounds-check them before a run starts.
type Source interface {
	AddToField(t float64, ez *grid.Grid[float64])
	Targets() []Cell
}

// Impulsive is a Gaussian-envelope pulse centered at Delay with width
// Duration: Ez[x,y] += Amplitude * exp(-((t-Delay)/Duration)^2).
type Impulsive struct {
	Amplitude float64
	Duration  float64
	Delay     float64
	Cells     []Cell
}

// NewImpulsive validates the pulse parameters. Duration must be positive
// (it divides the envelope argument) and at least one target cell is
// required.
func NewImpulsive(amplitude, duration, delay float64, cells []Cell) (*Impulsive, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("impulsive source duration must be positive, got %g", duration)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("impulsive source requires at least one target cell")
	}
	return &Impulsive{
		Amplitude: amplitude,
		Duration:  duration,
		Delay:     delay,
		Cells:     append([]Cell(nil), cells...),
	}, nil
}

// AddToField injects the pulse at time t.
func (s *Impulsive) AddToField(t float64, ez *grid.Grid[float64]) {
	arg := (t - s.Delay) / s.Duration
	contribution := s.Amplitude * math.Exp(-arg*arg)
	for _, c := range s.Cells {
		ez.AddU(c.X, c.Y, contribution)
	}
}

// Targets returns the cells the pulse writes to.
func (s *Impulsive) Targets() []Cell { return s.Cells }

// MultiWavelength superposes continuous-wave components: for each
// (omega, amplitude, delay) triple, Ez[x,y] += amplitude * cos(omega*t +
// delay). Components accumulate additively at every target cell.
type MultiWavelength struct {
	Omegas     []float64
	Amplitudes []float64
	Delays     []float64
	Cells      []Cell
}

// NewMultiWavelength validates that the three component lists align and
// that at least one component and one target cell are present.
func NewMultiWavelength(omegas, amplitudes, delays []float64, cells []Cell) (*MultiWavelength, error) {
	if len(omegas) == 0 {
		return nil, fmt.Errorf("multiwavelength source requires at least one component")
	}
	if len(amplitudes) != len(omegas) || len(delays) != len(omegas) {
		return nil, fmt.Errorf("multiwavelength component lists must align: %d omegas, %d amplitudes, %d delays",
			len(omegas), len(amplitudes), len(delays))
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("multiwavelength source requires at least one target cell")
	}
	return &MultiWavelength{
		Omegas:     append([]float64(nil), omegas...),
		Amplitudes: append([]float64(nil), amplitudes...),
		Delays:     append([]float64(nil), delays...),
		Cells:      append([]Cell(nil), cells...),
	}, nil
}

// AddToField injects every wavelength component at time t.
func (s *MultiWavelength) AddToField(t float64, ez *grid.Grid[float64]) {
	for _, c := range s.Cells {
		for k, omega := range s.Omegas {
			ez.AddU(c.X, c.Y, s.Amplitudes[k]*math.Cos(omega*t+s.Delays[k]))
		}
	}
}

// Targets returns the cells the components write to.
func (s *MultiWavelength) Targets() []Cell { return s.Cells }

// ValidateTargets rejects any source whose target cells fall outside
// [0, nx) x [0, ny). The engine calls this at run entry so a bad index
// aborts before any stepping.
func ValidateTargets(s Source, nx, ny int) error {
	for _, c := range s.Targets() {
		if c.X < 0 || c.X >= nx || c.Y < 0 || c.Y >= ny {
			return fmt.Errorf("source target (%d, %d) outside grid [0,%d)x[0,%d)", c.X, c.Y, nx, ny)
		}
	}
	return nil
}
