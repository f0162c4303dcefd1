// Package medium holds the per-cell material description consumed by the
// solver: permittivity, nonlinear coefficient, gain/loss coefficient, the
// two conductivity maps, and the uniform magnetic permeability.
package medium

import (
	"fmt"

	"github.com/MartinPdeS/LightWave2D/grid"
)

// Map describes the material at every grid cell. The solver treats a Map
// as immutable for the duration of a run.
type Map struct {
	Eps    *grid.Grid[float64] // relative permittivity, > 0
	N2     *grid.Grid[float64] // Kerr nonlinear coefficient
	Gamma  *grid.Grid[float64] // second-harmonic gain/loss coefficient
	SigmaX *grid.Grid[float64] // conductivity along x, >= 0
	SigmaY *grid.Grid[float64] // conductivity along y, >= 0
	Mu     float64             // uniform magnetic permeability, > 0
}

// NewMap builds a vacuum-like medium: eps = 1 everywhere, all other maps
// zero. Callers shape the medium by writing into the grids afterwards.
func NewMap(nx, ny int, mu float64) (*Map, error) {
	if mu <= 0 {
		return nil, fmt.Errorf("permeability must be positive, got %g", mu)
	}
	eps, err := grid.New[float64](nx, ny)
	if err != nil {
		return nil, fmt.Errorf("allocating medium maps: %w", err)
	}
	eps.Fill(1)

	n2, _ := grid.New[float64](nx, ny)
	gamma, _ := grid.New[float64](nx, ny)
	sigX, _ := grid.New[float64](nx, ny)
	sigY, _ := grid.New[float64](nx, ny)

	return &Map{Eps: eps, N2: n2, Gamma: gamma, SigmaX: sigX, SigmaY: sigY, Mu: mu}, nil
}

// Validate checks that every map matches the (nx, ny) shape of the paired
// configuration and that the physical sign constraints hold. A failure
// here is a configuration error: the run must not start.
func (m *Map) Validate(nx, ny int) error {
	grids := []struct {
		name string
		g    *grid.Grid[float64]
	}{
		{"epsilon", m.Eps},
		{"n2", m.N2},
		{"gamma", m.Gamma},
		{"sigma_x", m.SigmaX},
		{"sigma_y", m.SigmaY},
	}
	for _, e := range grids {
		if e.g == nil {
			return fmt.Errorf("medium map %s is nil", e.name)
		}
		if e.g.Nx() != nx || e.g.Ny() != ny {
			return fmt.Errorf("medium map %s has shape (%d, %d), config requires (%d, %d)",
				e.name, e.g.Nx(), e.g.Ny(), nx, ny)
		}
	}
	if m.Mu <= 0 {
		return fmt.Errorf("permeability must be positive, got %g", m.Mu)
	}
	for idx, v := range m.Eps.Data() {
		if v <= 0 {
			return fmt.Errorf("epsilon must be positive everywhere, found %g at linear index %d", v, idx)
		}
	}
	for idx, v := range m.SigmaX.Data() {
		if v < 0 {
			return fmt.Errorf("sigma_x must be non-negative, found %g at linear index %d", v, idx)
		}
	}
	for idx, v := range m.SigmaY.Data() {
		if v < 0 {
			return fmt.Errorf("sigma_y must be non-negative, found %g at linear index %d", v, idx)
		}
	}
	return nil
}
