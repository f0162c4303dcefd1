package solver

import (
	"github.com/MartinPdeS/LightWave2D/grid"
	"github.com/MartinPdeS/LightWave2D/medium"
	"gonum.org/v1/gonum/floats"
)

// FieldState holds the three field components of the TM mode. All three
// grids share the (nx, ny) shape; Hx is sampled half a cell below in y
// and Hy half a cell left in x per the Yee staggering, which is a
// sampling convention only — storage is co-shaped with Ez. Fields start
// at zero and are mutated in place every step; a fresh state is created
// for every run.
type FieldState struct {
	Ez *grid.Grid[float64]
	Hx *grid.Grid[float64]
	Hy *grid.Grid[float64]
}

// NewFieldState allocates zeroed fields of the given shape.
func NewFieldState(nx, ny int) (*FieldState, error) {
	ez, err := grid.New[float64](nx, ny)
	if err != nil {
		return nil, err
	}
	hx, _ := grid.New[float64](nx, ny)
	hy, _ := grid.New[float64](nx, ny)
	return &FieldState{Ez: ez, Hx: hx, Hy: hy}, nil
}

// FieldEnergy evaluates the discrete field energy
// sum(eps*Ez^2 + mu*(Hx^2 + Hy^2)). For a source-free, lossless medium
// the leapfrog scheme keeps this approximately constant, which the tests
// use as a stability check.
func FieldEnergy(med *medium.Map, f *FieldState) float64 {
	eps := med.Eps.Data()
	ez := f.Ez.Data()

	electric := 0.0
	for k, e := range ez {
		electric += eps[k] * e * e
	}

	hx := f.Hx.Data()
	hy := f.Hy.Data()
	magnetic := med.Mu * (floats.Dot(hx, hx) + floats.Dot(hy, hy))

	return electric + magnetic
}
