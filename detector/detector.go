// Package detector extracts per-cell time series from a recorded field
// history and derives simple spectral diagnostics from them.
package detector

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/MartinPdeS/LightWave2D/solver"
)

// Point records the Ez time evolution at a single grid cell.
type Point struct {
	X, Y int
	data []float64
}

// NewPoint places a detector at cell (x, y). Nothing is recorded until
// Record is called with a completed history.
func NewPoint(x, y int) *Point {
	return &Point{X: x, Y: y}
}

// Record pulls the cell's full time series out of the history buffer,
// replacing any previously recorded data.
func (d *Point) Record(h *solver.History) error {
	if h == nil {
		return fmt.Errorf("detector requires a history buffer")
	}
	if d.X < 0 || d.X >= h.Nx() || d.Y < 0 || d.Y >= h.Ny() {
		return fmt.Errorf("detector at (%d, %d) outside grid [0,%d)x[0,%d)", d.X, d.Y, h.Nx(), h.Ny())
	}

	d.data = make([]float64, h.NSteps())
	for k := range d.data {
		d.data[k] = h.At(k, d.X, d.Y)
	}
	return nil
}

// Data returns the recorded time series (shared, not copied).
func (d *Point) Data() []float64 { return d.data }

// Mean returns the average of the recorded series.
func (d *Point) Mean() float64 {
	if len(d.data) == 0 {
		return 0
	}
	return floats.Sum(d.data) / float64(len(d.data))
}

// Spectrum returns the magnitude of the discrete Fourier transform of
// the recorded series, one bin per recorded step. Bin k corresponds to
// frequency k / (n_steps * dt) when the stamps are uniformly spaced.
func (d *Point) Spectrum() []float64 {
	if len(d.data) == 0 {
		return nil
	}
	bins := fft.FFTReal(d.data)
	mags := make([]float64, len(bins))
	for k, b := range bins {
		mags[k] = cmplx.Abs(b)
	}
	return mags
}
