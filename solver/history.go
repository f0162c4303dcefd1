package solver

import (
	"fmt"

	"github.com/MartinPdeS/LightWave2D/grid"
	"gonum.org/v1/gonum/mat"
)

// History is the caller-owned (nSteps, nx, ny) buffer the engine writes
// one Ez snapshot into per step. The engine never resizes it; Run rejects
// a history whose shape differs from the configuration.
type History struct {
	nSteps, nx, ny int
	data           []float64
}

// NewHistory allocates a zeroed history buffer.
func NewHistory(nSteps, nx, ny int) (*History, error) {
	if nSteps < 1 || nx < 1 || ny < 1 {
		return nil, fmt.Errorf("invalid history shape: (%d, %d, %d)", nSteps, nx, ny)
	}
	return &History{nSteps: nSteps, nx: nx, ny: ny, data: make([]float64, nSteps*nx*ny)}, nil
}

// WrapHistory adopts a pre-allocated flat buffer of length nSteps*nx*ny
// without copying, so callers keep ownership of the storage.
func WrapHistory(data []float64, nSteps, nx, ny int) (*History, error) {
	if nSteps < 1 || nx < 1 || ny < 1 {
		return nil, fmt.Errorf("invalid history shape: (%d, %d, %d)", nSteps, nx, ny)
	}
	if len(data) != nSteps*nx*ny {
		return nil, fmt.Errorf("history buffer has %d elements, shape (%d, %d, %d) requires %d",
			len(data), nSteps, nx, ny, nSteps*nx*ny)
	}
	return &History{nSteps: nSteps, nx: nx, ny: ny, data: data}, nil
}

// NSteps returns the number of recorded steps.
func (h *History) NSteps() int { return h.nSteps }

// Nx returns the grid extent along x.
func (h *History) Nx() int { return h.nx }

// Ny returns the grid extent along y.
func (h *History) Ny() int { return h.ny }

// Data exposes the flat backing buffer.
func (h *History) Data() []float64 { return h.data }

// At returns Ez at the given step and cell.
func (h *History) At(step, i, j int) float64 {
	if step < 0 || step >= h.nSteps || i < 0 || i >= h.nx || j < 0 || j >= h.ny {
		panic(fmt.Sprintf("history index (%d, %d, %d) out of range (%d, %d, %d)",
			step, i, j, h.nSteps, h.nx, h.ny))
	}
	return h.data[(step*h.nx+i)*h.ny+j]
}

// Frame copies one step's snapshot into a gonum matrix.
func (h *History) Frame(step int) *mat.Dense {
	if step < 0 || step >= h.nSteps {
		panic(fmt.Sprintf("history frame %d out of range [0,%d)", step, h.nSteps))
	}
	frame := make([]float64, h.nx*h.ny)
	copy(frame, h.data[step*h.nx*h.ny:(step+1)*h.nx*h.ny])
	return mat.NewDense(h.nx, h.ny, frame)
}

// record snapshots the full Ez grid at the given step index.
func (h *History) record(step int, ez *grid.Grid[float64]) {
	copy(h.data[step*h.nx*h.ny:(step+1)*h.nx*h.ny], ez.Data())
}
