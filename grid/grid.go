// Package grid provides the dense row-major 2-D buffers backing the field
// and material arrays of the FDTD solver.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Number constrains the element types a Grid can hold.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Grid is a fixed-shape dense 2-D buffer stored row-major: element (i, j)
// lives at data[i*ny+j]. Shape is immutable after construction.
type Grid[T Number] struct {
	nx, ny int
	data   []T
}

// New allocates a zeroed grid with the given shape.
func New[T Number](nx, ny int) (*Grid[T], error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("invalid grid shape: nx=%d, ny=%d", nx, ny)
	}
	return &Grid[T]{nx: nx, ny: ny, data: make([]T, nx*ny)}, nil
}

// Nx returns the number of rows.
func (g *Grid[T]) Nx() int { return g.nx }

// Ny returns the number of columns.
func (g *Grid[T]) Ny() int { return g.ny }

// Data exposes the backing slice so hot loops and device copies can
// address the grid linearly.
func (g *Grid[T]) Data() []T { return g.data }

// At returns element (i, j). Out-of-range access panics: indexing past
// the grid is a programming error, not a runtime condition.
func (g *Grid[T]) At(i, j int) T {
	g.check(i, j)
	return g.data[i*g.ny+j]
}

// Set stores v at (i, j), with the same bounds policy as At.
func (g *Grid[T]) Set(i, j int, v T) {
	g.check(i, j)
	g.data[i*g.ny+j] = v
}

// AtU is the unchecked fast path used by the stencil loops. Callers must
// guarantee 0 <= i < Nx and 0 <= j < Ny.
func (g *Grid[T]) AtU(i, j int) T { return g.data[i*g.ny+j] }

// SetU is the unchecked counterpart of Set.
func (g *Grid[T]) SetU(i, j int, v T) { g.data[i*g.ny+j] = v }

// AddU adds v to element (i, j) without bounds checking.
func (g *Grid[T]) AddU(i, j int, v T) { g.data[i*g.ny+j] += v }

func (g *Grid[T]) check(i, j int) {
	if i < 0 || i >= g.nx || j < 0 || j >= g.ny {
		panic(fmt.Sprintf("grid index (%d, %d) out of range [0,%d)x[0,%d)", i, j, g.nx, g.ny))
	}
}

// Fill sets every element to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Zero resets every element to the zero value.
func (g *Grid[T]) Zero() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}

// Clone returns a deep copy with the same shape and contents.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{nx: g.nx, ny: g.ny, data: make([]T, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom copies the contents of o into g. Shapes must match exactly.
func (g *Grid[T]) CopyFrom(o *Grid[T]) error {
	if g.nx != o.nx || g.ny != o.ny {
		return fmt.Errorf("shape mismatch: dst (%d, %d), src (%d, %d)", g.nx, g.ny, o.nx, o.ny)
	}
	copy(g.data, o.data)
	return nil
}

// Matrix returns a gonum view of a float64 grid. The returned Dense
// shares the grid's backing storage, so writes through either alias.
func Matrix(g *Grid[float64]) *mat.Dense {
	return mat.NewDense(g.nx, g.ny, g.data)
}

// FromDense copies a gonum Dense into a freshly allocated grid.
func FromDense(d *mat.Dense) *Grid[float64] {
	nx, ny := d.Dims()
	g := &Grid[float64]{nx: nx, ny: ny, data: make([]float64, nx*ny)}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			g.data[i*ny+j] = d.At(i, j)
		}
	}
	return g
}
