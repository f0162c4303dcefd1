package medium

import (
	"fmt"
	"math"
)

// ApplyPML grades the conductivity maps into an absorbing frame of the
// given width along all four edges. The profile rises polynomially from
// zero at the inner PML boundary to sigmaMax at the outermost cell:
//
//	sigma_x[i,j] += sigmaMax * ((width-i)/width)^order            for i < width
//	sigma_x[i,j] += sigmaMax * ((i-(nx-width-1))/width)^order     for i >= nx-width
//
// and analogously for sigma_y in j. Contributions accumulate, so a PML
// can be layered over user-authored conductivity maps.
func (m *Map) ApplyPML(width int, sigmaMax float64, order int) error {
	nx, ny := m.Eps.Nx(), m.Eps.Ny()
	if width <= 0 || 2*width > nx || 2*width > ny {
		return fmt.Errorf("pml width %d does not fit grid (%d, %d)", width, nx, ny)
	}
	if sigmaMax < 0 {
		return fmt.Errorf("pml sigma_max must be non-negative, got %g", sigmaMax)
	}
	if order < 1 {
		return fmt.Errorf("pml order must be at least 1, got %d", order)
	}

	w := float64(width)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if i < width {
				m.SigmaX.AddU(i, j, sigmaMax*math.Pow(float64(width-i)/w, float64(order)))
			} else if i >= nx-width {
				m.SigmaX.AddU(i, j, sigmaMax*math.Pow(float64(i-(nx-width-1))/w, float64(order)))
			}

			if j < width {
				m.SigmaY.AddU(i, j, sigmaMax*math.Pow(float64(width-j)/w, float64(order)))
			} else if j >= ny-width {
				m.SigmaY.AddU(i, j, sigmaMax*math.Pow(float64(j-(ny-width-1))/w, float64(order)))
			}
		}
	}
	return nil
}
