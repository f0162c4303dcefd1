package device

// OKL sources for the per-step update kernels. Grids are flattened
// row-major (cell (i, j) at i*ny+j); every kernel covers the same loop
// ranges as the host stepper, including the untouched open edges. The
// magnetic and electric kernels fold the gradient computation into the
// update: each reads one field family and writes the other, so no cell
// is read after being written within a kernel.

const updateMagneticKernel = `
@kernel void updateMagnetic(const int nx, const int ny,
                            const double dx, const double dy,
                            const double dtOverMu,
                            const double *Ez,
                            const double *sigmaX, const double *sigmaY,
                            double *Hx, double *Hy) {
  for (int i = 0; i < nx; ++i; @outer) {
    for (int j = 0; j < ny; ++j; @inner) {
      const int id = i * ny + j;
      if (j < ny - 1) {
        const double dEzDy = (Ez[id + 1] - Ez[id]) / dy;
        Hx[id] -= dtOverMu * dEzDy * (1.0 - sigmaY[id] * dtOverMu / 2.0);
      }
      if (i < nx - 1) {
        const double dEzDx = (Ez[id + ny] - Ez[id]) / dx;
        Hy[id] += dtOverMu * dEzDx * (1.0 - sigmaX[id] * dtOverMu / 2.0);
      }
    }
  }
}
`

const updateElectricKernel = `
@kernel void updateElectric(const int nx, const int ny,
                            const double dx, const double dy,
                            const double dt,
                            const double *Hx, const double *Hy,
                            const double *eps,
                            double *Ez) {
  for (int i = 0; i < nx; ++i; @outer) {
    for (int j = 0; j < ny; ++j; @inner) {
      if (i > 0 && i < nx - 1 && j > 0 && j < ny - 1) {
        const int id = i * ny + j;
        const double dHyDx = (Hy[id] - Hy[id - ny]) / dx;
        const double dHxDy = (Hx[id] - Hx[id - 1]) / dy;
        Ez[id] += (dt / eps[id]) * (dHyDx - dHxDy);
      }
    }
  }
}
`

const applyKerrKernel = `
@kernel void applyKerr(const int nx, const int ny,
                       const double dt,
                       const double *eps, const double *n2,
                       double *Ez) {
  for (int i = 0; i < nx; ++i; @outer) {
    for (int j = 0; j < ny; ++j; @inner) {
      if (i > 0 && i < nx - 1 && j > 0 && j < ny - 1) {
        const int id = i * ny + j;
        const double intensity = Ez[id] * Ez[id];
        Ez[id] *= dt / (eps[id] + n2[id] * intensity);
      }
    }
  }
}
`

const applySHGKernel = `
@kernel void applySHG(const int nx, const int ny,
                      const double dt,
                      const double *gamma,
                      double *Ez) {
  for (int i = 0; i < nx; ++i; @outer) {
    for (int j = 0; j < ny; ++j; @inner) {
      const int id = i * ny + j;
      const double intensity = Ez[id] * Ez[id];
      Ez[id] += gamma[id] * intensity * dt;
    }
  }
}
`

const applyAbsorptionKernel = `
@kernel void applyAbsorption(const int nx, const int ny,
                             const double dt,
                             const double *eps,
                             const double *sigmaX, const double *sigmaY,
                             double *Ez) {
  for (int i = 0; i < nx; ++i; @outer) {
    for (int j = 0; j < ny; ++j; @inner) {
      const int id = i * ny + j;
      double factor = 1.0 - (sigmaX[id] + sigmaY[id]) * (dt / eps[id]) / 2.0;
      if (factor < 0.0) factor = 0.0;
      if (factor > 1.0) factor = 1.0;
      Ez[id] *= factor;
    }
  }
}
`
