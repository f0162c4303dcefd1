package solver

import (
	"fmt"

	"github.com/MartinPdeS/LightWave2D/grid"
	"github.com/MartinPdeS/LightWave2D/medium"
)

// Stepper advances the coupled field updates for one time step: magnetic
// update, electric update, nonlinear corrections, absorption — in that
// order, leaving the updated Ez visible in the engine's FieldState.
// Source injection and history recording stay on the engine side, so a
// stepper that keeps working storage elsewhere (e.g. on an accelerator)
// must republish Ez in Step and re-ingest it in Sync.
type Stepper interface {
	// Step runs the four field-update phases for the current step.
	Step() error
	// Sync pushes host-side Ez mutations (source injection) back into
	// the stepper's working storage before the next Step.
	Sync() error
	// Free releases any resources held for the run.
	Free()
}

// StepperOptions selects which nonlinear corrections a stepper applies.
type StepperOptions struct {
	// Kerr enables the intensity-dependent permittivity correction.
	Kerr bool
	// SecondHarmonic enables the per-cell gamma*Ez^2 gain term.
	SecondHarmonic bool
	// Workers bounds the in-step loop parallelism (host stepper only).
	Workers int
}

// StepperFactory builds a Stepper bound to one run's configuration,
// medium, and freshly created field state.
type StepperFactory func(cfg *Config, med *medium.Map, fields *FieldState, opts StepperOptions) (Stepper, error)

// hostStepper is the pure-Go stepper. Gradient scratch buffers are
// allocated once per run and reused across steps; each pass over them is
// joined before the dependent update pass starts.
type hostStepper struct {
	cfg    *Config
	med    *medium.Map
	fields *FieldState
	opts   StepperOptions

	dEzDx *grid.Grid[float64] // (nx-1, ny)
	dEzDy *grid.Grid[float64] // (nx, ny-1)
	dHyDx *grid.Grid[float64] // interior cells of (nx, ny)
	dHxDy *grid.Grid[float64]
}

func newHostStepper(cfg *Config, med *medium.Map, fields *FieldState, opts StepperOptions) (Stepper, error) {
	nx, ny := cfg.Nx(), cfg.Ny()

	dEzDx, err := grid.New[float64](nx-1, ny)
	if err != nil {
		return nil, fmt.Errorf("allocating gradient scratch: %w", err)
	}
	dEzDy, _ := grid.New[float64](nx, ny-1)
	dHyDx, _ := grid.New[float64](nx, ny)
	dHxDy, _ := grid.New[float64](nx, ny)

	return &hostStepper{
		cfg: cfg, med: med, fields: fields, opts: opts,
		dEzDx: dEzDx, dEzDy: dEzDy, dHyDx: dHyDx, dHxDy: dHxDy,
	}, nil
}

func (s *hostStepper) Step() error {
	s.updateMagneticFields()
	s.updateElectricField()
	if s.opts.Kerr {
		s.applyKerrEffect()
	}
	if s.opts.SecondHarmonic {
		s.applySecondHarmonicGeneration()
	}
	s.applyAbsorption()
	return nil
}

// Sync is a no-op: the host stepper works directly on the FieldState.
func (s *hostStepper) Sync() error { return nil }

func (s *hostStepper) Free() {}

// updateMagneticFields applies the forward-difference Yee gradients of Ez
// and steps Hx, Hy. The last row (for Hy) and last column (for Hx) fall
// outside the gradient range and are left untouched every step: the open
// edge of the scheme.
func (s *hostStepper) updateMagneticFields() {
	nx, ny := s.cfg.Nx(), s.cfg.Ny()
	dx, dy := s.cfg.Dx(), s.cfg.Dy()
	dtOverMu := s.cfg.Dt() / s.med.Mu

	ez, hx, hy := s.fields.Ez, s.fields.Hx, s.fields.Hy
	sigX, sigY := s.med.SigmaX, s.med.SigmaY
	dEzDx, dEzDy := s.dEzDx, s.dEzDy

	forEachRow(nx-1, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny; j++ {
				dEzDx.SetU(i, j, (ez.AtU(i+1, j)-ez.AtU(i, j))/dx)
			}
		}
	})
	forEachRow(nx, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny-1; j++ {
				dEzDy.SetU(i, j, (ez.AtU(i, j+1)-ez.AtU(i, j))/dy)
			}
		}
	})

	forEachRow(nx, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny-1; j++ {
				hx.AddU(i, j, -dtOverMu*dEzDy.AtU(i, j)*(1-sigY.AtU(i, j)*dtOverMu/2))
			}
		}
	})
	forEachRow(nx-1, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny; j++ {
				hy.AddU(i, j, dtOverMu*dEzDx.AtU(i, j)*(1-sigX.AtU(i, j)*dtOverMu/2))
			}
		}
	})
}

// updateElectricField applies the centered-difference gradients of the
// magnetic fields and steps Ez over the interior. The one-cell border is
// excluded by construction: an implicit fixed boundary.
func (s *hostStepper) updateElectricField() {
	nx, ny := s.cfg.Nx(), s.cfg.Ny()
	dx, dy, dt := s.cfg.Dx(), s.cfg.Dy(), s.cfg.Dt()

	ez, hx, hy := s.fields.Ez, s.fields.Hx, s.fields.Hy
	eps := s.med.Eps
	dHyDx, dHxDy := s.dHyDx, s.dHxDy

	forEachRow(nx-2, s.opts.Workers, func(i0, i1 int) {
		for i := i0 + 1; i < i1+1; i++ {
			for j := 1; j < ny-1; j++ {
				dHyDx.SetU(i, j, (hy.AtU(i, j)-hy.AtU(i-1, j))/dx)
				dHxDy.SetU(i, j, (hx.AtU(i, j)-hx.AtU(i, j-1))/dy)
			}
		}
	})

	forEachRow(nx-2, s.opts.Workers, func(i0, i1 int) {
		for i := i0 + 1; i < i1+1; i++ {
			for j := 1; j < ny-1; j++ {
				ez.AddU(i, j, (dt/eps.AtU(i, j))*(dHyDx.AtU(i, j)-dHxDy.AtU(i, j)))
			}
		}
	})
}

// applyKerrEffect scales the interior Ez by dt over the intensity-shifted
// permittivity.
func (s *hostStepper) applyKerrEffect() {
	nx, ny, dt := s.cfg.Nx(), s.cfg.Ny(), s.cfg.Dt()
	ez := s.fields.Ez
	eps, n2 := s.med.Eps, s.med.N2

	forEachRow(nx-2, s.opts.Workers, func(i0, i1 int) {
		for i := i0 + 1; i < i1+1; i++ {
			for j := 1; j < ny-1; j++ {
				intensity := ez.AtU(i, j) * ez.AtU(i, j)
				ez.SetU(i, j, ez.AtU(i, j)*(dt/(eps.AtU(i, j)+n2.AtU(i, j)*intensity)))
			}
		}
	})
}

// applySecondHarmonicGeneration adds the per-cell gain/loss term
// gamma * Ez^2 * dt over the full grid.
func (s *hostStepper) applySecondHarmonicGeneration() {
	nx, ny, dt := s.cfg.Nx(), s.cfg.Ny(), s.cfg.Dt()
	ez := s.fields.Ez
	gamma := s.med.Gamma

	forEachRow(nx, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny; j++ {
				v := ez.AtU(i, j)
				ez.AddU(i, j, gamma.AtU(i, j)*v*v*dt)
			}
		}
	})
}

// applyAbsorption damps Ez by the per-cell conductivity factor, clamped
// to [0, 1] so a coarse sigma map can never amplify the field.
func (s *hostStepper) applyAbsorption() {
	nx, ny, dt := s.cfg.Nx(), s.cfg.Ny(), s.cfg.Dt()
	ez := s.fields.Ez
	eps := s.med.Eps
	sigX, sigY := s.med.SigmaX, s.med.SigmaY

	forEachRow(nx, s.opts.Workers, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < ny; j++ {
				factor := 1 - (sigX.AtU(i, j)+sigY.AtU(i, j))*(dt/eps.AtU(i, j))/2
				if factor < 0 {
					factor = 0
				} else if factor > 1 {
					factor = 1
				}
				ez.SetU(i, j, ez.AtU(i, j)*factor)
			}
		}
	})
}
