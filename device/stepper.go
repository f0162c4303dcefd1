package device

import (
	"fmt"
	"unsafe"

	"github.com/notargets/gocca"

	"github.com/MartinPdeS/LightWave2D/medium"
	"github.com/MartinPdeS/LightWave2D/solver"
)

const float64Bytes = 8

// Stepper holds the device-resident field and medium buffers plus the
// compiled update kernels for one run. The medium is uploaded once at
// construction; Ez travels device->host after the updates (for source
// injection and recording) and host->device before the next step.
type Stepper struct {
	dev  *gocca.OCCADevice
	cfg  *solver.Config
	opts solver.StepperOptions
	mu   float64

	fields *solver.FieldState

	kernels map[string]*gocca.OCCAKernel
	memory  map[string]*gocca.OCCAMemory

	gridBytes int64
}

// NewStepperFactory adapts an OCCA device into a solver.StepperFactory.
// The device outlives individual runs; each run gets its own buffers and
// kernels.
func NewStepperFactory(dev *gocca.OCCADevice) solver.StepperFactory {
	return func(cfg *solver.Config, med *medium.Map, fields *solver.FieldState, opts solver.StepperOptions) (solver.Stepper, error) {
		return newStepper(dev, cfg, med, fields, opts)
	}
}

func newStepper(dev *gocca.OCCADevice, cfg *solver.Config, med *medium.Map, fields *solver.FieldState, opts solver.StepperOptions) (*Stepper, error) {
	s := &Stepper{
		dev:       dev,
		cfg:       cfg,
		opts:      opts,
		mu:        med.Mu,
		fields:    fields,
		kernels:   make(map[string]*gocca.OCCAKernel),
		memory:    make(map[string]*gocca.OCCAMemory),
		gridBytes: int64(cfg.Nx()*cfg.Ny()) * float64Bytes,
	}

	// Zero-initialized field buffers, medium maps uploaded once.
	s.alloc("Ez", fields.Ez.Data())
	s.alloc("Hx", fields.Hx.Data())
	s.alloc("Hy", fields.Hy.Data())
	s.alloc("eps", med.Eps.Data())
	s.alloc("n2", med.N2.Data())
	s.alloc("gamma", med.Gamma.Data())
	s.alloc("sigmaX", med.SigmaX.Data())
	s.alloc("sigmaY", med.SigmaY.Data())

	kernels := []struct {
		name   string
		source string
	}{
		{"updateMagnetic", updateMagneticKernel},
		{"updateElectric", updateElectricKernel},
		{"applyKerr", applyKerrKernel},
		{"applySHG", applySHGKernel},
		{"applyAbsorption", applyAbsorptionKernel},
	}
	for _, k := range kernels {
		if err := s.buildKernel(k.source, k.name); err != nil {
			s.Free()
			return nil, err
		}
	}
	return s, nil
}

func (s *Stepper) alloc(name string, host []float64) {
	s.memory[name] = s.dev.Malloc(s.gridBytes, unsafe.Pointer(&host[0]), nil)
}

func (s *Stepper) buildKernel(source, name string) error {
	var kernel *gocca.OCCAKernel
	var err error

	if s.dev.Mode() == "OpenMP" {
		// OCCA's OpenMP backend misses the default -O3 flag.
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = s.dev.BuildKernelFromString(source, name, props)
	} else {
		kernel, err = s.dev.BuildKernelFromString(source, name, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build kernel %s: %w", name, err)
	}
	if kernel == nil {
		return fmt.Errorf("kernel build returned nil for %s", name)
	}
	s.kernels[name] = kernel
	return nil
}

// Step runs the update kernels in the fixed per-step order and publishes
// the resulting Ez into the host FieldState.
func (s *Stepper) Step() error {
	nx := int32(s.cfg.Nx())
	ny := int32(s.cfg.Ny())
	dx, dy, dt := s.cfg.Dx(), s.cfg.Dy(), s.cfg.Dt()

	if err := s.kernels["updateMagnetic"].RunWithArgs(nx, ny, dx, dy, dt/s.mu,
		s.memory["Ez"], s.memory["sigmaX"], s.memory["sigmaY"],
		s.memory["Hx"], s.memory["Hy"]); err != nil {
		return fmt.Errorf("updateMagnetic kernel: %w", err)
	}

	if err := s.kernels["updateElectric"].RunWithArgs(nx, ny, dx, dy, dt,
		s.memory["Hx"], s.memory["Hy"], s.memory["eps"],
		s.memory["Ez"]); err != nil {
		return fmt.Errorf("updateElectric kernel: %w", err)
	}

	if s.opts.Kerr {
		if err := s.kernels["applyKerr"].RunWithArgs(nx, ny, dt,
			s.memory["eps"], s.memory["n2"], s.memory["Ez"]); err != nil {
			return fmt.Errorf("applyKerr kernel: %w", err)
		}
	}

	if s.opts.SecondHarmonic {
		if err := s.kernels["applySHG"].RunWithArgs(nx, ny, dt,
			s.memory["gamma"], s.memory["Ez"]); err != nil {
			return fmt.Errorf("applySHG kernel: %w", err)
		}
	}

	if err := s.kernels["applyAbsorption"].RunWithArgs(nx, ny, dt,
		s.memory["eps"], s.memory["sigmaX"], s.memory["sigmaY"],
		s.memory["Ez"]); err != nil {
		return fmt.Errorf("applyAbsorption kernel: %w", err)
	}

	s.dev.Finish()

	ez := s.fields.Ez.Data()
	s.memory["Ez"].CopyTo(unsafe.Pointer(&ez[0]), s.gridBytes)
	return nil
}

// Sync pushes the host Ez (mutated by source injection) back to the
// device before the next step.
func (s *Stepper) Sync() error {
	ez := s.fields.Ez.Data()
	s.memory["Ez"].CopyFrom(unsafe.Pointer(&ez[0]), s.gridBytes)
	return nil
}

// Free releases all kernels and device memory for this run.
func (s *Stepper) Free() {
	for _, kernel := range s.kernels {
		kernel.Free()
	}
	for _, mem := range s.memory {
		mem.Free()
	}
	s.kernels = nil
	s.memory = nil
}
