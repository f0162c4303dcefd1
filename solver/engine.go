package solver

import (
	"fmt"
	"runtime"

	"github.com/MartinPdeS/LightWave2D/medium"
	"github.com/MartinPdeS/LightWave2D/source"
)

// Engine orchestrates the FDTD time loop. Per step, always in this
// order: magnetic update, electric update, nonlinear corrections,
// absorption, source injection (registration order), Ez snapshot into
// the history buffer, cursor advance. A run is atomic from the caller's
// perspective: validation happens before any mutation, no mid-run state
// is exposed, and on completion the engine is idle again.
type Engine struct {
	cfg     *Config
	med     *medium.Map
	sources []source.Source

	opts    StepperOptions
	factory StepperFactory

	fields *FieldState // state of the most recently completed run
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithWorkers bounds the in-step loop parallelism. 1 forces serial
// execution; the default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.opts.Workers = n
		}
	}
}

// WithKerrEffect enables the intensity-dependent permittivity correction
// (off by default).
func WithKerrEffect() Option {
	return func(e *Engine) { e.opts.Kerr = true }
}

// WithoutSecondHarmonic disables the gamma*Ez^2 gain term (on by
// default).
func WithoutSecondHarmonic() Option {
	return func(e *Engine) { e.opts.SecondHarmonic = false }
}

// WithStepper swaps the field-update implementation, e.g. for a
// device-accelerated stepper.
func WithStepper(f StepperFactory) Option {
	return func(e *Engine) {
		if f != nil {
			e.factory = f
		}
	}
}

// NewEngine binds a configuration, a medium, and a source list. The
// medium is validated against the configuration here so a mismatched
// setup fails before any run is attempted; source targets are
// re-validated at run entry.
func NewEngine(cfg *Config, med *medium.Map, sources []source.Source, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("engine requires a configuration")
	}
	if med == nil {
		return nil, fmt.Errorf("engine requires a medium")
	}
	if err := med.Validate(cfg.Nx(), cfg.Ny()); err != nil {
		return nil, fmt.Errorf("medium does not match configuration: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		med:     med,
		sources: append([]source.Source(nil), sources...),
		opts: StepperOptions{
			SecondHarmonic: true,
			Workers:        runtime.NumCPU(),
		},
		factory: newHostStepper,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// AddSource appends a source; injection order follows registration
// order.
func (e *Engine) AddSource(s source.Source) {
	e.sources = append(e.sources, s)
}

// Fields returns the field state left by the most recently completed
// run, or nil if the engine has not run yet. Diagnostics only; the grids
// are not reused by later runs.
func (e *Engine) Fields() *FieldState { return e.fields }

// Run executes the full time loop, writing one Ez snapshot per step into
// history. The history shape must equal (NSteps, Nx, Ny); any shape or
// source-target error aborts before the fields or the buffer are
// touched. Non-finite values arising from an unstable dt propagate
// silently into the output.
func (e *Engine) Run(history *History) error {
	if history == nil {
		return fmt.Errorf("run requires a history buffer")
	}
	if history.NSteps() != e.cfg.NSteps() || history.Nx() != e.cfg.Nx() || history.Ny() != e.cfg.Ny() {
		return fmt.Errorf("history shape (%d, %d, %d) does not match configuration (%d, %d, %d)",
			history.NSteps(), history.Nx(), history.Ny(),
			e.cfg.NSteps(), e.cfg.Nx(), e.cfg.Ny())
	}
	if err := e.med.Validate(e.cfg.Nx(), e.cfg.Ny()); err != nil {
		return fmt.Errorf("medium does not match configuration: %w", err)
	}
	for k, s := range e.sources {
		if err := source.ValidateTargets(s, e.cfg.Nx(), e.cfg.Ny()); err != nil {
			return fmt.Errorf("source %d: %w", k, err)
		}
	}

	e.cfg.rewind()

	fields, err := NewFieldState(e.cfg.Nx(), e.cfg.Ny())
	if err != nil {
		return err
	}
	stepper, err := e.factory(e.cfg, e.med, fields, e.opts)
	if err != nil {
		return fmt.Errorf("building stepper: %w", err)
	}
	defer stepper.Free()

	nSteps := e.cfg.NSteps()
	for step := 0; step < nSteps; step++ {
		if err := stepper.Step(); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		for _, s := range e.sources {
			s.AddToField(e.cfg.Time(), fields.Ez)
		}
		if err := stepper.Sync(); err != nil {
			return fmt.Errorf("step %d: syncing injected field: %w", step, err)
		}

		history.record(e.cfg.Iteration(), fields.Ez)

		if step+1 < nSteps {
			if err := e.cfg.Advance(); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
		}
	}

	e.cfg.rewind()
	e.fields = fields
	return nil
}
