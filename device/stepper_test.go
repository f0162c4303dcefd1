package device

import (
	"testing"

	"github.com/notargets/gocca"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinPdeS/LightWave2D/medium"
	"github.com/MartinPdeS/LightWave2D/solver"
	"github.com/MartinPdeS/LightWave2D/source"
)

// testDevice tries to create an OCCA device and skips the test when no
// backend is installed on the machine running the suite.
func testDevice(t *testing.T) *gocca.OCCADevice {
	t.Helper()
	dev, err := NewDevice()
	if err != nil {
		t.Skipf("no OCCA backend available: %v", err)
	}
	return dev
}

func runScenario(t *testing.T, opts []solver.Option) *solver.History {
	t.Helper()
	const n = 32
	stamps := make([]float64, 16)
	for k := range stamps {
		stamps[k] = float64(k) * 0.25
	}

	cfg, err := solver.NewConfig(1.0, 1.0, 0.25, n, n, stamps)
	require.NoError(t, err)
	med, err := medium.NewMap(n, n, 1.0)
	require.NoError(t, err)
	require.NoError(t, med.ApplyPML(5, 0.04, 3))
	med.Gamma.Set(n/2+3, n/2, 0.05)

	src, err := source.NewImpulsive(1.0, 0.5, 0.5, []source.Cell{{X: n / 2, Y: n / 2}})
	require.NoError(t, err)

	eng, err := solver.NewEngine(cfg, med, []source.Source{src}, opts...)
	require.NoError(t, err)

	history, err := solver.NewHistory(len(stamps), n, n)
	require.NoError(t, err)
	require.NoError(t, eng.Run(history))
	return history
}

func TestStepperMatchesHost(t *testing.T) {
	dev := testDevice(t)
	defer dev.Free()

	host := runScenario(t, []solver.Option{solver.WithWorkers(1)})
	accel := runScenario(t, []solver.Option{solver.WithStepper(NewStepperFactory(dev))})

	require.Equal(t, host.NSteps(), accel.NSteps())
	for k, want := range host.Data() {
		assert.InDelta(t, want, accel.Data()[k], 1e-12)
	}
}

func TestStepperMatchesHostWithKerr(t *testing.T) {
	dev := testDevice(t)
	defer dev.Free()

	host := runScenario(t, []solver.Option{solver.WithWorkers(1), solver.WithKerrEffect()})
	accel := runScenario(t, []solver.Option{
		solver.WithKerrEffect(),
		solver.WithStepper(NewStepperFactory(dev)),
	})

	for k, want := range host.Data() {
		assert.InDelta(t, want, accel.Data()[k], 1e-12)
	}
}

func TestStepperReleasesResources(t *testing.T) {
	dev := testDevice(t)
	defer dev.Free()

	cfg, err := solver.NewConfig(1.0, 1.0, 0.25, 8, 8, []float64{0})
	require.NoError(t, err)
	med, err := medium.NewMap(8, 8, 1.0)
	require.NoError(t, err)
	fields, err := solver.NewFieldState(8, 8)
	require.NoError(t, err)

	s, err := newStepper(dev, cfg, med, fields, solver.StepperOptions{SecondHarmonic: true})
	require.NoError(t, err)
	require.NoError(t, s.Step())
	require.NoError(t, s.Sync())
	s.Free()
}
