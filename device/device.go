// Package device runs the per-step field updates as OCCA kernels. It is
// a drop-in Stepper for the solver engine: the update kernels execute on
// the device while source injection and history recording stay on the
// host, with Ez shuttled across the boundary once in each direction per
// step.
package device

import (
	"fmt"

	"github.com/notargets/gocca"
)

// NewDevice creates an OCCA device, preferring parallel backends and
// falling back to Serial.
func NewDevice() (*gocca.OCCADevice, error) {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	var lastErr error
	for _, props := range backends {
		dev, err := gocca.NewDevice(props)
		if err == nil {
			return dev, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no OCCA backend available: %w", lastErr)
}
