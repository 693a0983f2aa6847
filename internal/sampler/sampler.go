// Package sampler builds point-in-time snapshots of the HVAC controller
// from the digital inputs and the one-wire temperature probes.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/hw/gpio"
	"github.com/sweeney/hvac-logger/internal/hw/onewire"
)

// DefaultConvertDelay is the worst-case DS18x20 conversion time at default
// 12-bit resolution.
const DefaultConvertDelay = 750 * time.Millisecond

// Sampler produces a fresh snapshot. Sample may suspend for hardware
// conversion latency.
type Sampler interface {
	Sample(ctx context.Context) (hvac.Snapshot, error)
}

// HardwareSampler reads real GPIO and one-wire hardware.
type HardwareSampler struct {
	digitals     gpio.Reader
	temps        onewire.Reader
	probes       map[hvac.Probe]string // probe -> w1 device id
	convertDelay time.Duration
}

// NewHardware creates a sampler over the given drivers. probes maps each
// configured probe position to its one-wire device id; positions without a
// sensor are simply absent from every snapshot.
func NewHardware(digitals gpio.Reader, temps onewire.Reader, probes map[hvac.Probe]string, convertDelay time.Duration) *HardwareSampler {
	return &HardwareSampler{
		digitals:     digitals,
		temps:        temps,
		probes:       probes,
		convertDelay: convertDelay,
	}
}

// Sample reads the digital inputs, waits out the temperature conversion,
// then reads each configured probe. Any hardware error fails the sample.
func (s *HardwareSampler) Sample(ctx context.Context) (hvac.Snapshot, error) {
	var snap hvac.Snapshot

	mask, err := s.digitals.ReadDigitals()
	if err != nil {
		return hvac.Snapshot{}, fmt.Errorf("read digitals: %w", err)
	}
	snap.SetDigitals(mask)

	if len(s.probes) == 0 {
		return snap, nil
	}

	t := time.NewTimer(s.convertDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return hvac.Snapshot{}, ctx.Err()
	case <-t.C:
	}

	for probe, id := range s.probes {
		c, err := s.temps.ReadTempC(id)
		if err != nil {
			return hvac.Snapshot{}, fmt.Errorf("read %s probe: %w", probe, err)
		}
		snap.SetTemp(probe, c)
	}

	return snap, nil
}
