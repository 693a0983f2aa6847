// Package hvac contains pure business logic for HVAC state significance.
// This package has NO external dependencies (no GPIO, HTTP, OS, or time.Sleep).
// Elapsed time is always injectable via time.Duration parameters.
package hvac

import (
	"errors"
	"fmt"
)

// Signal identifies one digital input of the HVAC controller.
// The value is the signal's bit position in the digitals mask.
type Signal int

const (
	SignalHeat Signal = iota
	SignalCool
	SignalFan
	SignalPurge
	SignalEmergency
	SignalZone1
	SignalZone2
	SignalZone3
	SignalZone4

	NumSignals = 9
)

var signalNames = [NumSignals]string{
	"heat", "cool", "fan", "purge", "emergency",
	"zone1", "zone2", "zone3", "zone4",
}

func (s Signal) String() string {
	if s < 0 || s >= NumSignals {
		return fmt.Sprintf("signal(%d)", int(s))
	}
	return signalNames[s]
}

// Probe identifies one DS18x20 temperature probe position.
type Probe int

const (
	ProbeOutdoor Probe = iota
	ProbeDischarge
	ProbeReturn
	ProbeAmbient
	ProbePanel

	NumProbes = 5
)

var probeNames = [NumProbes]string{
	"outdoor", "discharge", "return", "ambient", "panel",
}

func (p Probe) String() string {
	if p < 0 || p >= NumProbes {
		return fmt.Sprintf("probe(%d)", int(p))
	}
	return probeNames[p]
}

// ProbeByName maps a configuration name ("outdoor", "discharge", ...) to its
// Probe. The second result is false for unknown names.
func ProbeByName(name string) (Probe, bool) {
	for p, n := range probeNames {
		if n == name {
			return Probe(p), true
		}
	}
	return 0, false
}

// ErrUninitialized is returned when a flag or temperature is accessed before
// any sample populated it. Absent is a distinct state from all-zero; call
// sites must handle it explicitly.
var ErrUninitialized = errors.New("value accessed before being sampled")

// Snapshot is an immutable point-in-time sample of the controller state.
// Each field is explicitly present or absent; accessing an absent field is
// an error, never a silently-wrong default.
type Snapshot struct {
	digitals    uint16
	hasDigitals bool

	temps    [NumProbes]float64
	hasTemps [NumProbes]bool
}

// SetDigitals records the digital input bitmask.
func (s *Snapshot) SetDigitals(mask uint16) {
	s.digitals = mask
	s.hasDigitals = true
}

// SetTemp records one probe's reading in degrees Celsius.
func (s *Snapshot) SetTemp(p Probe, c float64) {
	s.temps[p] = c
	s.hasTemps[p] = true
}

// HasDigitals reports whether the digitals mask was sampled.
func (s Snapshot) HasDigitals() bool { return s.hasDigitals }

// HasTemp reports whether the given probe was sampled.
func (s Snapshot) HasTemp(p Probe) bool { return s.hasTemps[p] }

// Digitals returns the digital input bitmask.
func (s Snapshot) Digitals() (uint16, error) {
	if !s.hasDigitals {
		return 0, fmt.Errorf("digitals: %w", ErrUninitialized)
	}
	return s.digitals, nil
}

// Flag returns the on/off state of one digital signal.
func (s Snapshot) Flag(sig Signal) (bool, error) {
	if !s.hasDigitals {
		return false, fmt.Errorf("%s: %w", sig, ErrUninitialized)
	}
	return s.digitals&(1<<uint(sig)) != 0, nil
}

// Temp returns one probe's reading in degrees Celsius.
func (s Snapshot) Temp(p Probe) (float64, error) {
	if !s.hasTemps[p] {
		return 0, fmt.Errorf("%sTempC: %w", p, ErrUninitialized)
	}
	return s.temps[p], nil
}
