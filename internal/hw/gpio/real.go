//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/hvac-logger/internal/hvac"
)

// RealReader reads the digital inputs from actual hardware.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines [hvac.NumSignals]*gpiocdev.Line
}

// NewRealReader requests the nine input lines on the given chip.
// The controller's relay boards drive the lines directly, so no bias is
// applied.
func NewRealReader(chipName string, pins Pins) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	r := &RealReader{chip: chip}
	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		line, err := chip.RequestLine(pins[sig], gpiocdev.AsInput)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", sig, pins[sig], err)
		}
		r.lines[sig] = line
	}
	return r, nil
}

// ReadDigitals reads all nine lines into a bitmask.
func (r *RealReader) ReadDigitals() (uint16, error) {
	var mask uint16
	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		v, err := r.lines[sig].Value()
		if err != nil {
			return 0, fmt.Errorf("read %s pin: %w", sig, err)
		}
		if v != 0 {
			mask |= 1 << uint(sig)
		}
	}
	return mask, nil
}

// Close releases all requested lines and the chip.
func (r *RealReader) Close() error {
	var errs []error
	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		if r.lines[sig] == nil {
			continue
		}
		if err := r.lines[sig].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", sig, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
