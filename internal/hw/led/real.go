//go:build linux

package led

import (
	"context"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealIndicator drives an LED on a GPIO output line.
type RealIndicator struct {
	line *gpiocdev.Line
}

// NewRealIndicator requests the LED line on the given chip.
func NewRealIndicator(chipName string, pin int) (*RealIndicator, error) {
	line, err := gpiocdev.RequestLine(chipName, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request led pin %d: %w", pin, err)
	}
	return &RealIndicator{line: line}, nil
}

// Blink emits the pattern, starting from off.
func (r *RealIndicator) Blink(ctx context.Context, pulses int, on, off time.Duration) error {
	if err := r.line.SetValue(0); err != nil {
		return fmt.Errorf("led off: %w", err)
	}
	for i := 0; i < pulses; i++ {
		if i > 0 {
			if err := sleep(ctx, off); err != nil {
				return err
			}
		}
		if err := r.line.SetValue(1); err != nil {
			return fmt.Errorf("led on: %w", err)
		}
		if err := sleep(ctx, on); err != nil {
			return err
		}
		if err := r.line.SetValue(0); err != nil {
			return fmt.Errorf("led off: %w", err)
		}
	}
	return nil
}

// Close turns the LED off and releases the line.
func (r *RealIndicator) Close() error {
	r.line.SetValue(0)
	return r.line.Close()
}
