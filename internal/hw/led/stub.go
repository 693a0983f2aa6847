//go:build !linux

package led

import (
	"context"
	"errors"
	"time"
)

// RealIndicator is not available on non-Linux platforms.
type RealIndicator struct{}

// NewRealIndicator returns an error on non-Linux platforms.
func NewRealIndicator(chipName string, pin int) (*RealIndicator, error) {
	return nil, errors.New("led: not supported on this platform (requires Linux)")
}

// Blink is not implemented on non-Linux platforms.
func (r *RealIndicator) Blink(ctx context.Context, pulses int, on, off time.Duration) error {
	return errors.New("led: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealIndicator) Close() error { return nil }
