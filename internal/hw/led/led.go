// Package led drives the status indicator LED. One short pulse per loop
// iteration proves liveness; distinct multi-pulse patterns signal failures.
package led

import (
	"context"
	"time"
)

// DefaultPin is the activity LED line on a Raspberry Pi.
const DefaultPin = 25

// Indicator emits blink patterns. Blocking is cooperative: the off/on waits
// respect ctx cancellation.
type Indicator interface {
	// Blink emits pulses flashes of on duration each, separated by off.
	// The trailing off-wait is skipped.
	Blink(ctx context.Context, pulses int, on, off time.Duration) error
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
