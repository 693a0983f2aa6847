package led

import (
	"context"
	"time"
)

// BlinkCall records one Blink invocation.
type BlinkCall struct {
	Pulses int
	On     time.Duration
	Off    time.Duration
}

// FakeIndicator records blink patterns for test assertions. The waits are
// not performed.
type FakeIndicator struct {
	// Calls records every Blink invocation.
	Calls []BlinkCall

	// BlinkError, if set, is returned by Blink.
	BlinkError error
}

// NewFakeIndicator creates a FakeIndicator.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Blink records the call without sleeping.
func (f *FakeIndicator) Blink(ctx context.Context, pulses int, on, off time.Duration) error {
	if f.BlinkError != nil {
		return f.BlinkError
	}
	f.Calls = append(f.Calls, BlinkCall{Pulses: pulses, On: on, Off: off})
	return nil
}
