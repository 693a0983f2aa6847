package sampler

import (
	"context"
	"errors"

	"github.com/sweeney/hvac-logger/internal/hvac"
)

// ErrScriptExhausted is returned by FakeSampler once every scripted snapshot
// has been consumed. Loop tests use it as their stop condition.
var ErrScriptExhausted = errors.New("sampler script exhausted")

// FakeSampler returns scripted snapshots.
type FakeSampler struct {
	// Snapshots are returned in order, one per Sample call.
	Snapshots []hvac.Snapshot

	// SampleErr, if set, is returned by Sample immediately.
	SampleErr error

	// OnSample, if set, is invoked with the zero-based call index before
	// each scripted snapshot is returned. Tests use it to advance fake
	// clocks between iterations.
	OnSample func(i int)

	index int
}

// NewFakeSampler creates a FakeSampler with the given script.
func NewFakeSampler(snapshots ...hvac.Snapshot) *FakeSampler {
	return &FakeSampler{Snapshots: snapshots}
}

// Sample returns the next scripted snapshot, or ErrScriptExhausted.
func (f *FakeSampler) Sample(ctx context.Context) (hvac.Snapshot, error) {
	if f.SampleErr != nil {
		return hvac.Snapshot{}, f.SampleErr
	}
	if f.index >= len(f.Snapshots) {
		return hvac.Snapshot{}, ErrScriptExhausted
	}
	i := f.index
	f.index++
	if f.OnSample != nil {
		f.OnSample(i)
	}
	return f.Snapshots[i], nil
}
