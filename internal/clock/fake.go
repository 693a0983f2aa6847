package clock

import "time"

// FakeRTC is a test double holding an in-memory clock value.
type FakeRTC struct {
	// Current is returned by ReadTime and overwritten by SetTime.
	Current Estimate

	// SetCalls records every value written via SetTime.
	SetCalls []Estimate

	// ReadErr, if set, is returned by ReadTime.
	ReadErr error

	// SetErr, if set, is returned by SetTime (the write is discarded).
	SetErr error
}

// NewFakeRTC creates a FakeRTC starting at the given estimate.
func NewFakeRTC(current Estimate) *FakeRTC {
	return &FakeRTC{Current: current}
}

// ReadTime returns the current fake clock value.
func (f *FakeRTC) ReadTime() (Estimate, error) {
	if f.ReadErr != nil {
		return Estimate{}, f.ReadErr
	}
	return f.Current, nil
}

// SetTime records and commits the write.
func (f *FakeRTC) SetTime(e Estimate) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.SetCalls = append(f.SetCalls, e)
	f.Current = e
	return nil
}

// Advance moves the fake clock forward by whole seconds.
func (f *FakeRTC) Advance(seconds int64) {
	f.Current = FromTime(f.Current.Time().Add(time.Duration(seconds)*time.Second), f.Current.Synced)
}
