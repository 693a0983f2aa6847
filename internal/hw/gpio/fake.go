package gpio

import "errors"

// FakeReader is a test double returning scripted digitals masks.
type FakeReader struct {
	// Samples are the masks to return; each Read consumes the next one.
	// Once exhausted, the last sample repeats.
	Samples []uint16

	// ReadError, if set, is returned by ReadDigitals.
	ReadError error

	// Closed tracks whether Close was called.
	Closed bool

	index int
}

// NewFakeReader creates a FakeReader with the given scripted masks.
func NewFakeReader(samples []uint16) *FakeReader {
	return &FakeReader{Samples: samples}
}

// ReadDigitals returns the next scripted mask.
func (f *FakeReader) ReadDigitals() (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	mask := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return mask, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the reader to the first sample.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
