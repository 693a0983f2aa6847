package mqtt

import "github.com/sweeney/hvac-logger/internal/report"

// FakePublisher records mirrored reports for test assertions.
type FakePublisher struct {
	// Records contains every report that was published.
	Records []report.Record

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, is returned by PublishReport.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishReport records the report.
func (f *FakePublisher) PublishReport(rec report.Record) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Records = append(f.Records, rec)

	payload, err := FormatPayload(rec)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
