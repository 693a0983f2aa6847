package clock

import "fmt"

// RTC reads and sets a hardware real-time clock. Implementations: DeviceRTC
// (Linux /dev/rtc) and FakeRTC (tests).
type RTC interface {
	// ReadTime returns the clock's current value. Provenance is not stored
	// in hardware; the Synchronizer layers it on top.
	ReadTime() (Estimate, error)

	// SetTime writes the clock. Fallible; failure is surfaced, not retried.
	SetTime(Estimate) error
}

// Synchronizer is the single owner of the node's clock estimate. It is not
// safe for concurrent use; the reporting loop is its only caller.
type Synchronizer struct {
	rtc    RTC
	synced bool // a server timestamp has been applied this run
}

// NewSynchronizer wraps the given hardware clock.
func NewSynchronizer(rtc RTC) *Synchronizer {
	return &Synchronizer{rtc: rtc}
}

// Now reads the hardware clock and returns the current best estimate. It
// never triggers a resync. A year below the plausibility threshold marks the
// estimate as unsynced regardless of history.
func (s *Synchronizer) Now() (Estimate, error) {
	e, err := s.rtc.ReadTime()
	if err != nil {
		return Estimate{}, fmt.Errorf("read hardware clock: %w", err)
	}
	e.Synced = s.synced && e.Year >= minPlausibleYear
	return e, nil
}

// Apply commits parsed as the new authoritative estimate, writing through to
// the hardware clock.
func (s *Synchronizer) Apply(parsed Estimate) error {
	if err := s.rtc.SetTime(parsed); err != nil {
		return fmt.Errorf("set hardware clock: %w", err)
	}
	s.synced = true
	return nil
}

// SyncFromHTTPDate parses a Date header and applies it if the drift warrants.
// Returns whether the hardware clock was written. A malformed header is an
// error and leaves the clock untouched.
func (s *Synchronizer) SyncFromHTTPDate(header string) (bool, error) {
	parsed, err := ParseHTTPDate(header)
	if err != nil {
		return false, err
	}
	current, err := s.Now()
	if err != nil {
		return false, err
	}
	if !ShouldResync(current, parsed) {
		return false, nil
	}
	if err := s.Apply(parsed); err != nil {
		return false, err
	}
	return true, nil
}

// Synced reports whether a server timestamp has been applied this run.
func (s *Synchronizer) Synced() bool { return s.synced }
