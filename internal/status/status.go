// Package status provides a thread-safe status tracker for the hvac-logger
// daemon. The reporting loop writes it; the HTTP status page reads it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/hvac-logger/internal/hvac"
)

// NetworkInfo contains network state as published by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	StoreURL    string
	Broker      string
	HTTPAddr    string
	PollMs      int64
	HeartbeatMs int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	// State is the last sampled controller state; valid when Sampled.
	State   hvac.Snapshot
	Sampled bool

	LastReportID string
	Reports      int
	Collisions   int
	ClockSynced  bool
	Restarts     int

	StartTime time.Time
	Now       time.Time
	Network   *NetworkInfo
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// UpdateSample records the latest sampled state. Called every iteration.
func (t *Tracker) UpdateSample(state hvac.Snapshot) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Sampled = true
	t.mu.Unlock()
}

// RecordReport records an accepted report.
func (t *Tracker) RecordReport(id string, collisions int) {
	t.mu.Lock()
	t.snap.LastReportID = id
	t.snap.Reports++
	t.snap.Collisions = collisions
	t.mu.Unlock()
}

// SetClockSynced records whether a server timestamp has been applied.
func (t *Tracker) SetClockSynced(synced bool) {
	t.mu.Lock()
	t.snap.ClockSynced = synced
	t.mu.Unlock()
}

// IncRestarts counts one supervisor restart cycle.
func (t *Tracker) IncRestarts() {
	t.mu.Lock()
	t.snap.Restarts++
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
