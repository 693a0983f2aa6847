// Package mqtt mirrors accepted reports to an MQTT broker for live
// dashboards. The mirror is a side channel: its failures are logged, never
// fatal, and it plays no part in the store contract or restart policy.
package mqtt

import (
	"encoding/json"

	"github.com/sweeney/hvac-logger/internal/report"
)

// Topic is the MQTT topic for mirrored state reports.
const Topic = "home/hvac/state"

// Publisher mirrors reports to MQTT.
type Publisher interface {
	// PublishReport sends one accepted report to the broker.
	PublishReport(rec report.Record) error

	// Close disconnects from the broker.
	Close() error
}

// FormatPayload creates the JSON payload for a mirrored report. It is the
// same document the store received.
func FormatPayload(rec report.Record) ([]byte, error) {
	return json.Marshal(rec)
}
