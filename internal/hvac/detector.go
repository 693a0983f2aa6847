package hvac

import (
	"math"
	"time"
)

// HeartbeatInterval is the maximum time between reports. A report is forced
// once this much time has passed since the last one, even with no change.
const HeartbeatInterval = 3600 * time.Second

// thresholds holds the per-probe significance threshold in degrees Celsius.
// A reading must move by MORE than its threshold to count as a change.
var thresholds = [NumProbes]float64{
	ProbeOutdoor:   1,
	ProbeDischarge: 1,
	ProbeReturn:    1,
	ProbeAmbient:   2,
	ProbePanel:     2,
}

// Threshold returns the probe's significance threshold in degrees Celsius.
func (p Probe) Threshold() float64 { return thresholds[p] }

// IsReportable decides whether cur is different enough from the last reported
// snapshot to record. It is a total function over every combination of
// present/absent fields:
//
//   - prev == nil (nothing reported yet) is always reportable.
//   - Any change to the digitals mask, including presence changing, is
//     reportable. Exact equality, no threshold.
//   - A temperature is compared only when both snapshots have a value for
//     that probe; a reading appearing or disappearing is not itself a change.
//   - elapsed at or beyond HeartbeatInterval forces a report.
func IsReportable(prev *Snapshot, cur Snapshot, elapsed time.Duration) bool {
	if prev == nil {
		return true
	}

	if cur.hasDigitals != prev.hasDigitals || cur.digitals != prev.digitals {
		return true
	}

	for p := Probe(0); p < NumProbes; p++ {
		if !prev.hasTemps[p] || !cur.hasTemps[p] {
			continue
		}
		if math.Abs(cur.temps[p]-prev.temps[p]) > thresholds[p] {
			return true
		}
	}

	return elapsed >= HeartbeatInterval
}
