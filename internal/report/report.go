// Package report builds the documents transmitted to the store and allocates
// their identifiers.
package report

import (
	"strconv"

	"github.com/sweeney/hvac-logger/internal/clock"
	"github.com/sweeney/hvac-logger/internal/hvac"
)

// Record is the document POSTed to the store: the snapshot's full field set
// flattened, plus the _id minted at send time. Fields are present whenever
// their source value was sampled.
type Record struct {
	ID string `json:"_id"`

	Digitals  *uint16 `json:"digitals,omitempty"`
	Heat      *bool   `json:"heat,omitempty"`
	Cool      *bool   `json:"cool,omitempty"`
	Fan       *bool   `json:"fan,omitempty"`
	Purge     *bool   `json:"purge,omitempty"`
	Emergency *bool   `json:"emergency,omitempty"`
	Zone1     *bool   `json:"zone1,omitempty"`
	Zone2     *bool   `json:"zone2,omitempty"`
	Zone3     *bool   `json:"zone3,omitempty"`
	Zone4     *bool   `json:"zone4,omitempty"`

	OutdoorTempC   *float64 `json:"outdoorTempC,omitempty"`
	DischargeTempC *float64 `json:"dischargeTempC,omitempty"`
	ReturnTempC    *float64 `json:"returnTempC,omitempty"`
	AmbientTempC   *float64 `json:"ambientTempC,omitempty"`
	PanelTempC     *float64 `json:"panelTempC,omitempty"`
}

// Build flattens a snapshot into a Record under the given id. Absent fields
// stay nil and are omitted from the JSON document.
func Build(id string, snap hvac.Snapshot) Record {
	rec := Record{ID: id}

	if mask, err := snap.Digitals(); err == nil {
		rec.Digitals = &mask
		rec.Heat = flagPtr(snap, hvac.SignalHeat)
		rec.Cool = flagPtr(snap, hvac.SignalCool)
		rec.Fan = flagPtr(snap, hvac.SignalFan)
		rec.Purge = flagPtr(snap, hvac.SignalPurge)
		rec.Emergency = flagPtr(snap, hvac.SignalEmergency)
		rec.Zone1 = flagPtr(snap, hvac.SignalZone1)
		rec.Zone2 = flagPtr(snap, hvac.SignalZone2)
		rec.Zone3 = flagPtr(snap, hvac.SignalZone3)
		rec.Zone4 = flagPtr(snap, hvac.SignalZone4)
	}

	rec.OutdoorTempC = tempPtr(snap, hvac.ProbeOutdoor)
	rec.DischargeTempC = tempPtr(snap, hvac.ProbeDischarge)
	rec.ReturnTempC = tempPtr(snap, hvac.ProbeReturn)
	rec.AmbientTempC = tempPtr(snap, hvac.ProbeAmbient)
	rec.PanelTempC = tempPtr(snap, hvac.ProbePanel)

	return rec
}

func flagPtr(snap hvac.Snapshot, sig hvac.Signal) *bool {
	on, err := snap.Flag(sig)
	if err != nil {
		return nil
	}
	return &on
}

func tempPtr(snap hvac.Snapshot, p hvac.Probe) *float64 {
	c, err := snap.Temp(p)
	if err != nil {
		return nil
	}
	return &c
}

// History is the reporting loop's mutable state: the last snapshot the store
// accepted, the last base id minted, and the same-second collision counter.
// Owned exclusively by the loop and not persisted across restarts.
type History struct {
	LastSent *hvac.Snapshot

	lastPostID string
	collisions int
}

// AllocateID turns a clock estimate into a unique, lexicographically ordered
// document id. Reports within the same clock second get a ".N" suffix; the
// counter resets when the base timestamp moves on.
func (h *History) AllocateID(now clock.Estimate) string {
	base := clock.FormatISO(now)
	if base == h.lastPostID {
		h.collisions++
		return base + "." + strconv.Itoa(h.collisions)
	}
	h.lastPostID = base
	h.collisions = 0
	return base
}

// Collisions returns the current same-second collision count.
func (h *History) Collisions() int { return h.collisions }
