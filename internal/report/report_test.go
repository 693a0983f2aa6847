package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sweeney/hvac-logger/internal/clock"
	"github.com/sweeney/hvac-logger/internal/hvac"
)

func estimate(sec int) clock.Estimate {
	return clock.Estimate{Year: 2024, Month: 1, Day: 12, Hour: 20, Minute: 51, Second: sec}
}

func TestAllocateIDCollisions(t *testing.T) {
	var h History

	id1 := h.AllocateID(estimate(40))
	if id1 != "2024-Jan-12T20:51:40" {
		t.Errorf("first id: got %q", id1)
	}

	id2 := h.AllocateID(estimate(40))
	if id2 != "2024-Jan-12T20:51:40.1" {
		t.Errorf("second id: got %q", id2)
	}

	id3 := h.AllocateID(estimate(40))
	if id3 != "2024-Jan-12T20:51:40.2" {
		t.Errorf("third id: got %q", id3)
	}
	if h.Collisions() != 2 {
		t.Errorf("collisions: got %d, want 2", h.Collisions())
	}

	// A new base timestamp resets the counter.
	id4 := h.AllocateID(estimate(41))
	if id4 != "2024-Jan-12T20:51:41" {
		t.Errorf("fourth id: got %q", id4)
	}
	if h.Collisions() != 0 {
		t.Errorf("collisions after reset: got %d, want 0", h.Collisions())
	}

	// And collides again from zero.
	id5 := h.AllocateID(estimate(41))
	if id5 != "2024-Jan-12T20:51:41.1" {
		t.Errorf("fifth id: got %q", id5)
	}
}

func TestAllocateIDOrdering(t *testing.T) {
	var h History
	ids := []string{
		h.AllocateID(estimate(40)),
		h.AllocateID(estimate(40)),
		h.AllocateID(estimate(41)),
		h.AllocateID(estimate(42)),
		h.AllocateID(estimate(42)),
	}
	for i := 1; i < len(ids); i++ {
		if !(ids[i-1] < ids[i]) {
			t.Errorf("ids not strictly increasing: %q then %q", ids[i-1], ids[i])
		}
	}
}

func TestBuildFullSnapshot(t *testing.T) {
	var snap hvac.Snapshot
	snap.SetDigitals(1<<hvac.SignalHeat | 1<<hvac.SignalZone1)
	snap.SetTemp(hvac.ProbeOutdoor, -2.5)
	snap.SetTemp(hvac.ProbeDischarge, 43.1)

	rec := Build("2024-Jan-12T20:51:40", snap)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc["_id"] != "2024-Jan-12T20:51:40" {
		t.Errorf("_id: got %v", doc["_id"])
	}
	if doc["digitals"] != float64(1<<hvac.SignalHeat|1<<hvac.SignalZone1) {
		t.Errorf("digitals: got %v", doc["digitals"])
	}
	if doc["heat"] != true {
		t.Errorf("heat: got %v", doc["heat"])
	}
	if doc["zone1"] != true {
		t.Errorf("zone1: got %v", doc["zone1"])
	}
	// Off flags are present as explicit false, not omitted.
	if v, ok := doc["cool"]; !ok || v != false {
		t.Errorf("cool: got %v (present=%v)", v, ok)
	}
	if doc["outdoorTempC"] != -2.5 {
		t.Errorf("outdoorTempC: got %v", doc["outdoorTempC"])
	}
	if doc["dischargeTempC"] != 43.1 {
		t.Errorf("dischargeTempC: got %v", doc["dischargeTempC"])
	}
	// Absent probes are omitted entirely.
	for _, key := range []string{"returnTempC", "ambientTempC", "panelTempC"} {
		if _, ok := doc[key]; ok {
			t.Errorf("%s: expected omitted", key)
		}
	}
}

func TestBuildNoDigitals(t *testing.T) {
	var snap hvac.Snapshot
	snap.SetTemp(hvac.ProbeAmbient, 21)

	rec := Build("2024-Jan-12T20:51:40", snap)
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	for _, key := range []string{"digitals", "heat", "zone4"} {
		if strings.Contains(s, `"`+key+`"`) {
			t.Errorf("%s: expected omitted when digitals never sampled: %s", key, s)
		}
	}
	if !strings.Contains(s, `"ambientTempC":21`) {
		t.Errorf("ambientTempC missing: %s", s)
	}
}
