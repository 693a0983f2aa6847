package hvac

import (
	"errors"
	"testing"
)

func TestSnapshotUninitializedAccess(t *testing.T) {
	var snap Snapshot

	if _, err := snap.Digitals(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("Digitals: expected ErrUninitialized, got %v", err)
	}
	if _, err := snap.Flag(SignalHeat); !errors.Is(err, ErrUninitialized) {
		t.Errorf("Flag: expected ErrUninitialized, got %v", err)
	}
	if _, err := snap.Temp(ProbeOutdoor); !errors.Is(err, ErrUninitialized) {
		t.Errorf("Temp: expected ErrUninitialized, got %v", err)
	}
	if snap.HasDigitals() {
		t.Error("HasDigitals: expected false on zero snapshot")
	}
	if snap.HasTemp(ProbeAmbient) {
		t.Error("HasTemp: expected false on zero snapshot")
	}
}

func TestSnapshotDigitalsRoundTrip(t *testing.T) {
	var snap Snapshot
	snap.SetDigitals(0)

	// All-zero is present, distinct from absent.
	mask, err := snap.Digitals()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mask != 0 {
		t.Errorf("mask: got %d, want 0", mask)
	}
	on, err := snap.Flag(SignalZone4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if on {
		t.Error("zone4: expected off")
	}
}

func TestSnapshotFlagBits(t *testing.T) {
	var snap Snapshot
	snap.SetDigitals(1<<SignalHeat | 1<<SignalZone2)

	cases := []struct {
		sig  Signal
		want bool
	}{
		{SignalHeat, true},
		{SignalCool, false},
		{SignalFan, false},
		{SignalPurge, false},
		{SignalEmergency, false},
		{SignalZone1, false},
		{SignalZone2, true},
		{SignalZone3, false},
		{SignalZone4, false},
	}
	for _, tc := range cases {
		on, err := snap.Flag(tc.sig)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.sig, err)
		}
		if on != tc.want {
			t.Errorf("%s: got %v, want %v", tc.sig, on, tc.want)
		}
	}
}

func TestSnapshotTemps(t *testing.T) {
	var snap Snapshot
	snap.SetTemp(ProbeOutdoor, -3.25)

	c, err := snap.Temp(ProbeOutdoor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != -3.25 {
		t.Errorf("outdoor: got %v, want -3.25", c)
	}

	if _, err := snap.Temp(ProbeDischarge); !errors.Is(err, ErrUninitialized) {
		t.Errorf("discharge: expected ErrUninitialized, got %v", err)
	}
}

func TestProbeByName(t *testing.T) {
	for p := Probe(0); p < NumProbes; p++ {
		got, ok := ProbeByName(p.String())
		if !ok || got != p {
			t.Errorf("ProbeByName(%q): got (%v, %v)", p.String(), got, ok)
		}
	}
	if _, ok := ProbeByName("basement"); ok {
		t.Error("ProbeByName: expected false for unknown name")
	}
}
