package onewire

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseW1Slave(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{
			name:    "positive reading",
			payload: "31 01 4b 46 7f ff 0c 10 71 : crc=71 YES\n31 01 4b 46 7f ff 0c 10 71 t=19062\n",
			want:    19.062,
		},
		{
			name:    "negative reading",
			payload: "ff fe 4b 46 7f ff 0c 10 a1 : crc=a1 YES\nff fe 4b 46 7f ff 0c 10 a1 t=-1250\n",
			want:    -1.25,
		},
		{
			name:    "crc failure",
			payload: "31 01 4b 46 7f ff 0c 10 71 : crc=71 NO\n31 01 4b 46 7f ff 0c 10 71 t=19062\n",
			wantErr: true,
		},
		{
			name:    "missing temperature",
			payload: "31 01 4b 46 7f ff 0c 10 71 : crc=71 YES\n31 01 4b 46 7f ff 0c 10 71\n",
			wantErr: true,
		},
		{
			name:    "garbage temperature",
			payload: "31 01 4b 46 7f ff 0c 10 71 : crc=71 YES\n31 01 4b 46 7f ff 0c 10 71 t=abc\n",
			wantErr: true,
		},
		{
			name:    "truncated payload",
			payload: "31 01 4b 46 7f ff 0c 10 71 : crc=71 YES",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseW1Slave([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func writeSlave(t *testing.T, dir, id, payload string) {
	t.Helper()
	devDir := filepath.Join(dir, id)
	if err := os.MkdirAll(devDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(devDir, "w1_slave"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBusScan(t *testing.T) {
	dir := t.TempDir()
	writeSlave(t, dir, "28-000005e2fdc3", "x : crc=71 YES\nx t=20500\n")
	writeSlave(t, dir, "28-0000044a1b2c", "x : crc=71 YES\nx t=8000\n")
	// The bus master and non-therm devices must not show up.
	if err := os.MkdirAll(filepath.Join(dir, "w1_bus_master1"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids, err := NewBus(dir).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids %v, want 2", len(ids), ids)
	}
	for _, id := range ids {
		if id != "28-000005e2fdc3" && id != "28-0000044a1b2c" {
			t.Errorf("unexpected id %q", id)
		}
	}
}

func TestBusScanMissingDir(t *testing.T) {
	_, err := NewBus(filepath.Join(t.TempDir(), "nope")).Scan()
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestBusReadTempC(t *testing.T) {
	dir := t.TempDir()
	writeSlave(t, dir, "28-000005e2fdc3", "x : crc=71 YES\nx t=20500\n")

	b := NewBus(dir)
	c, err := b.ReadTempC("28-000005e2fdc3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != 20.5 {
		t.Errorf("got %v, want 20.5", c)
	}

	if _, err := b.ReadTempC("28-ffffffffffff"); err == nil {
		t.Error("expected error for absent probe")
	}
}
