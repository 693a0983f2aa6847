package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderScript(t *testing.T) {
	f := NewFakeReader([]uint16{0x001, 0x003, 0x1ff})

	want := []uint16{0x001, 0x003, 0x1ff, 0x1ff}
	for i, w := range want {
		mask, err := f.ReadDigitals()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if mask != w {
			t.Errorf("read %d: got %#x, want %#x", i, mask, w)
		}
	}

	f.Reset()
	mask, _ := f.ReadDigitals()
	if mask != 0x001 {
		t.Errorf("after reset: got %#x, want 0x001", mask)
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]uint16{0x001})
	f.ReadError = errors.New("wire fell off")
	if _, err := f.ReadDigitals(); err == nil {
		t.Fatal("expected error")
	}
}

func TestFakeReaderClose(t *testing.T) {
	f := NewFakeReader(nil)
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("Closed not set")
	}
}
