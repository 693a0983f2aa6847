// Package gpio reads the HVAC controller's digital inputs with hardware
// abstraction. The real implementation uses the Linux GPIO character device;
// the fake allows testing without hardware.
package gpio

import "github.com/sweeney/hvac-logger/internal/hvac"

// Reader reads the nine digital inputs as a bitmask, one bit per signal in
// hvac.Signal order (heat = bit 0 .. zone4 = bit 8).
type Reader interface {
	// ReadDigitals returns the current digitals bitmask.
	ReadDigitals() (uint16, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// Pins maps each signal to a GPIO line offset, indexed by hvac.Signal.
type Pins [hvac.NumSignals]int

// DefaultPins matches the controller wiring: heat on GPIO1 through zone4 on
// GPIO9.
var DefaultPins = Pins{1, 2, 3, 4, 5, 6, 7, 8, 9}
