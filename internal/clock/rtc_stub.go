//go:build !linux

package clock

import "errors"

// DefaultRTCDevice is unused on non-Linux platforms.
const DefaultRTCDevice = "/dev/rtc0"

// DeviceRTC is not available on non-Linux platforms.
type DeviceRTC struct{}

// OpenDeviceRTC returns an error on non-Linux platforms.
func OpenDeviceRTC(path string) (*DeviceRTC, error) {
	return nil, errors.New("rtc: not supported on this platform (requires Linux)")
}

// ReadTime is not implemented on non-Linux platforms.
func (r *DeviceRTC) ReadTime() (Estimate, error) {
	return Estimate{}, errors.New("rtc: not supported")
}

// SetTime is not implemented on non-Linux platforms.
func (r *DeviceRTC) SetTime(Estimate) error {
	return errors.New("rtc: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *DeviceRTC) Close() error { return nil }
