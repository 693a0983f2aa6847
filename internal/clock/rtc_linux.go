//go:build linux

package clock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultRTCDevice is the usual hardware clock node on a Raspberry Pi with
// an RTC hat or the built-in PMIC clock.
const DefaultRTCDevice = "/dev/rtc0"

// DeviceRTC drives a Linux RTC character device via ioctl.
type DeviceRTC struct {
	f *os.File
}

// OpenDeviceRTC opens the given RTC device node (e.g. /dev/rtc0).
func OpenDeviceRTC(path string) (*DeviceRTC, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open rtc %s: %w", path, err)
	}
	return &DeviceRTC{f: f}, nil
}

// ReadTime reads the hardware clock. The kernel keeps RTC time in UTC.
func (r *DeviceRTC) ReadTime() (Estimate, error) {
	rt, err := unix.IoctlGetRTCTime(int(r.f.Fd()))
	if err != nil {
		return Estimate{}, fmt.Errorf("RTC_RD_TIME %s: %w", r.f.Name(), err)
	}
	return Estimate{
		Year:   int(rt.Year) + 1900,
		Month:  int(rt.Mon) + 1,
		Day:    int(rt.Mday),
		Hour:   int(rt.Hour),
		Minute: int(rt.Min),
		Second: int(rt.Sec),
	}, nil
}

// SetTime writes the hardware clock.
func (r *DeviceRTC) SetTime(e Estimate) error {
	t := e.Time()
	rt := unix.RTCTime{
		Sec:  int32(e.Second),
		Min:  int32(e.Minute),
		Hour: int32(e.Hour),
		Mday: int32(e.Day),
		Mon:  int32(e.Month - 1),
		Year: int32(e.Year - 1900),
		Wday: int32(t.Weekday()),
		Yday: int32(t.YearDay() - 1),
	}
	if err := unix.IoctlSetRTCTime(int(r.f.Fd()), &rt); err != nil {
		return fmt.Errorf("RTC_SET_TIME %s: %w", r.f.Name(), err)
	}
	return nil
}

// Close releases the device node.
func (r *DeviceRTC) Close() error {
	return r.f.Close()
}
