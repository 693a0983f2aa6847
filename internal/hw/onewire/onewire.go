// Package onewire reads DS18x20 temperature probes through the kernel w1
// sysfs interface (/sys/bus/w1/devices/<id>/w1_slave). The w1-gpio and
// w1-therm modules must be loaded; reading w1_slave triggers a conversion
// and blocks until it completes.
package onewire

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDir is the sysfs directory where the kernel exposes w1 slaves.
const DefaultDir = "/sys/bus/w1/devices"

// ds18b20Prefix is the family code of DS18B20 sensors in w1 device names.
const ds18b20Prefix = "28-"

// Reader reads one probe by its w1 device id. Implemented by *Bus and by
// test fakes.
type Reader interface {
	ReadTempC(id string) (float64, error)
}

// Bus reads probes from a w1 sysfs directory.
type Bus struct {
	dir string
}

// NewBus creates a Bus over the given sysfs directory (DefaultDir on a Pi).
func NewBus(dir string) *Bus {
	return &Bus{dir: dir}
}

// Scan lists the DS18x20 device ids currently present on the bus.
func (b *Bus) Scan() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("scan w1 bus %s: %w", b.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ds18b20Prefix) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// ReadTempC reads one probe and returns degrees Celsius.
func (b *Bus) ReadTempC(id string) (float64, error) {
	path := filepath.Join(b.dir, id, "w1_slave")
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read probe %s: %w", id, err)
	}
	c, err := parseW1Slave(data)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", id, err)
	}
	return c, nil
}

// parseW1Slave parses the two-line w1_slave payload:
//
//	31 01 4b 46 7f ff 0c 10 71 : crc=71 YES
//	31 01 4b 46 7f ff 0c 10 71 t=19062
func parseW1Slave(data []byte) (float64, error) {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("short w1_slave payload %q", string(data))
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, fmt.Errorf("crc check failed: %q", lines[0])
	}
	i := strings.LastIndex(lines[1], "t=")
	if i < 0 {
		return 0, fmt.Errorf("no temperature in w1_slave payload %q", lines[1])
	}
	milli, err := strconv.Atoi(strings.TrimSpace(lines[1][i+2:]))
	if err != nil {
		return 0, fmt.Errorf("bad temperature %q: %w", lines[1][i+2:], err)
	}
	return float64(milli) / 1000, nil
}
