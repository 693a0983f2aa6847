// Package config loads the node configuration from a YAML file and the
// environment, materialized once into a plain value passed into the rest of
// the program. Nothing reads configuration after startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sweeney/hvac-logger/internal/clock"
	"github.com/sweeney/hvac-logger/internal/crashlog"
	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/hw/gpio"
	"github.com/sweeney/hvac-logger/internal/hw/led"
	"github.com/sweeney/hvac-logger/internal/hw/onewire"
	"github.com/sweeney/hvac-logger/internal/sampler"
)

// Config is the node's complete runtime configuration.
type Config struct {
	// StoreURL is the document store database URL. Required.
	StoreURL string

	// Broker is the MQTT broker for the report mirror; empty disables it.
	Broker string

	// HTTPAddr is the status page listen address; empty disables it.
	HTTPAddr string

	LogLevel  string
	CrashLog  string
	RTCDevice string

	GPIOChip string
	Pins     gpio.Pins
	LEDPin   int

	// W1Dir is the one-wire sysfs directory.
	W1Dir string

	// Probes maps probe positions to one-wire device ids.
	Probes map[hvac.Probe]string

	PollInterval time.Duration
	ConvertDelay time.Duration
	RestartDelay time.Duration
}

// Load reads the config file at path (missing file is fine: defaults plus
// HVAC_* environment overrides apply) and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("hvac")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Config{
		StoreURL:     v.GetString("store.url"),
		Broker:       v.GetString("mqtt.broker"),
		HTTPAddr:     v.GetString("http.addr"),
		LogLevel:     v.GetString("log.level"),
		CrashLog:     v.GetString("crashlog.path"),
		RTCDevice:    v.GetString("rtc.device"),
		GPIOChip:     v.GetString("gpio.chip"),
		LEDPin:       v.GetInt("led.pin"),
		W1Dir:        v.GetString("w1.dir"),
		PollInterval: v.GetDuration("poll.interval"),
		ConvertDelay: v.GetDuration("convert.delay"),
		RestartDelay: v.GetDuration("restart.delay"),
	}

	cfg.Pins = gpio.DefaultPins
	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		key := "gpio.pins." + sig.String()
		if v.IsSet(key) {
			cfg.Pins[sig] = v.GetInt(key)
		}
	}

	cfg.Probes = make(map[hvac.Probe]string)
	for name, id := range v.GetStringMapString("probes") {
		probe, ok := hvac.ProbeByName(name)
		if !ok {
			return Config{}, fmt.Errorf("config: unknown probe %q", name)
		}
		if id != "" {
			cfg.Probes[probe] = id
		}
	}

	if cfg.StoreURL == "" {
		return Config{}, errors.New("config: store.url is required")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("crashlog.path", crashlog.DefaultPath)
	v.SetDefault("rtc.device", clock.DefaultRTCDevice)
	v.SetDefault("gpio.chip", gpio.DefaultChip)
	v.SetDefault("led.pin", led.DefaultPin)
	v.SetDefault("w1.dir", onewire.DefaultDir)
	v.SetDefault("poll.interval", 5*time.Second)
	v.SetDefault("convert.delay", sampler.DefaultConvertDelay)
	v.SetDefault("restart.delay", 10*time.Second)
}
