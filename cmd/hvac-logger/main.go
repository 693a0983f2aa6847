// Command hvac-logger samples the HVAC controller's digital inputs and
// temperature probes and reports significant state changes to a CouchDB-style
// document store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/hvac-logger/internal/clock"
	"github.com/sweeney/hvac-logger/internal/config"
	"github.com/sweeney/hvac-logger/internal/crashlog"
	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/hw/gpio"
	"github.com/sweeney/hvac-logger/internal/hw/led"
	"github.com/sweeney/hvac-logger/internal/hw/onewire"
	"github.com/sweeney/hvac-logger/internal/logger"
	"github.com/sweeney/hvac-logger/internal/loop"
	"github.com/sweeney/hvac-logger/internal/mqtt"
	"github.com/sweeney/hvac-logger/internal/sampler"
	"github.com/sweeney/hvac-logger/internal/status"
	"github.com/sweeney/hvac-logger/internal/store"
	"github.com/sweeney/hvac-logger/internal/supervisor"
	"github.com/sweeney/hvac-logger/internal/web"
)

func main() {
	cfgPath := flag.String("config", "config.yml", "Configuration file path")
	printState := flag.Bool("print-state", false, "Sample once, print the state, and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if *printState {
		if err := runPrintState(cfg); err != nil {
			log.Fatalw("print state", "err", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("fatal", "err", err)
	}
	log.Infow("shut down")
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	tracker := status.NewTracker(time.Now(), status.Config{
		StoreURL:    cfg.StoreURL,
		Broker:      cfg.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		PollMs:      cfg.PollInterval.Milliseconds(),
		HeartbeatMs: hvac.HeartbeatInterval.Milliseconds(),
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("http server error", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infow("http status server listening", "addr", cfg.HTTPAddr)
	}

	// The indicator outlives restarts: the supervisor blinks failure
	// patterns on it between node rebuilds.
	ind, err := led.NewRealIndicator(cfg.GPIOChip, cfg.LEDPin)
	if err != nil {
		return fmt.Errorf("init led: %w", err)
	}
	defer ind.Close()

	crash := crashlog.New(cfg.CrashLog)
	sup := supervisor.New(log, crash, ind, tracker, cfg.RestartDelay)
	return sup.Run(ctx, nodeSetup(cfg, log, ind, tracker))
}

// nodeSetup builds one complete node instance from scratch, so a restart
// re-opens every device and re-discovers the one-wire bus.
func nodeSetup(cfg config.Config, log *logger.Logger, ind led.Indicator, tracker *status.Tracker) supervisor.SetupFunc {
	return func(ctx context.Context) (func(context.Context) error, func(), error) {
		rtc, err := clock.OpenDeviceRTC(cfg.RTCDevice)
		if err != nil {
			return nil, nil, fmt.Errorf("init rtc: %w", err)
		}

		digitals, err := gpio.NewRealReader(cfg.GPIOChip, cfg.Pins)
		if err != nil {
			rtc.Close()
			return nil, nil, fmt.Errorf("init gpio: %w", err)
		}

		bus := onewire.NewBus(cfg.W1Dir)
		ids, err := bus.Scan()
		if err != nil {
			digitals.Close()
			rtc.Close()
			return nil, nil, fmt.Errorf("scan one-wire bus: %w", err)
		}
		log.Infow("one-wire scan", "devices", len(ids))
		for probe, id := range cfg.Probes {
			if !containsID(ids, id) {
				log.Warnw("configured probe not on bus", "probe", probe.String(), "id", id)
			}
		}

		var mirror mqtt.Publisher
		if cfg.Broker != "" {
			m, err := mqtt.NewRealPublisher(cfg.Broker)
			if err != nil {
				// The mirror is a side channel; run without it.
				log.Warnw("mqtt mirror unavailable", "broker", cfg.Broker, "err", err)
			} else {
				mirror = m
			}
		}

		smp := sampler.NewHardware(digitals, bus, cfg.Probes, cfg.ConvertDelay)
		client := store.NewHTTPClient(cfg.StoreURL)
		sync := clock.NewSynchronizer(rtc)
		l := loop.New(smp, client, sync, ind, log, mirror, tracker, cfg.PollInterval)

		cleanup := func() {
			if mirror != nil {
				mirror.Close()
			}
			digitals.Close()
			rtc.Close()
		}
		return l.Run, cleanup, nil
	}
}

// runPrintState samples the hardware once and prints the flattened state.
func runPrintState(cfg config.Config) error {
	digitals, err := gpio.NewRealReader(cfg.GPIOChip, cfg.Pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer digitals.Close()

	bus := onewire.NewBus(cfg.W1Dir)
	smp := sampler.NewHardware(digitals, bus, cfg.Probes, cfg.ConvertDelay)
	snap, err := smp.Sample(context.Background())
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}

	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		on, err := snap.Flag(sig)
		if err != nil {
			continue
		}
		fmt.Printf("%s: %s\n", sig, stateString(on))
	}
	for p := hvac.Probe(0); p < hvac.NumProbes; p++ {
		c, err := snap.Temp(p)
		if err != nil {
			continue
		}
		fmt.Printf("%s: %.3f C\n", p, c)
	}
	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
