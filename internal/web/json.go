package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Digitals      *uint16            `json:"digitals,omitempty"`
	Signals       map[string]bool    `json:"signals,omitempty"`
	TempsC        map[string]float64 `json:"temps_c,omitempty"`
	LastReportID  string             `json:"last_report_id,omitempty"`
	Reports       int                `json:"reports"`
	Collisions    int                `json:"collisions"`
	ClockSynced   bool               `json:"clock_synced"`
	Restarts      int                `json:"restarts"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	StartTime     string             `json:"start_time"`
	Timestamp     string             `json:"timestamp"`
	Network       *NetworkJSON       `json:"network,omitempty"`
	Config        ConfigJSON         `json:"config"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	StoreURL    string `json:"store_url"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr"`
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
}

func formatJSON(snap status.Snapshot) []byte {
	inner := StatusInner{
		LastReportID:  snap.LastReportID,
		Reports:       snap.Reports,
		Collisions:    snap.Collisions,
		ClockSynced:   snap.ClockSynced,
		Restarts:      snap.Restarts,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			StoreURL:    snap.Config.StoreURL,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
		},
	}

	if snap.Sampled {
		if mask, err := snap.State.Digitals(); err == nil {
			inner.Digitals = &mask
			inner.Signals = make(map[string]bool, hvac.NumSignals)
			for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
				on, _ := snap.State.Flag(sig)
				inner.Signals[sig.String()] = on
			}
		}
		for p := hvac.Probe(0); p < hvac.NumProbes; p++ {
			c, err := snap.State.Temp(p)
			if err != nil {
				continue
			}
			if inner.TempsC == nil {
				inner.TempsC = make(map[string]float64)
			}
			inner.TempsC[p.String()] = c
		}
	}

	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
