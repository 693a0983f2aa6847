package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

// signalRow is one digital signal for display.
type signalRow struct {
	Name  string
	State string // "ON", "OFF", or "UNKNOWN"
}

// tempRow is one temperature probe for display.
type tempRow struct {
	Name  string
	Value string
}

// indexView is the template's data.
type indexView struct {
	Signals      []signalRow
	Temps        []tempRow
	LastReportID string
	Reports      int
	Collisions   int
	ClockSynced  bool
	Restarts     int
	Uptime       time.Duration
	Network      *status.NetworkInfo
	Config       status.Config
}

func buildView(snap status.Snapshot) indexView {
	view := indexView{
		LastReportID: snap.LastReportID,
		Reports:      snap.Reports,
		Collisions:   snap.Collisions,
		ClockSynced:  snap.ClockSynced,
		Restarts:     snap.Restarts,
		Uptime:       snap.Uptime(),
		Network:      snap.Network,
		Config:       snap.Config,
	}

	for sig := hvac.Signal(0); sig < hvac.NumSignals; sig++ {
		state := "UNKNOWN"
		if snap.Sampled {
			if on, err := snap.State.Flag(sig); err == nil {
				if on {
					state = "ON"
				} else {
					state = "OFF"
				}
			}
		}
		view.Signals = append(view.Signals, signalRow{Name: sig.String(), State: state})
	}

	for p := hvac.Probe(0); p < hvac.NumProbes; p++ {
		if !snap.Sampled {
			break
		}
		c, err := snap.State.Temp(p)
		if err != nil {
			continue
		}
		view.Temps = append(view.Temps, tempRow{
			Name:  p.String(),
			Value: fmt.Sprintf("%.1f °C", c),
		})
	}

	return view
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Errors here mean the client went away mid-render; nothing to do.
	_ = indexTmpl.Execute(w, buildView(snap))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>HVAC Logger</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.synced { color: green; }
.unsynced { color: red; }
</style>
</head>
<body>
<h1>HVAC Logger</h1>

<h2>Signals</h2>
<table>
{{range .Signals}}<tr><th>{{.Name}}</th><td class="{{if eq .State "ON"}}on{{else if eq .State "OFF"}}off{{else}}unknown{{end}}">{{.State}}</td></tr>
{{end}}</table>

{{if .Temps}}<h2>Temperatures</h2>
<table>
{{range .Temps}}<tr><th>{{.Name}}</th><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}

<h2>Reporting</h2>
<table>
<tr><th>Last report</th><td>{{if .LastReportID}}{{.LastReportID}}{{else}}none yet{{end}}</td></tr>
<tr><th>Reports</th><td>{{.Reports}}</td></tr>
<tr><th>Same-second collisions</th><td>{{.Collisions}}</td></tr>
<tr><th>Clock</th><td class="{{if .ClockSynced}}synced{{else}}unsynced{{end}}">{{if .ClockSynced}}synced{{else}}not synced{{end}}</td></tr>
<tr><th>Restarts</th><td>{{.Restarts}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
</table>

{{if .Network}}<h2>Network</h2>
<table>
<tr><th>Type</th><td>{{.Network.Type}}</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>
<tr><th>Status</th><td>{{.Network.Status}}</td></tr>
<tr><th>Gateway</th><td>{{.Network.Gateway}}</td></tr>
{{if .Network.SSID}}<tr><th>SSID</th><td>{{.Network.SSID}}</td></tr>{{end}}
</table>
{{end}}

<h2>Config</h2>
<table>
<tr><th>Store</th><td>{{.Config.StoreURL}}</td></tr>
{{if .Config.Broker}}<tr><th>MQTT mirror</th><td>{{.Config.Broker}}</td></tr>{{end}}
<tr><th>Poll</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Heartbeat</th><td>{{.Config.HeartbeatMs}} ms</td></tr>
</table>

</body>
</html>
`
