// Package loop drives the sample → evaluate → report cycle against the
// document store. The loop body is strictly sequential: one in-flight
// request at a time, one owner of the post history, no in-loop retries.
// Every error returns to the supervisor, whose restart is the retry.
package loop

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/hvac-logger/internal/clock"
	"github.com/sweeney/hvac-logger/internal/hvac"
	"github.com/sweeney/hvac-logger/internal/hw/led"
	"github.com/sweeney/hvac-logger/internal/logger"
	"github.com/sweeney/hvac-logger/internal/mqtt"
	"github.com/sweeney/hvac-logger/internal/report"
	"github.com/sweeney/hvac-logger/internal/sampler"
	"github.com/sweeney/hvac-logger/internal/status"
	"github.com/sweeney/hvac-logger/internal/store"
)

// DefaultPollInterval is the sleep between iterations.
const DefaultPollInterval = 5 * time.Second

// Liveness blink timing: one short pulse per iteration.
const (
	livenessPulses = 1
	livenessOn     = 100 * time.Millisecond
	livenessOff    = 100 * time.Millisecond
)

// Loop owns the reporting cycle and its PostHistory.
type Loop struct {
	sampler sampler.Sampler
	store   store.Client
	clock   *clock.Synchronizer
	led     led.Indicator
	log     *logger.Logger

	// mirror and tracker are optional side channels.
	mirror  mqtt.Publisher
	tracker *status.Tracker

	poll time.Duration

	hist         report.History
	lastReportAt *clock.Estimate
}

// New assembles a loop. mirror and tracker may be nil.
func New(s sampler.Sampler, st store.Client, cl *clock.Synchronizer, ind led.Indicator, log *logger.Logger, mirror mqtt.Publisher, tracker *status.Tracker, poll time.Duration) *Loop {
	return &Loop{
		sampler: s,
		store:   st,
		clock:   cl,
		led:     ind,
		log:     log,
		mirror:  mirror,
		tracker: tracker,
		poll:    poll,
	}
}

// Run executes the state machine until an error or ctx cancellation. It
// never returns nil except through ctx.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.awaitClockSync(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap, err := l.sampler.Sample(ctx)
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		if l.tracker != nil {
			l.tracker.UpdateSample(snap)
		}

		now, err := l.clock.Now()
		if err != nil {
			return err
		}

		if hvac.IsReportable(l.hist.LastSent, snap, l.sinceLastReport(now)) {
			if err := l.transmit(ctx, snap, now); err != nil {
				return err
			}
		}

		if err := l.led.Blink(ctx, livenessPulses, livenessOn, livenessOff); err != nil {
			return fmt.Errorf("liveness blink: %w", err)
		}
		if err := sleep(ctx, l.poll); err != nil {
			return err
		}
	}
}

// awaitClockSync issues the one-time GET and seeds the clock from its Date
// header. Any non-200 status is a fatal bootstrap error.
func (l *Loop) awaitClockSync(ctx context.Context) error {
	resp, err := l.store.Get(ctx)
	if err != nil {
		return err
	}
	if resp.Status != 200 {
		return &store.BootstrapError{Status: resp.Status, Body: string(resp.Body)}
	}
	if _, err := l.clock.SyncFromHTTPDate(resp.Date); err != nil {
		return fmt.Errorf("seed clock: %w", err)
	}
	if l.tracker != nil {
		l.tracker.SetClockSynced(true)
	}
	l.log.Infow("clock seeded from store", "date", resp.Date)
	return nil
}

// transmit allocates an id, POSTs the report, and commits the new history.
func (l *Loop) transmit(ctx context.Context, snap hvac.Snapshot, now clock.Estimate) error {
	id := l.hist.AllocateID(now)
	rec := report.Build(id, snap)
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", id, err)
	}

	l.log.Infow("posting report", "id", id)
	resp, err := l.store.Post(ctx, body)
	if err != nil {
		return err
	}
	if resp.Status != 200 && resp.Status != 201 {
		return &store.RejectedError{Status: resp.Status, Body: string(resp.Body)}
	}

	sent := snap
	l.hist.LastSent = &sent
	at := now
	l.lastReportAt = &at

	if resp.Date != "" {
		resynced, err := l.clock.SyncFromHTTPDate(resp.Date)
		if err != nil {
			return fmt.Errorf("resync clock: %w", err)
		}
		if resynced {
			l.log.Debugw("clock resynced", "date", resp.Date)
		}
	}

	if l.tracker != nil {
		l.tracker.RecordReport(id, l.hist.Collisions())
	}
	if l.mirror != nil {
		if err := l.mirror.PublishReport(rec); err != nil {
			l.log.Warnw("mirror publish failed", "id", id, "err", err)
		}
	}
	return nil
}

// sinceLastReport returns the elapsed time for the heartbeat decision; zero
// before the first report, when the cold-start rule reports anyway.
func (l *Loop) sinceLastReport(now clock.Estimate) time.Duration {
	if l.lastReportAt == nil {
		return 0
	}
	return time.Duration(clock.SecondsSince(now, *l.lastReportAt)) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
