// Package supervisor is the single recovery boundary. Any core error ends
// with a crash-log entry, a distinct failure blink pattern, and a full
// rebuild of the node from scratch; restart is the retry. No partial
// in-process recovery is attempted.
package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/sweeney/hvac-logger/internal/crashlog"
	"github.com/sweeney/hvac-logger/internal/hw/led"
	"github.com/sweeney/hvac-logger/internal/logger"
	"github.com/sweeney/hvac-logger/internal/status"
)

// Failure blink patterns, from the controller faceplate convention:
// three slow pulses for a setup failure, three fast for a runtime failure.
const (
	failPulses   = 3
	setupFailOn  = 400 * time.Millisecond
	setupFailOff = 400 * time.Millisecond
	runFailOn    = 100 * time.Millisecond
	runFailOff   = 100 * time.Millisecond
)

// SetupFunc builds one complete node instance: hardware drivers, store
// client, reporting loop. It returns the loop's run function and a cleanup
// releasing everything the setup acquired.
type SetupFunc func(ctx context.Context) (run func(ctx context.Context) error, cleanup func(), err error)

// Supervisor restarts the node until its context is cancelled.
type Supervisor struct {
	log     *logger.Logger
	crash   *crashlog.Log
	led     led.Indicator
	tracker *status.Tracker
	delay   time.Duration
}

// New creates a Supervisor. tracker may be nil.
func New(log *logger.Logger, crash *crashlog.Log, ind led.Indicator, tracker *status.Tracker, restartDelay time.Duration) *Supervisor {
	return &Supervisor{
		log:     log,
		crash:   crash,
		led:     ind,
		tracker: tracker,
		delay:   restartDelay,
	}
}

// Run cycles setup → run → (on failure) log, blink, rebuild. It returns
// only when ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context, setup SetupFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logAppend(s.crash.Starting(time.Now()))

		run, cleanup, err := setup(ctx)
		if err != nil {
			s.fail(ctx, "setup", err, setupFailOn, setupFailOff)
		} else {
			s.logAppend(s.crash.Running(time.Now()))
			err = run(ctx)
			cleanup()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// The loop only returns through an error or cancellation.
			s.fail(ctx, "run", err, runFailOn, runFailOff)
		}

		if s.tracker != nil {
			s.tracker.IncRestarts()
		}
		if err := sleepCtx(ctx, s.delay); err != nil {
			return err
		}
	}
}

func (s *Supervisor) fail(ctx context.Context, phase string, err error, on, off time.Duration) {
	s.log.Errorw("restarting after failure", "phase", phase, "err", err)
	s.logAppend(s.crash.Failure(time.Now(), err))
	if blinkErr := s.led.Blink(ctx, failPulses, on, off); blinkErr != nil && !errors.Is(blinkErr, context.Canceled) {
		s.log.Warnw("failure blink failed", "err", blinkErr)
	}
}

// logAppend surfaces crash-log write failures without making them fatal;
// a full log partition must not stop reporting.
func (s *Supervisor) logAppend(err error) {
	if err != nil {
		s.log.Warnw("crash log write failed", "err", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
