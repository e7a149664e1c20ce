package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// reauthWindow is how long before the execution instant the session is
// refreshed. Long waits outlive the remote session; logging in again just
// before firing guarantees the dispatched attempts hold a fresh one.
const reauthWindow = 60 * time.Second

// Coordinator blocks until the configured execution instant. The wait runs
// on the coordinating goroutine by design: this is a batch process whose
// whole job is to be asleep until the right moment.
type Coordinator struct {
	Client   Client
	Log      *logrus.Logger
	Email    string
	Password string
	Centre   string
	Delay    time.Duration // settling delay applied after the instant passes
	Location *time.Location

	NowFn   func() time.Time
	SleepFn func(time.Duration)
}

func (c *Coordinator) now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	if c.NowFn != nil {
		return c.NowFn().In(loc)
	}
	return time.Now().In(loc)
}

func (c *Coordinator) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.SleepFn != nil {
		c.SleepFn(d)
		return
	}
	time.Sleep(d)
}

// Wait sleeps until the execution instant derived from spec, then applies
// the configured booking delay. If the instant lies in the future the
// session is re-authenticated reauthWindow before it; a failed re-auth is
// fatal to the whole run and propagates. An instant already in the past
// ("now" semantics) skips straight to the delay.
func (c *Coordinator) Wait(ctx context.Context, spec ScheduleSpec) error {
	executionTime := NextExecution(c.now(), spec)

	if until := executionTime.Sub(c.now()); until > 0 {
		c.Log.Infof("Waiting %.2f seconds until execution time %s.",
			until.Seconds(), executionTime.Format("2006-01-02 15:04:05 -0700"))
		c.sleep(until - reauthWindow)

		c.Log.Info("Re-authenticating before booking.")
		if err := c.Client.Login(ctx, c.Email, c.Password, c.Centre); err != nil {
			c.Log.WithError(err).Error("Re-authentication failed before booking execution.")
			return err
		}

		// Re-auth consumed wall-clock time; recompute the remainder.
		if remaining := executionTime.Sub(c.now()); remaining > 0 {
			c.Log.Infof("Waiting %.2f seconds until booking execution.", remaining.Seconds())
			c.sleep(remaining)
		}
	}

	c.Log.Infof("Waiting %s before attempting booking.", c.Delay)
	c.sleep(c.Delay)
	return nil
}
