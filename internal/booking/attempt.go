package booking

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/sport-scheduler/internal/nubapp"
)

// Attempter wraps a single class booking in a bounded retry loop. Failures
// never escape Attempt: the outcome is returned for logging so one class's
// exhaustion cannot abort a sibling's attempt.
type Attempter struct {
	Client   Client
	Log      *logrus.Logger
	Attempts int           // max attempts, >= 1
	Delay    time.Duration // pause between attempts
	Location *time.Location

	// Clock injection for tests; nil means real time.
	NowFn   func() time.Time
	SleepFn func(time.Duration)
}

func (a *Attempter) now() time.Time {
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	if a.NowFn != nil {
		return a.NowFn().In(loc)
	}
	return time.Now().In(loc)
}

func (a *Attempter) sleep(d time.Duration) {
	if a.SleepFn != nil {
		a.SleepFn(d)
		return
	}
	time.Sleep(d)
}

// Attempt tries to book the target up to Attempts times. An already-booked
// rejection is terminal: retrying it cannot change the outcome and only
// burns budget that could surface a different, retryable error. Everything
// else, including a missing slot, is retried until the budget runs out.
func (a *Attempter) Attempt(ctx context.Context, target ClassTarget) Outcome {
	attempts := a.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		bookingDate := NextClassDay(a.now(), target.ClassDay).Format("2006-01-02")

		err := a.tryOnce(ctx, target, bookingDate, attempt, attempts)
		if err == nil {
			a.Log.Infof("Successfully booked %q at %s %s.", target.Activity, bookingDate, target.ClassTime)
			return Outcome{Target: target, Kind: OutcomeBooked, Attempts: attempt}
		}
		lastErr = err
		a.Log.Warnf("Attempt %d/%d for %q failed: %v", attempt, attempts, target.Activity, err)

		var be *nubapp.BookingError
		if errors.As(err, &be) && be.Terminal() {
			a.Log.Warnf("%q at %s on %s is already booked; skipping further retries.",
				target.Activity, target.ClassTime, bookingDate)
			return Outcome{Target: target, Kind: OutcomeAlreadyBooked, Attempts: attempt, Err: err}
		}

		if attempt < attempts {
			a.Log.Infof("Retrying in %s...", a.Delay)
			a.sleep(a.Delay)
		}
	}

	a.Log.Errorf("Failed to book %q at %s after %d attempts.", target.Activity, target.ClassTime, attempts)
	kind := OutcomeFailed
	var nms *NoMatchingSlotError
	if errors.As(lastErr, &nms) {
		kind = OutcomeNoMatchingSlot
	}
	return Outcome{Target: target, Kind: kind, Attempts: attempts, Err: lastErr}
}

func (a *Attempter) tryOnce(ctx context.Context, target ClassTarget, bookingDate string, attempt, attempts int) error {
	slots, err := a.Client.DailySlots(ctx, target.Activity, bookingDate)
	if err != nil {
		return err
	}
	slot, err := MatchSlot(slots, target.Activity, bookingDate, target.ClassTime)
	if err != nil {
		return err
	}
	a.Log.Infof("Attempting to book %q at %s (attempt %d/%d).", target.Activity, slot.StartTimestamp, attempt, attempts)
	return a.Client.BookSlot(ctx, slot.ID)
}
