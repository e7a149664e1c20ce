package booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sport-scheduler/internal/nubapp"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newAttempter books "Gimnasio" on Mondays at 18:00 from a fixed Wednesday,
// so the booking date is always 2024-01-15.
func newAttempter(client Client, attempts int, sleeps *[]time.Duration) (*Attempter, ClassTarget) {
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	a := &Attempter{
		Client:   client,
		Log:      quietLogger(),
		Attempts: attempts,
		Delay:    5 * time.Second,
		Location: time.UTC,
		NowFn:    func() time.Time { return now },
		SleepFn: func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		},
	}
	target := ClassTarget{Activity: "Gimnasio", ClassDay: time.Monday, ClassTime: "18:00:00"}
	return a, target
}

func mondaySlots() map[string][]nubapp.Slot {
	return map[string][]nubapp.Slot{
		"2024-01-15": {{ID: "42", StartTimestamp: "2024-01-15 18:00:00"}},
	}
}

func TestAttemptBooksOnFirstTry(t *testing.T) {
	client := &fakeClient{slots: mondaySlots()}
	a, target := newAttempter(client, 3, nil)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeBooked, out.Kind)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, []string{"42"}, client.bookedIDs)
}

func TestAttemptAlreadyBookedIsTerminal(t *testing.T) {
	client := &fakeClient{
		slots:   mondaySlots(),
		bookErr: &nubapp.BookingError{Kind: nubapp.BookingAlreadyBooked, SlotID: "42", Code: 5},
	}
	var sleeps []time.Duration
	a, target := newAttempter(client, 3, &sleeps)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeAlreadyBooked, out.Kind)
	// Attempt 1 of 3 hit already-booked: exactly one book call, no retries.
	assert.Equal(t, 1, client.bookCalls)
	assert.Empty(t, sleeps)
}

func TestAttemptRetriesGenericFailure(t *testing.T) {
	client := &fakeClient{
		slots:   mondaySlots(),
		bookErr: errors.New("server exploded"),
	}
	var sleeps []time.Duration
	a, target := newAttempter(client, 2, &sleeps)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.Equal(t, 2, client.bookCalls)
	// One sleep between the two attempts, none after the last.
	require.Len(t, sleeps, 1)
	assert.Equal(t, 5*time.Second, sleeps[0])
}

func TestAttemptSucceedsAfterRetry(t *testing.T) {
	calls := 0
	client := &fakeClient{slots: mondaySlots()}
	client.bookFn = func(slotID string) error {
		calls++
		if calls == 1 {
			return &nubapp.BookingError{Kind: nubapp.BookingNotYetBookable, SlotID: slotID, Code: 28}
		}
		return nil
	}
	var sleeps []time.Duration
	a, target := newAttempter(client, 3, &sleeps)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeBooked, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	assert.Len(t, sleeps, 1)
}

func TestAttemptNoMatchingSlot(t *testing.T) {
	// Calendar has a slot one second before the target time: no match.
	client := &fakeClient{slots: map[string][]nubapp.Slot{
		"2024-01-15": {{ID: "42", StartTimestamp: "2024-01-15 17:59:59"}},
	}}
	var sleeps []time.Duration
	a, target := newAttempter(client, 2, &sleeps)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeNoMatchingSlot, out.Kind)
	assert.Zero(t, client.bookCalls)
	// A missing slot is a failed attempt, not a silent skip: it retries.
	assert.Equal(t, 2, client.dailyCalls)
	assert.Len(t, sleeps, 1)

	var nms *NoMatchingSlotError
	require.True(t, errors.As(out.Err, &nms))
}

func TestAttemptSlotFetchFailureIsRetryable(t *testing.T) {
	client := &fakeClient{dailyErr: errors.New("connection reset")}
	var sleeps []time.Duration
	a, target := newAttempter(client, 3, &sleeps)

	out := a.Attempt(context.Background(), target)

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.Equal(t, 3, client.dailyCalls)
	assert.Len(t, sleeps, 2)
}
