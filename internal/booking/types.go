// Package booking implements the scheduled concurrent booking engine: it
// computes the execution instant, waits for it while keeping the session
// fresh, then races one bounded-retry booking attempt per configured class.
package booking

import (
	"context"
	"time"

	"github.com/example/sport-scheduler/internal/nubapp"
)

// Client is the slice of the platform client the engine needs. Login
// re-authenticates the shared session; the remaining calls are read-only
// with respect to session state.
type Client interface {
	Login(ctx context.Context, email, password, centre string) error
	Activities(ctx context.Context) ([]nubapp.Activity, error)
	DailySlots(ctx context.Context, activity, day string) ([]nubapp.Slot, error)
	BookSlot(ctx context.Context, slotID string) error
}

// ClassTarget is one recurring class the user wants booked. Immutable once
// scheduling begins.
type ClassTarget struct {
	Activity  string
	ClassDay  time.Weekday
	ClassTime string // "HH:MM:SS" local time
}

// OutcomeKind tags the terminal result of one class target's attempt
// sequence.
type OutcomeKind string

const (
	OutcomeBooked         OutcomeKind = "booked"
	OutcomeAlreadyBooked  OutcomeKind = "already_booked"
	OutcomeNoMatchingSlot OutcomeKind = "no_matching_slot"
	OutcomeFailed         OutcomeKind = "failed"
)

// Outcome is the single booking decision reached for one class target in a
// scheduling run. It exists for logging; nothing persists it.
type Outcome struct {
	Target   ClassTarget
	Kind     OutcomeKind
	Attempts int
	Err      error // last failure, nil when Kind is OutcomeBooked
}
