package nubapp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotLoggedIn is returned by operations that require an authenticated
// session before Login has succeeded.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthError reports a failure during the login handshake or re-authentication.
// It is fatal to a scheduling run.
type AuthError struct {
	Step string // handshake step that failed
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed during %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("authentication failed during %s", e.Step)
}

func (e *AuthError) Unwrap() error { return e.Err }

// BookingErrorKind classifies a rejected booking request. The kind is set
// from the platform's numeric error code, never parsed from message text.
type BookingErrorKind string

const (
	BookingAlreadyBooked  BookingErrorKind = "already_booked"
	BookingUnavailable    BookingErrorKind = "unavailable"
	BookingNotYetBookable BookingErrorKind = "not_yet_bookable"
	BookingUnknown        BookingErrorKind = "unknown"
)

// Platform error codes returned by bookActivityCalendar.php.
const (
	codeAlreadyBooked  = 5
	codeUnavailable    = 6
	codeNotYetBookable = 28
)

// BookingError is a rejected booking request for a specific slot.
type BookingError struct {
	Kind   BookingErrorKind
	SlotID string
	Code   int
}

func (e *BookingError) Error() string {
	switch e.Kind {
	case BookingAlreadyBooked:
		return fmt.Sprintf("slot %s is already booked", e.SlotID)
	case BookingUnavailable:
		return fmt.Sprintf("slot %s is not available", e.SlotID)
	case BookingNotYetBookable:
		return fmt.Sprintf("slot %s is not bookable yet", e.SlotID)
	default:
		return fmt.Sprintf("booking slot %s failed with unknown error code %d", e.SlotID, e.Code)
	}
}

// Terminal reports whether retrying the same booking can ever change the
// outcome. Only an already-booked slot is terminal; everything else is
// worth another attempt.
func (e *BookingError) Terminal() bool { return e.Kind == BookingAlreadyBooked }

func bookingErrorFromCode(slotID string, code int) *BookingError {
	kind := BookingUnknown
	switch code {
	case codeAlreadyBooked:
		kind = BookingAlreadyBooked
	case codeUnavailable:
		kind = BookingUnavailable
	case codeNotYetBookable:
		kind = BookingNotYetBookable
	}
	return &BookingError{Kind: kind, SlotID: slotID, Code: code}
}

// CancelError reports a rejected cancellation, usually because the slot was
// never booked.
type CancelError struct {
	SlotID string
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("cancellation of slot %s failed: the slot may not have been booked", e.SlotID)
}

// ActivityNotFoundError reports a configured activity name that the
// platform does not offer.
type ActivityNotFoundError struct {
	Activity  string
	Available []string
}

func (e *ActivityNotFoundError) Error() string {
	return fmt.Sprintf("no activity found with the name %q; available activities are: %s",
		e.Activity, strings.Join(e.Available, ", "))
}
