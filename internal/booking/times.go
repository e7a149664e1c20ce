package booking

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday parses a case-insensitive English weekday name.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", s)
	}
	return wd, nil
}

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour, Minute, Second int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTimeOfDay parses strict "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	p, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q (want HH:MM:SS)", s)
	}
	return TimeOfDay{Hour: p.Hour(), Minute: p.Minute(), Second: p.Second()}, nil
}

// ScheduleSpec is when the booking run fires: either immediately ("now") or
// at the next occurrence of a weekday wall-clock time.
type ScheduleSpec struct {
	Now     bool
	Weekday time.Weekday
	At      TimeOfDay
}

func (s ScheduleSpec) String() string {
	if s.Now {
		return "now"
	}
	return fmt.Sprintf("%s %s", s.Weekday, s.At)
}

// ParseScheduleSpec parses "now" or "<Weekday> HH:MM:SS".
func ParseScheduleSpec(s string) (ScheduleSpec, error) {
	if strings.TrimSpace(s) == "now" {
		return ScheduleSpec{Now: true}, nil
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return ScheduleSpec{}, fmt.Errorf("invalid booking execution %q (want 'now' or '<Weekday> HH:MM:SS')", s)
	}
	wd, err := ParseWeekday(parts[0])
	if err != nil {
		return ScheduleSpec{}, err
	}
	at, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return ScheduleSpec{}, err
	}
	return ScheduleSpec{Weekday: wd, At: at}, nil
}

// NextExecution computes the execution instant for a schedule relative to
// now (already localized to the run's zone). "now" specs return now itself.
// If the target weekday is today and the target time is still ahead, the
// run fires today; otherwise it fires at the next occurrence of that
// weekday, one to seven days out.
func NextExecution(now time.Time, spec ScheduleSpec) time.Time {
	if spec.Now {
		return now
	}
	if now.Weekday() == spec.Weekday {
		today := atTime(now, spec.At)
		if now.Before(today) {
			return today
		}
	}
	return atTime(now.AddDate(0, 0, daysUntil(now.Weekday(), spec.Weekday)), spec.At)
}

// NextClassDay computes the calendar day of the class being booked, at
// now's time of day. Unlike NextExecution it is always strictly in the
// future: booking targets the next week's class even when today matches.
func NextClassDay(now time.Time, wd time.Weekday) time.Time {
	return now.AddDate(0, 0, daysUntil(now.Weekday(), wd))
}

// daysUntil is the number of days from one weekday to the next occurrence
// of another, wrapping across the week and never returning zero.
func daysUntil(from, to time.Weekday) int {
	d := (int(to) - int(from) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

func atTime(day time.Time, at TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour, at.Minute, at.Second, 0, day.Location())
}
