package booking

import (
	"fmt"

	"github.com/example/sport-scheduler/internal/nubapp"
)

// NoMatchingSlotError reports that a day's calendar has no slot at the
// requested time. Retryable within an attempt budget.
type NoMatchingSlotError struct {
	Activity  string
	ClassTime string
	Date      string
}

func (e *NoMatchingSlotError) Error() string {
	return fmt.Sprintf("no matching slot found for activity %q at %s on %s", e.Activity, e.ClassTime, e.Date)
}

// MatchSlot finds the slot starting exactly at "{date} {classTime}". The
// comparison is literal string equality on the platform's timestamp format;
// there is deliberately no tolerance window, matching the remote system's
// own semantics. If the calendar somehow holds duplicates the first wins.
func MatchSlot(slots []nubapp.Slot, activity, date, classTime string) (nubapp.Slot, error) {
	want := date + " " + classTime
	for _, s := range slots {
		if s.StartTimestamp == want {
			return s, nil
		}
	}
	return nubapp.Slot{}, &NoMatchingSlotError{Activity: activity, ClassTime: classTime, Date: date}
}
