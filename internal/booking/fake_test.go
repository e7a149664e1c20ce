package booking

import (
	"context"
	"sync"

	"github.com/example/sport-scheduler/internal/nubapp"
)

// fakeClient is a scripted booking.Client for engine tests. The overrides
// run outside the internal lock so concurrency tests can observe real
// parallelism.
type fakeClient struct {
	mu sync.Mutex

	activities []nubapp.Activity
	slots      map[string][]nubapp.Slot // keyed by day "YYYY-MM-DD"

	loginErr error
	dailyErr error
	bookErr  error

	// Optional per-call overrides; when set they win over the fields above.
	slotsFn func(activity, day string) ([]nubapp.Slot, error)
	bookFn  func(slotID string) error

	loginCalls int
	dailyCalls int
	bookCalls  int
	bookedIDs  []string
}

func (f *fakeClient) Login(ctx context.Context, email, password, centre string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginErr
}

func (f *fakeClient) Activities(ctx context.Context) ([]nubapp.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activities, nil
}

func (f *fakeClient) DailySlots(ctx context.Context, activity, day string) ([]nubapp.Slot, error) {
	f.mu.Lock()
	f.dailyCalls++
	fn := f.slotsFn
	err := f.dailyErr
	slots := f.slots[day]
	f.mu.Unlock()

	if fn != nil {
		return fn(activity, day)
	}
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (f *fakeClient) BookSlot(ctx context.Context, slotID string) error {
	f.mu.Lock()
	f.bookCalls++
	f.bookedIDs = append(f.bookedIDs, slotID)
	fn := f.bookFn
	err := f.bookErr
	f.mu.Unlock()

	if fn != nil {
		return fn(slotID)
	}
	return err
}
