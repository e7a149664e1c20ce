package booking

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidWorkerCount rejects a configured worker count of zero; use -1
// to size the pool automatically.
var ErrInvalidWorkerCount = errors.New("max threads must be -1 (auto) or at least 1")

// ResolveWorkerCount resolves the configured worker count against the
// host's parallelism and the number of bookings.
func ResolveWorkerCount(requested, nBookings int) (int, error) {
	return resolveWorkerCount(requested, nBookings, runtime.NumCPU())
}

func resolveWorkerCount(requested, nBookings, available int) (int, error) {
	if requested == 0 {
		return 0, ErrInvalidWorkerCount
	}
	if nBookings == 0 {
		return 0, nil
	}
	if available < 1 {
		available = 1
	}
	n := available
	if requested > 0 && requested < n {
		n = requested
	}
	if nBookings < n {
		n = nBookings
	}
	return n, nil
}

// Dispatcher fans independent booking attempts out across a bounded pool.
// Sibling attempts deliberately race the remote server at the same instant;
// no ordering between them is guaranteed or wanted.
type Dispatcher struct {
	Attempter *Attempter
	Log       *logrus.Logger
}

// Dispatch runs one attempt per target with at most workers in flight and
// waits for all of them. A panicking attempt is recorded and logged for its
// own target without disturbing siblings. workers <= 0 means there is
// nothing to schedule.
func (d *Dispatcher) Dispatch(ctx context.Context, targets []ClassTarget, workers int) []Outcome {
	if workers <= 0 || len(targets) == 0 {
		return nil
	}

	outcomes := make([]Outcome, len(targets))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					d.Log.Errorf("Booking for %q at %s failed unexpectedly: %v", target.Activity, target.ClassTime, r)
					outcomes[i] = Outcome{
						Target: target,
						Kind:   OutcomeFailed,
						Err:    fmt.Errorf("booking attempt panicked: %v", r),
					}
				}
			}()
			outcomes[i] = d.Attempter.Attempt(ctx, target)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
