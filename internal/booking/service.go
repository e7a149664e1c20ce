package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/sport-scheduler/internal/nubapp"
)

// Params is everything one scheduling run needs. Owned by the invocation;
// there is no ambient registry of scheduled work.
type Params struct {
	Email    string
	Password string
	Centre   string

	Classes   []ClassTarget
	Execution ScheduleSpec

	BookingDelay  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	MaxWorkers    int
	Location      *time.Location
}

// Service drives one scheduling run end to end: login, activity validation,
// the coordinated wait and the parallel dispatch.
type Service struct {
	Client Client
	Log    *logrus.Logger

	NowFn   func() time.Time
	SleepFn func(time.Duration)
}

// Run executes the scheduling run. Only authentication and configuration
// failures return an error; individual booking outcomes are logged.
func (s *Service) Run(ctx context.Context, p Params) ([]Outcome, error) {
	if err := s.Client.Login(ctx, p.Email, p.Password, p.Centre); err != nil {
		return nil, err
	}
	if err := s.validateActivities(ctx, p.Classes); err != nil {
		return nil, err
	}

	for _, t := range p.Classes {
		s.Log.Infof("Scheduled to book %q next %s at %s.", t.Activity, t.ClassDay, t.ClassTime)
	}

	workers, err := ResolveWorkerCount(p.MaxWorkers, len(p.Classes))
	if err != nil {
		return nil, err
	}
	if workers == 0 {
		s.Log.Info("No classes configured; nothing to book.")
		return nil, nil
	}

	coordinator := &Coordinator{
		Client:   s.Client,
		Log:      s.Log,
		Email:    p.Email,
		Password: p.Password,
		Centre:   p.Centre,
		Delay:    p.BookingDelay,
		Location: p.Location,
		NowFn:    s.NowFn,
		SleepFn:  s.SleepFn,
	}
	if err := coordinator.Wait(ctx, p.Execution); err != nil {
		return nil, err
	}

	dispatcher := &Dispatcher{
		Attempter: &Attempter{
			Client:   s.Client,
			Log:      s.Log,
			Attempts: p.RetryAttempts,
			Delay:    p.RetryDelay,
			Location: p.Location,
			NowFn:    s.NowFn,
			SleepFn:  s.SleepFn,
		},
		Log: s.Log,
	}
	outcomes := dispatcher.Dispatch(ctx, p.Classes, workers)

	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeBooked:
			s.Log.Infof("Booked %q (%s %s) after %d attempt(s).", o.Target.Activity, o.Target.ClassDay, o.Target.ClassTime, o.Attempts)
		case OutcomeAlreadyBooked:
			s.Log.Warnf("%q (%s %s) was already booked.", o.Target.Activity, o.Target.ClassDay, o.Target.ClassTime)
		default:
			s.Log.Errorf("Could not book %q (%s %s): %v", o.Target.Activity, o.Target.ClassDay, o.Target.ClassTime, o.Err)
		}
	}
	return outcomes, nil
}

// validateActivities rejects the run early when a configured activity does
// not exist at the centre, before any waiting starts.
func (s *Service) validateActivities(ctx context.Context, classes []ClassTarget) error {
	s.Log.Info("Fetching available activities for validation...")
	activities, err := s.Client.Activities(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(activities))
	names := make([]string, 0, len(activities))
	for _, a := range activities {
		known[a.Name] = struct{}{}
		names = append(names, a.Name)
	}
	for _, t := range classes {
		if _, ok := known[t.Activity]; !ok {
			return &nubapp.ActivityNotFoundError{Activity: t.Activity, Available: names}
		}
	}
	s.Log.Info("All configured activities validated.")
	return nil
}
