package nubapp

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"
)

// Activity is one bookable activity type offered by the centre.
type Activity struct {
	ID   string `json:"id_activity"`
	Name string `json:"name_activity"`
}

// Slot is one bookable time interval in the activities calendar. Timestamps
// are the platform's canonical "YYYY-MM-DD HH:MM:SS" strings and are kept
// as-is: slot matching is defined on the literal wire format.
type Slot struct {
	ID             string `json:"id_activity_calendar"`
	ActivityID     string `json:"id_activity"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	Capacity       int    `json:"n_capacity"`
	Inscribed      int    `json:"n_inscribed"`
}

func unmarshalJSON(data []byte, v any) error { return json.Unmarshal(data, v) }

// Activities returns the activities table cached at login.
func (c *Client) Activities(ctx context.Context) ([]Activity, error) {
	if !c.loggedIn {
		return nil, ErrNotLoggedIn
	}
	out := make([]Activity, len(c.activities))
	copy(out, c.activities)
	return out, nil
}

func (c *Client) fetchActivities(ctx context.Context) ([]Activity, error) {
	query := url.Values{"id_user": {c.userID}}
	body, err := c.get(ctx, c.nubappBase+activitiesPath, query)
	if err != nil {
		return nil, err
	}
	var res struct {
		Activities []Activity `json:"activities"`
	}
	if err := unmarshalJSON(body, &res); err != nil {
		return nil, err
	}
	return res.Activities, nil
}

// DailySlots returns the ordered slots for one activity on one calendar day
// (day is "YYYY-MM-DD").
func (c *Client) DailySlots(ctx context.Context, activity, day string) ([]Slot, error) {
	if !c.loggedIn {
		return nil, ErrNotLoggedIn
	}
	act, err := c.activityByName(activity)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"id_user":         {c.userID},
		"id_activity":     {act.ID},
		"start_timestamp": {day + " 00:00:00"},
		"end_timestamp":   {day + " 23:59:59"},
	}
	body, err := c.get(ctx, c.nubappBase+slotsPath, query)
	if err != nil {
		return nil, err
	}
	var res struct {
		Slots []Slot `json:"activities_calendar"`
	}
	if err := unmarshalJSON(body, &res); err != nil {
		return nil, err
	}

	// The backend is supposed to filter by id_activity; keep the guard in
	// case it ignores the parameter.
	out := res.Slots[:0]
	for _, s := range res.Slots {
		if s.ActivityID == "" || s.ActivityID == act.ID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Client) activityByName(name string) (Activity, error) {
	available := make([]string, 0, len(c.activities))
	for _, a := range c.activities {
		if a.Name == name {
			return a, nil
		}
		available = append(available, a.Name)
	}
	return Activity{}, &ActivityNotFoundError{Activity: name, Available: available}
}
