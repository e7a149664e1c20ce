package nubapp

import (
	"context"
	"net/url"
)

type bookingResponse struct {
	Success bool `json:"success"`
	Error   int  `json:"error"`
}

// BookSlot books the slot with the given calendar id. A rejected request
// comes back as a *BookingError whose kind carries the platform's reason.
func (c *Client) BookSlot(ctx context.Context, slotID string) error {
	if !c.loggedIn {
		return ErrNotLoggedIn
	}
	c.log.Debugf("Attempting to book slot %s...", slotID)

	form := url.Values{
		"id_user":              {c.userID},
		"id_activity_calendar": {slotID},
	}
	body, err := c.postForm(ctx, c.nubappBase+bookingPath, form)
	if err != nil {
		return err
	}
	var res bookingResponse
	if err := unmarshalJSON(body, &res); err != nil {
		return err
	}
	if !res.Success {
		return bookingErrorFromCode(slotID, res.Error)
	}
	c.log.Debugf("Successfully booked slot %s.", slotID)
	return nil
}

// CancelSlot cancels a previously booked slot.
func (c *Client) CancelSlot(ctx context.Context, slotID string) error {
	if !c.loggedIn {
		return ErrNotLoggedIn
	}
	c.log.Debugf("Attempting to cancel slot %s...", slotID)

	form := url.Values{
		"id_user":              {c.userID},
		"id_activity_calendar": {slotID},
	}
	body, err := c.postForm(ctx, c.nubappBase+cancelPath, form)
	if err != nil {
		return err
	}
	var res bookingResponse
	if err := unmarshalJSON(body, &res); err != nil {
		return err
	}
	if !res.Success {
		return &CancelError{SlotID: slotID}
	}
	c.log.Debugf("Successfully cancelled slot %s.", slotID)
	return nil
}
