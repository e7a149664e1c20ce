package nubapp

import (
	"context"
	"fmt"
)

// Centre is one sports centre known to the social frontend, addressed by
// its slug in the login handshake.
type Centre struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Centres lists all centres. No session is required.
func (c *Client) Centres(ctx context.Context) ([]Centre, error) {
	body, err := c.get(ctx, c.socialBase+centresPath, nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Applications []Centre `json:"applications"`
	}
	if err := unmarshalJSON(body, &res); err != nil {
		return nil, err
	}
	return res.Applications, nil
}

// checkCentre verifies the configured centre slug exists. An unknown centre
// fails the run the same way bad credentials do.
func (c *Client) checkCentre(ctx context.Context, slug string) error {
	centres, err := c.Centres(ctx)
	if err != nil {
		return &AuthError{Step: "centre lookup", Err: err}
	}
	for _, ct := range centres {
		if ct.Slug == slug {
			return nil
		}
	}
	return &AuthError{Step: "centre lookup", Err: fmt.Errorf("unknown centre %q", slug)}
}
