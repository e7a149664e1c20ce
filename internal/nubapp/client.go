// Package nubapp is a client for the resasports/Nubapp booking platform.
// The request flow mirrors what the social web frontend does: a cookie-based
// login on social.resasports.com followed by a credential hand-off to the
// Nubapp backend that serves activities, slots and bookings.
package nubapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Client talks to the platform on behalf of one user session. Login mutates
// the session; everything else only reads it, so concurrent bookings may
// share one Client as long as nobody re-authenticates mid-flight.
type Client struct {
	hc  *http.Client
	log *logrus.Logger

	socialBase string
	nubappBase string

	userID     string
	activities []Activity
	loggedIn   bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs points the client at alternate frontends, used by tests.
func WithBaseURLs(social, nubapp string) Option {
	return func(c *Client) {
		c.socialBase = strings.TrimRight(social, "/")
		c.nubappBase = strings.TrimRight(nubapp, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(log *logrus.Logger, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		hc:         &http.Client{Timeout: 10 * time.Second, Jar: jar},
		log:        log,
		socialBase: defaultSocialBase,
		nubappBase: defaultNubappBase,
	}
	for _, o := range opts {
		o(c)
	}
	if c.hc.Jar == nil {
		c.hc.Jar = jar
	}
	return c
}

// LoggedIn reports whether the last Login succeeded.
func (c *Client) LoggedIn() bool { return c.loggedIn }

// Login runs the four-step handshake: fetch the CSRF token from the login
// popup, post the credentials, collect the Nubapp credential payload for
// the centre, then log in to Nubapp with it. On success the activities
// table is fetched and cached for the session.
func (c *Client) Login(ctx context.Context, email, password, centre string) error {
	c.loggedIn = false

	if err := c.checkCentre(ctx, centre); err != nil {
		return err
	}
	c.log.Infof("Selected centre: %s", centre)
	c.log.Info("Attempting to log in...")

	// Step 1: CSRF token from the login popup.
	body, err := c.get(ctx, c.socialBase+popupLoginPath, nil)
	if err != nil {
		return &AuthError{Step: "login popup fetch", Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return &AuthError{Step: "login popup parse", Err: err}
	}
	csrf, ok := doc.Find(`input[name="_csrf_token"]`).Attr("value")
	if !ok || csrf == "" {
		return &AuthError{Step: "login popup parse", Err: fmt.Errorf("csrf token not found")}
	}

	// Step 2: credential check on the social frontend.
	form := url.Values{
		"_username":   {email},
		"_password":   {password},
		"_csrf_token": {csrf},
		"_submit":     {""},
		"_force":      {"true"},
	}
	if _, err := c.postForm(ctx, c.socialBase+loginCheckPath, form); err != nil {
		return &AuthError{Step: "login check", Err: err}
	}

	// Step 3: Nubapp credential payload for the centre. The payload is a
	// URL-encoded query string inside a JSON envelope.
	body, err = c.get(ctx, c.socialBase+credRequestPath(centre), nil)
	if err != nil {
		return &AuthError{Step: "credential request", Err: err}
	}
	var env struct {
		Payload string `json:"payload"`
	}
	if err := unmarshalJSON(body, &env); err != nil {
		return &AuthError{Step: "credential request", Err: err}
	}
	vals, err := url.ParseQuery(env.Payload)
	if err != nil {
		return &AuthError{Step: "credential request", Err: err}
	}
	creds := url.Values{}
	for k := range vals {
		creds.Set(k, vals.Get(k))
	}
	creds.Set("platform", "resasocial")
	creds.Set("network", "resasports")
	if creds.Get("id_user") == "" {
		return &AuthError{Step: "credential request", Err: fmt.Errorf("payload is missing id_user")}
	}

	// Step 4: hand the credentials to Nubapp.
	if _, err := c.get(ctx, c.nubappBase+nubappLoginPath, creds); err != nil {
		return &AuthError{Step: "nubapp login", Err: err}
	}

	c.userID = creds.Get("id_user")

	acts, err := c.fetchActivities(ctx)
	if err != nil {
		return &AuthError{Step: "activities fetch", Err: err}
	}
	c.activities = acts
	c.loggedIn = true
	c.log.Info("Login successful.")
	return nil
}

// get issues a GET and returns the body, failing on non-2xx status.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	return c.do(req)
}

// postForm issues an x-www-form-urlencoded POST and returns the body,
// failing on non-2xx status.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)
	c.log.Debugf("%s %s", req.Method, req.URL.Redacted())

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, res.StatusCode)
	}
	return body, nil
}
