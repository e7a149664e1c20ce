// Package logging builds the run's logger: colored text output with full
// timestamps rendered in the configured time zone, so the operator reads
// log times in the same zone the bookings are scheduled in.
package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logger at the given level. loc shifts timestamp display
// only; it does not affect any scheduling computation.
func New(level string, loc *time.Location) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&zoneFormatter{
		loc: loc,
		inner: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		},
	})
	return log, nil
}

// zoneFormatter shifts entry timestamps into a fixed zone before rendering.
type zoneFormatter struct {
	loc   *time.Location
	inner logrus.Formatter
}

func (f *zoneFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if f.loc != nil {
		e.Time = e.Time.In(f.loc)
	}
	return f.inner.Format(e)
}
