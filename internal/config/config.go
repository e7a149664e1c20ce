// Package config loads and validates the JSON configuration file. All
// validation happens once at load; a run never starts on a config that
// failed it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/example/sport-scheduler/internal/booking"
)

// Error is a configuration failure naming the offending field. Fatal before
// scheduling begins.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Class is one recurring class entry in the file.
type Class struct {
	Activity  string `json:"activity" validate:"required"`
	ClassDay  string `json:"class_day" validate:"required"`
	ClassTime string `json:"class_time" validate:"required"`
}

// Config is the full configuration surface. Credentials may come from the
// environment (SPORTSCHED_EMAIL / SPORTSCHED_PASSWORD, optionally via a
// .env file) instead of the file itself.
type Config struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Centre   string `json:"centre" validate:"required"`

	Classes          []Class `json:"classes" validate:"required,min=1,dive"`
	BookingExecution string  `json:"booking_execution" validate:"required"`

	BookingDelaySeconds int    `json:"booking_delay" validate:"min=0"`
	RetryAttempts       int    `json:"retry_attempts" validate:"min=1"`
	RetryDelaySeconds   int    `json:"retry_delay" validate:"min=0"`
	MaxThreads          int    `json:"max_threads" validate:"min=-1"`
	TimeZone            string `json:"time_zone"`
	LogLevel            string `json:"log_level"`

	// Derived at load, not part of the file.
	Execution booking.ScheduleSpec  `json:"-"`
	Targets   []booking.ClassTarget `json:"-"`
	Location  *time.Location        `json:"-"`
}

func defaults() Config {
	return Config{
		RetryAttempts: 1,
		MaxThreads:    -1,
		TimeZone:      "Europe/Madrid",
		LogLevel:      "info",
	}
}

// Load reads, decodes and validates the file at path, returning a config
// whose derived fields (schedule spec, class targets, location) are ready
// for the booking engine.
func Load(path string) (*Config, error) {
	// Optional .env in the working directory; absence is fine.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("SPORTSCHED_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("SPORTSCHED_PASSWORD"); v != "" {
		cfg.Password = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &Error{Field: fieldName(fe), Reason: fmt.Sprintf("failed %q constraint", fe.Tag())}
		}
		return err
	}

	if c.MaxThreads == 0 {
		return &Error{Field: "max_threads", Reason: "must be -1 (auto) or at least 1"}
	}

	spec, err := booking.ParseScheduleSpec(c.BookingExecution)
	if err != nil {
		return &Error{Field: "booking_execution", Reason: err.Error()}
	}
	c.Execution = spec

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return &Error{Field: "time_zone", Reason: err.Error()}
	}
	c.Location = loc

	c.Targets = c.Targets[:0]
	for i, cls := range c.Classes {
		day, err := booking.ParseWeekday(cls.ClassDay)
		if err != nil {
			return &Error{Field: fmt.Sprintf("classes[%d].class_day", i), Reason: err.Error()}
		}
		if _, err := booking.ParseTimeOfDay(cls.ClassTime); err != nil {
			return &Error{Field: fmt.Sprintf("classes[%d].class_time", i), Reason: err.Error()}
		}
		c.Targets = append(c.Targets, booking.ClassTarget{
			Activity:  cls.Activity,
			ClassDay:  day,
			ClassTime: cls.ClassTime,
		})
	}
	return nil
}

// BookingDelay returns booking_delay as a duration.
func (c *Config) BookingDelay() time.Duration {
	return time.Duration(c.BookingDelaySeconds) * time.Second
}

// RetryDelay returns retry_delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// fieldName maps a validator field error back to a json-style name.
func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return camelToSnake(ns)
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
