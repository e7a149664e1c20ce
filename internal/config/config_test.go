package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
  "email": "user@example.com",
  "password": "secret",
  "centre": "my-gym",
  "classes": [
    {"activity": "Gimnasio", "class_day": "Monday", "class_time": "18:00:00"}
  ],
  "booking_execution": "Friday 07:30:00",
  "booking_delay": 3,
  "retry_attempts": 3,
  "retry_delay": 5,
  "max_threads": -1,
  "time_zone": "Europe/Madrid"
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", cfg.Email)
	assert.Equal(t, "my-gym", cfg.Centre)
	assert.Equal(t, 3*time.Second, cfg.BookingDelay())
	assert.Equal(t, 5*time.Second, cfg.RetryDelay())
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, -1, cfg.MaxThreads)

	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, time.Monday, cfg.Targets[0].ClassDay)
	assert.Equal(t, "18:00:00", cfg.Targets[0].ClassTime)

	assert.False(t, cfg.Execution.Now)
	assert.Equal(t, time.Friday, cfg.Execution.Weekday)
	assert.Equal(t, "Europe/Madrid", cfg.Location.String())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
  "email": "user@example.com",
  "password": "secret",
  "centre": "my-gym",
  "classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "09:00:00"}],
  "booking_execution": "now"
}`))
	require.NoError(t, err)

	assert.Equal(t, "Europe/Madrid", cfg.TimeZone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.RetryAttempts)
	assert.Equal(t, -1, cfg.MaxThreads)
	assert.True(t, cfg.Execution.Now)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		mut   string
		field string
	}{
		{
			name: "missing email",
			mut: `{"password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "09:00:00"}],
				"booking_execution": "now"}`,
			field: "email",
		},
		{
			name: "no classes",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [], "booking_execution": "now"}`,
			field: "classes",
		},
		{
			name: "bad weekday",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Funday", "class_time": "09:00:00"}],
				"booking_execution": "now"}`,
			field: "classes[0].class_day",
		},
		{
			name: "bad class time",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "9am"}],
				"booking_execution": "now"}`,
			field: "classes[0].class_time",
		},
		{
			name: "bad execution spec",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "09:00:00"}],
				"booking_execution": "Friday"}`,
			field: "booking_execution",
		},
		{
			name: "zero max threads",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "09:00:00"}],
				"booking_execution": "now", "max_threads": 0}`,
			field: "max_threads",
		},
		{
			name: "bad time zone",
			mut: `{"email": "user@example.com", "password": "secret", "centre": "my-gym",
				"classes": [{"activity": "Yoga", "class_day": "Sunday", "class_time": "09:00:00"}],
				"booking_execution": "now", "time_zone": "Mars/Olympus"}`,
			field: "time_zone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mut))
			require.Error(t, err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestLoadEnvOverridesCredentials(t *testing.T) {
	t.Setenv("SPORTSCHED_EMAIL", "env@example.com")
	t.Setenv("SPORTSCHED_PASSWORD", "env-secret")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.Email)
	assert.Equal(t, "env-secret", cfg.Password)
}
