package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for the Fintrack CLI.
//
// Units: DispatchInterval is a time.Duration; ReminderHour and ReminderMinute
// are local wall-clock values.
type Config struct {
	DatabasePath            string        `env:"DB_PATH"`
	ReminderHour            int           `env:"REMINDER_HOUR"`
	ReminderMinute          int           `env:"REMINDER_MINUTE"`
	DispatchInterval        time.Duration `env:"DISPATCH_INTERVAL"`
	Language                string        `env:"LANGUAGE"`
	NotificationsAuthorized bool          `env:"NOTIFICATIONS"`
	LogLevel                string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "fintrack.db"
	c.ReminderHour = 9
	c.ReminderMinute = 0
	c.DispatchInterval = 30 * time.Second
	c.Language = "es"
	c.NotificationsAuthorized = true
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a .env file, JSON (if present), environment variables and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// ReminderTime formats the reminder time as HH:MM.
func (c *Config) ReminderTime() string {
	return fmt.Sprintf("%02d:%02d", c.ReminderHour, c.ReminderMinute)
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
