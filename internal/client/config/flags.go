package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-i", "-l", "-n", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	reminderTime := fs.String("t", cfg.ReminderTime(), "reminder time of day (HH:MM)")
	dispatchInterval := fs.Int("i", int(cfg.DispatchInterval.Seconds()), "notification dispatch interval (in seconds)")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "language of reminder texts")
	fs.BoolVar(&cfg.NotificationsAuthorized, "n", cfg.NotificationsAuthorized, "notifications authorized")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	h, m, err := ParseClock(*reminderTime)
	if err != nil {
		panic(err)
	}
	cfg.ReminderHour, cfg.ReminderMinute = h, m
	cfg.DispatchInterval = time.Duration(*dispatchInterval) * time.Second
}
