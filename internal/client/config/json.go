package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so only present keys
// override the current Config.
type JsonConfig struct {
	DatabasePath            *string         `json:"database_path"`
	ReminderTime            *string         `json:"reminder_time"`
	DispatchInterval        *timex.Duration `json:"dispatch_interval"`
	Language                *string         `json:"language"`
	NotificationsAuthorized *bool           `json:"notifications_authorized"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without those flags nothing happens. Read, unmarshal and
// value errors panic; the caller may recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.ReminderTime != nil {
		h, m, err := ParseClock(*jc.ReminderTime)
		if err != nil {
			panic(err)
		}
		cfg.ReminderHour, cfg.ReminderMinute = h, m
	}
	if jc.DispatchInterval != nil {
		cfg.DispatchInterval = jc.DispatchInterval.Duration
	}
	if jc.Language != nil {
		cfg.Language = *jc.Language
	}
	if jc.NotificationsAuthorized != nil {
		cfg.NotificationsAuthorized = *jc.NotificationsAuthorized
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
