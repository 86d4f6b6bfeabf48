// Package config loads runtime configuration for the Fintrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file in the working directory (github.com/joho/godotenv);
//     it only fills variables that are not already set.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. FINTRACK_* environment variables (github.com/caarlos0/env).
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-t string   reminder time of day, HH:MM
//	-i int      notification dispatch interval (seconds)
//	-l string   language of reminder texts (es, en)
//	-n bool     whether notifications are authorized (-n false or -n=false)
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "database_path": "fintrack.db",
//	  "reminder_time": "09:00",
//	  "dispatch_interval": "30s",
//	  "language": "es",
//	  "notifications_authorized": true,
//	  "log_level": "warn"
//	}
package config
