// Package config loads runtime configuration for the agroassist CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the auth backend
//	-ai string  base URL of the AI backend
//	-t int      request timeout in seconds (0 = transport default)
//	-i int      online status check interval (seconds)
//	-d string   path to the local SQLite database
//	-l string   default language code
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "backend_url": "https://api.example.org",
//	  "ai_backend_url": "https://ai.example.org",
//	  "upload_timeout": "30s",
//	  "online_check_interval": "3s",
//	  "log_format": "json"
//	}
//
// Keys that are absent from the file leave the current value untouched.
package config
