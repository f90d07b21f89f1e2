package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/common"
)

// Config holds runtime settings for the agroassist CLI.
//
// Fields:
//   - BackendURL: base URL of the auth/OTP API.
//   - AIBackendURL: base URL of the crop, diagnosis and scheme API.
//   - RequestTimeout: cap for ordinary requests; 0 keeps the transport default.
//   - UploadTimeout: cap for the image upload of a diagnosis request.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - OTPAdvanceDelay: pause between a verified OTP and the new-password step.
//   - DatabasePath: SQLite file holding preferences and the stored session.
//   - DefaultLanguage: language code used when none has been chosen.
//   - LogFormat, LogLevel: see logging.New.
type Config struct {
	BackendURL          string
	AIBackendURL        string
	RequestTimeout      time.Duration
	UploadTimeout       time.Duration
	OnlineCheckInterval time.Duration
	OTPAdvanceDelay     time.Duration
	DatabasePath        string
	DefaultLanguage     string
	LogFormat           string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:3000"
	c.AIBackendURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 0
	c.UploadTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.OTPAdvanceDelay = 2 * time.Second
	c.DatabasePath = "agroassist.db"
	c.DefaultLanguage = common.DefaultLanguage
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if one is named) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
