package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/agroassist/internal/flagx"
	"github.com/dmitrijs2005/agroassist/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for unmarshalling config files.
// Pointer fields distinguish "absent" from "zero".
type FileConfig struct {
	BackendURL          *string         `json:"backend_url" yaml:"backend_url"`
	AIBackendURL        *string         `json:"ai_backend_url" yaml:"ai_backend_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	UploadTimeout       *timex.Duration `json:"upload_timeout" yaml:"upload_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	OTPAdvanceDelay     *timex.Duration `json:"otp_advance_delay" yaml:"otp_advance_delay"`
	DatabasePath        *string         `json:"database_path" yaml:"database_path"`
	DefaultLanguage     *string         `json:"default_language" yaml:"default_language"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with values from the file named by -c/-config in
// args. It does nothing when no file is named and panics on read or
// unmarshal errors, like parseFlags.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = sonic.ConfigStd.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BackendURL, fc.BackendURL)
	setString(&cfg.AIBackendURL, fc.AIBackendURL)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.DefaultLanguage, fc.DefaultLanguage)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UploadTimeout != nil {
		cfg.UploadTimeout = fc.UploadTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.OTPAdvanceDelay != nil {
		cfg.OTPAdvanceDelay = fc.OTPAdvanceDelay.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
