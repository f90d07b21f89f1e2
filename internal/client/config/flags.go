package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   auth backend base URL
//	-ai string  AI backend base URL
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-d string   SQLite database path
//	-l string   default language code
//
// The args are filtered with flagx.FilterArgs first so unrelated flags (such
// as -c) do not break parsing. Invalid values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-b", "-ai", "-t", "-i", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "auth backend base URL")
	fs.StringVar(&cfg.AIBackendURL, "ai", cfg.AIBackendURL, "AI backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.DefaultLanguage, "l", cfg.DefaultLanguage, "default language code")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations from a config file may be sub-second; only overwrite them
	// when the flag was given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
