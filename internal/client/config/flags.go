package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hirehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-t int      login timeout in seconds (default from Config)
//	-d string   path of the local session database (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	loginTimeout := fs.Int("t", int(cfg.LoginTimeout.Seconds()), "login timeout (in seconds)")
	fs.StringVar(&cfg.TokenDBPath, "d", cfg.TokenDBPath, "path of the local session database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoginTimeout = time.Duration(*loginTimeout) * time.Second
}
