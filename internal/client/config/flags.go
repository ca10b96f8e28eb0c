package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tempero/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the REST API
//	-d string   path of the local session database ("" keeps it in memory)
//	-l string   log level
//	-t int      request timeout in seconds, 0 for none
//
// os.Args is filtered with flagx.FilterArgs so -c/-config do not trip the
// parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds (0 = none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
