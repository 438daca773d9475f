package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     database DSN
//	-s string     JWT HMAC secret key
//	-t int        access token validity, minutes
//	-l string     log level
//	-u string     YAML users seed file
//	-w duration   SQLite busy timeout
//
// args are filtered with flagx.FilterArgs first so that -c / -config and
// flags of other components do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l", "-u", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.UsersFile, "u", config.UsersFile, "YAML file with users to seed")
	fs.DurationVar(&config.BusyTimeout, "w", config.BusyTimeout, "SQLite busy timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
	return nil
}
