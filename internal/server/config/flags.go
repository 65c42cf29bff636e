package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tasklist/internal/flagx"
)

// parseFlags applies the server flags found in args:
//
//	-a string    HTTP bind address (e.g. ":3000")
//	-d string    PostgreSQL DSN
//	-s string    token signing secret
//	-t duration  token validity (e.g. "24h")
//	-k int       bcrypt cost
//	-l string    log level
//
// Other arguments are ignored so the config file flag can coexist.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-k", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	fs.DurationVar(&cfg.TokenValidityDuration, "t", cfg.TokenValidityDuration, "token validity duration")
	fs.IntVar(&cfg.PasswordHashCost, "k", cfg.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
