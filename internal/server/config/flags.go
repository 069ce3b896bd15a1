package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address
//	-p string   route prefix (e.g. "/api")
//	-b string   store backend: memory | pebble | postgres | redis
//	-D string   data directory for the pebble backend
//	-d string   PostgreSQL DSN
//	-R string   Redis URL
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-l string   log level
//	-f string   log format: text | json
//	-seed       seed demo data on start
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-p", "-b", "-D", "-d", "-R", "-s", "-t", "-l", "-f", "-seed"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.RoutePrefix, "p", config.RoutePrefix, "route prefix")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend")
	fs.StringVar(&config.DataDir, "D", config.DataDir, "pebble data directory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "R", config.RedisURL, "redis URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.BoolVar(&config.SeedDemoData, "seed", config.SeedDemoData, "seed demo data on start")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only an explicit -t overrides, so sub-minute values from earlier stages survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
	return nil
}
