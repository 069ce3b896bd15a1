package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/timex"
	"github.com/joho/godotenv"
)

const envPrefix = "FH_"

// parseEnv overlays FH_* variables. Values from dotenvPath fill in for
// variables not set in the process environment.
func parseEnv(config *Config, dotenvPath string) error {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		m, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+name]
		return v, ok
	}

	strs := map[string]*string{
		"HTTP_ADDR":     &config.HTTPAddr,
		"GRPC_ADDR":     &config.GRPCAddr,
		"ROUTE_PREFIX":  &config.RoutePrefix,
		"STORE_BACKEND": &config.StoreBackend,
		"DATA_DIR":      &config.DataDir,
		"DATABASE_DSN":  &config.DatabaseDSN,
		"REDIS_URL":     &config.RedisURL,
		"SECRET_KEY":    &config.SecretKey,
		"LOG_LEVEL":     &config.LogLevel,
		"LOG_FORMAT":    &config.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_VALIDITY_DURATION": &config.AccessTokenValidityDuration,
		"HEALTH_CHECK_INTERVAL":          &config.HealthCheckInterval,
		"REINDEX_INTERVAL":               &config.ReindexInterval,
	}
	for name, dst := range durations {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}

	bools := map[string]*bool{
		"DIRECTORY_SCAN_FALLBACK": &config.DirectoryScanFallback,
		"SEED_DEMO_DATA":          &config.SeedDemoData,
	}
	for name, dst := range bools {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = b
	}

	return nil
}
