package kv

import (
	"context"
	"fmt"
)

const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DataDir     string
	DatabaseDSN string
	RedisURL    string
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendPebble, "":
		if opts.DataDir == "" {
			return nil, fmt.Errorf("pebble backend requires a data directory")
		}
		return NewPebbleStore(opts.DataDir)
	case BackendPostgres:
		if opts.DatabaseDSN == "" {
			return nil, fmt.Errorf("postgres backend requires a database dsn")
		}
		return NewPostgresStore(ctx, opts.DatabaseDSN)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a redis url")
		}
		return NewRedisStore(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
