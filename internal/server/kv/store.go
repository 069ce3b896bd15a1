// Package kv is the key-value layer everything else is stored in: string keys
// mapped to JSON documents, with prefix scans and an atomic single-key
// read-modify-write used to keep secondary indexes free of lost updates.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
)

// ErrSkip, returned from an UpdateFunc, leaves the key untouched and makes
// Update return nil.
var ErrSkip = errors.New("kv: skip write")

// ErrDelete, returned from an UpdateFunc, removes the key in the same atomic
// step and makes Update return nil. A missing key stays missing.
var ErrDelete = errors.New("kv: delete key")

// Record is one key with its current JSON value.
type Record struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// UpdateFunc computes the next value of a key from its current one. It may be
// called more than once for a single Update (optimistic backends retry on
// contention), so it must not have side effects.
type UpdateFunc func(old []byte, found bool) ([]byte, error)

// Store is implemented by every backend.
//
// Get reports found=false with a nil error for a missing key. GetByPrefix
// returns records sorted by key and never returns nil. Update is atomic with
// respect to every other write to the same key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	GetByPrefix(ctx context.Context, prefix string) ([]Record, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// maxUpdateRetries bounds optimistic retry loops (Redis WATCH, Postgres
// insert races).
const maxUpdateRetries = 16

// ErrTooManyRetries is returned when an optimistic Update kept losing races.
var ErrTooManyRetries = errors.New("kv: update retries exhausted")

func sortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].Key < recs[j].Key })
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// prefixUpperBound returns the smallest key greater than every key starting
// with prefix, or nil when no such bound exists (empty or all-0xff prefix).
func prefixUpperBound(prefix []byte) []byte {
	end := cloneBytes(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
