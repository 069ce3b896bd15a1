package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is the durable single-node backend: an embedded LSM tree in a
// local directory. Writes go through one mutex so Update is atomic; Pebble
// itself keeps reads consistent.
type PebbleStore struct {
	mu sync.Mutex
	db *pebble.DB
}

// NewPebbleStore opens (creating if needed) a Pebble database under dir.
func NewPebbleStore(dir string) (*PebbleStore, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}

	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	return cloneBytes(v), true, nil
}

func (s *PebbleStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (s *PebbleStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete: %w", err)
	}
	return nil
}

func (s *PebbleStore) GetByPrefix(_ context.Context, prefix string) ([]Record, error) {
	lower := []byte(prefix)
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(lower),
	})
	if err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}

	recs := make([]Record, 0)
	for it.First(); it.Valid(); it.Next() {
		recs = append(recs, Record{Key: string(it.Key()), Value: cloneBytes(it.Value())})
	}

	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	return recs, nil
}

func (s *PebbleStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	next, err := fn(old, found)
	if err != nil {
		switch {
		case errors.Is(err, ErrSkip):
			return nil
		case errors.Is(err, ErrDelete):
			if !found {
				return nil
			}
			if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
				return fmt.Errorf("pebble delete: %w", err)
			}
			return nil
		}
		return err
	}

	if err := s.db.Set([]byte(key), next, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (s *PebbleStore) Ping(context.Context) error {
	// a cheap read proves the database is open and readable
	_, closer, err := s.db.Get([]byte("\x00ping"))
	if err == nil {
		return closer.Close()
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	return err
}

// Metrics exposes the engine's internal counters.
func (s *PebbleStore) Metrics() *pebble.Metrics {
	return s.db.Metrics()
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
