package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

type PebbleRepository struct {
	db *pebble.DB
}

// NewPebbleRepository opens (or creates) the cache in dir.
func NewPebbleRepository(dir string) (*PebbleRepository, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", dir, err)
	}
	return &PebbleRepository{db: db}, nil
}

// NewInMemoryRepository is a cache that lives only as long as the process.
func NewInMemoryRepository() (*PebbleRepository, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory cache: %w", err)
	}
	return &PebbleRepository{db: db}, nil
}

func (r *PebbleRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, closer, err := r.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	defer closer.Close()

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *PebbleRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *PebbleRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *PebbleRepository) List(ctx context.Context) (map[string][]byte, error) {
	it, err := r.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer it.Close()

	result := make(map[string][]byte)
	for it.First(); it.Valid(); it.Next() {
		v := make([]byte, len(it.Value()))
		copy(v, it.Value())
		result[string(it.Key())] = v
	}

	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata: %w", err)
	}
	return result, nil
}

func (r *PebbleRepository) Clear(ctx context.Context) error {
	keys, err := r.List(ctx)
	if err != nil {
		return err
	}

	b := r.db.NewBatch()
	defer b.Close()
	for k := range keys {
		if err := b.Delete([]byte(k), nil); err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func (r *PebbleRepository) Close() error {
	return r.db.Close()
}
