// Package kvtest provides store doubles for tests.
package kvtest

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
)

// FailingStore wraps a store and returns Err from the operations listed in
// FailOn ("get", "set", "delete", "get_by_prefix", "update", "ping"). With an
// empty FailOn every operation fails.
type FailingStore struct {
	kv.Store
	Err    error
	FailOn map[string]bool
}

func NewFailingStore(next kv.Store, err error, ops ...string) *FailingStore {
	fs := &FailingStore{Store: next, Err: err, FailOn: map[string]bool{}}
	for _, op := range ops {
		fs.FailOn[op] = true
	}
	return fs
}

func (s *FailingStore) fails(op string) bool {
	return len(s.FailOn) == 0 || s.FailOn[op]
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.fails("get") {
		return nil, false, s.Err
	}
	return s.Store.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.fails("set") {
		return s.Err
	}
	return s.Store.Set(ctx, key, value)
}

func (s *FailingStore) Delete(ctx context.Context, key string) error {
	if s.fails("delete") {
		return s.Err
	}
	return s.Store.Delete(ctx, key)
}

func (s *FailingStore) GetByPrefix(ctx context.Context, prefix string) ([]kv.Record, error) {
	if s.fails("get_by_prefix") {
		return nil, s.Err
	}
	return s.Store.GetByPrefix(ctx, prefix)
}

func (s *FailingStore) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	if s.fails("update") {
		return s.Err
	}
	return s.Store.Update(ctx, key, fn)
}

func (s *FailingStore) Ping(ctx context.Context) error {
	if s.fails("ping") {
		return s.Err
	}
	return s.Store.Ping(ctx)
}
