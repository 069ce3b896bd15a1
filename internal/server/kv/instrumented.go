package kv

import (
	"context"
	"time"
)

// Observer receives one call per store operation.
type Observer interface {
	ObserveKV(op string, d time.Duration, err error)
}

// InstrumentedStore reports timing and outcome of every call to an Observer.
type InstrumentedStore struct {
	next Store
	obs  Observer
}

func Instrument(next Store, obs Observer) *InstrumentedStore {
	return &InstrumentedStore{next: next, obs: obs}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.obs.ObserveKV(op, time.Since(start), err)
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (v []byte, found bool, err error) {
	defer func(start time.Time) { s.observe("get", start, err) }(time.Now())
	return s.next.Get(ctx, key)
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer func(start time.Time) { s.observe("set", start, err) }(time.Now())
	return s.next.Set(ctx, key, value)
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())
	return s.next.Delete(ctx, key)
}

func (s *InstrumentedStore) GetByPrefix(ctx context.Context, prefix string) (recs []Record, err error) {
	defer func(start time.Time) { s.observe("get_by_prefix", start, err) }(time.Now())
	return s.next.GetByPrefix(ctx, prefix)
}

func (s *InstrumentedStore) Update(ctx context.Context, key string, fn UpdateFunc) (err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())
	return s.next.Update(ctx, key, fn)
}

func (s *InstrumentedStore) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("ping", start, err) }(time.Now())
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
