package kv

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/zhangyunhao116/skipmap"
)

// MemoryStore keeps everything in an ordered skip list. Reads are lock-free;
// writes are serialized so Update stays atomic.
type MemoryStore struct {
	mu sync.Mutex
	m  *skipmap.FuncMap[string, []byte]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m: skipmap.NewFunc[string, []byte](func(a, b string) bool { return a < b }),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Store(key, cloneBytes(value))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Delete(key)
	return nil
}

func (s *MemoryStore) GetByPrefix(_ context.Context, prefix string) ([]Record, error) {
	recs := make([]Record, 0)
	s.m.Range(func(key string, value []byte) bool {
		if strings.HasPrefix(key, prefix) {
			recs = append(recs, Record{Key: key, Value: cloneBytes(value)})
			return true
		}
		// keys are ordered, so once past the prefix range we are done
		return key < prefix
	})
	return recs, nil
}

func (s *MemoryStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, found := s.m.Load(key)
	next, err := fn(cloneBytes(old), found)
	if err != nil {
		switch {
		case errors.Is(err, ErrSkip):
			return nil
		case errors.Is(err, ErrDelete):
			s.m.Delete(key)
			return nil
		}
		return err
	}

	s.m.Store(key, cloneBytes(next))
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
