package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON loads key and decodes it into T. A missing key yields the zero T
// and found=false.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T

	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return v, found, err
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, true, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON is Update with JSON decoding of the current value and encoding
// of the result. fn may run several times; see UpdateFunc.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(cur T, found bool) (T, error)) error {
	return s.Update(ctx, key, func(old []byte, found bool) ([]byte, error) {
		var cur T
		if found {
			if err := json.Unmarshal(old, &cur); err != nil {
				return nil, fmt.Errorf("decode %q: %w", key, err)
			}
		}

		next, err := fn(cur, found)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", key, err)
		}
		return raw, nil
	})
}

// Decode unmarshals every record value into T, preserving order.
func Decode[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		var v T
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("decode %q: %w", r.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}
