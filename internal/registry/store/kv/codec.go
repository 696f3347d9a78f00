package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/sentinel"
)

// getJSON decodes the document at key. A missing key yields (nil, nil).
func getJSON[T any](b Bucket, key []byte) (*T, error) {
	raw, err := b.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &v, nil
}

// putJSON stores v at key and reports whether the stored bytes changed.
func putJSON(b Bucket, key []byte, v any) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	prev, err := b.Get(key)
	switch {
	case err == nil && bytes.Equal(prev, raw):
		return false, nil
	case err != nil && !errors.Is(err, ErrKeyNotFound):
		return false, err
	}
	if err := b.Put(key, raw); err != nil {
		return false, err
	}
	return true, nil
}

// deleteKey removes key and reports whether it existed.
func deleteKey(b Bucket, key []byte) (bool, error) {
	_, err := b.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, b.Delete(key)
}

// deletePrefix removes every key starting with prefix and reports whether
// anything was removed. Keys are collected before deleting because ForEach
// must not observe its own writes.
func deletePrefix(b Bucket, prefix []byte) (bool, error) {
	var keys [][]byte
	err := b.ForEach(prefix, func(k, _ []byte) error {
		keys = append(keys, bytes.Clone(k))
		return nil
	})
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return false, err
		}
	}
	return len(keys) > 0, nil
}

// listJSON decodes every document under prefix.
func listJSON[T any](b Bucket, prefix []byte) ([]*T, error) {
	out := []*T{}
	err := b.ForEach(prefix, func(k, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return fmt.Errorf("decode %s: %w", k, err)
		}
		out = append(out, &item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func countKeys(b Bucket, prefix []byte) (int, error) {
	n := 0
	err := b.ForEach(prefix, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

// translate maps engine failures onto the manager error contract. Coded
// errors raised inside a transaction pass through untouched.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *dErrors.Error
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" was cancelled")
	case errors.Is(err, sentinel.ErrConflict):
		// A lost optimistic commit says nothing about the key itself, so it must
		// not surface as AlreadyExists.
		return dErrors.Wrap(err, dErrors.CodeBackend, op+" lost a race with a concurrent write, retry the request")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeBackend, op+" failed: storage is unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeBackend, op+" failed")
	}
}
