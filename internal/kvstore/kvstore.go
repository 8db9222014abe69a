// Package kvstore is the key-value persistence collaborator. Application
// state is stored as JSON documents under a handful of keys, the same shape
// the browser app kept in local storage.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]KeyInfo, error)
}

// KeyInfo describes a stored key for the admin storage summary.
type KeyInfo struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoadCollection decodes the JSON array under key. An absent key, corrupt
// JSON or a backend error all yield an empty slice; the latter two are
// logged.
func LoadCollection[T any](ctx context.Context, s Store, key string, logger *slog.Logger) []T {
	records, err := ReadCollection[T](ctx, s, key, logger)
	if err != nil {
		logger.Error("failed to read collection", "key", key, "error", err)
		return []T{}
	}
	return records
}

// ReadCollection is LoadCollection for read-modify-write callers: a backend
// error is returned instead of being read as an empty collection. Absent or
// corrupt documents still yield an empty slice.
func ReadCollection[T any](ctx context.Context, s Store, key string, logger *slog.Logger) ([]T, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Error("discarding corrupt collection", "key", key, "error", err)
		return []T{}, nil
	}
	if records == nil {
		return []T{}, nil
	}
	return records, nil
}

// SaveCollection encodes records as a JSON array under key. Failures are
// logged and returned.
func SaveCollection[T any](ctx context.Context, s Store, key string, records []T, logger *slog.Logger) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		logger.Error("failed to encode collection", "key", key, "error", err)
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		logger.Error("failed to write collection", "key", key, "error", err)
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

// LoadValue decodes a single JSON value under key into dst. It reports
// false, leaving dst untouched, when the key is absent or unreadable.
func LoadValue(ctx context.Context, s Store, key string, dst any, logger *slog.Logger) bool {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		logger.Error("failed to read value", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Error("discarding corrupt value", "key", key, "error", err)
		return false
	}
	return true
}

// SaveValue encodes v as JSON under key.
func SaveValue(ctx context.Context, s Store, key string, v any, logger *slog.Logger) error {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode value", "key", key, "error", err)
		return fmt.Errorf("failed to encode value %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		logger.Error("failed to write value", "key", key, "error", err)
		return fmt.Errorf("failed to write value %s: %w", key, err)
	}
	return nil
}
