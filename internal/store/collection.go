package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vbonduro/cartwise/internal/kvstore"
)

// collection is a JSON array of records kept under one key. Mutations are
// serialized so concurrent requests never lose each other's writes.
type collection[T any] struct {
	kv     kvstore.Store
	key    string
	logger *slog.Logger
	mu     sync.Mutex
}

func (c *collection[T]) load(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return kvstore.LoadCollection[T](ctx, c.kv, c.key, c.logger)
}

// mutate loads the records, applies fn and saves the result. Nothing is
// written when the load or fn fails.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return c.mutateThen(ctx, fn, nil)
}

// mutateThen is mutate followed by saved, called with the written records
// while the lock is still held.
func (c *collection[T]) mutateThen(ctx context.Context, fn func([]T) ([]T, error), saved func([]T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := kvstore.ReadCollection[T](ctx, c.kv, c.key, c.logger)
	if err != nil {
		c.logger.Error("refusing to write over unreadable collection", "key", c.key, "error", err)
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	if err := kvstore.SaveCollection(ctx, c.kv, c.key, records, c.logger); err != nil {
		return err
	}
	if saved != nil {
		return saved(records)
	}
	return nil
}

func (c *collection[T]) clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Remove(ctx, c.key)
}
