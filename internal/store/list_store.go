package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/kvstore"
)

// Storage keys of the shopping lists and of the active list's id.
const (
	ListsKey      = "shopping-lists"
	ActiveListKey = "active-list-id"
)

// ListStore keeps every shopping list, with its items, in one document.
// The IsActive flag inside that document is authoritative; the id under
// ActiveListKey mirrors it for readers of the raw store.
type ListStore struct {
	lists  collection[domain.ShoppingList]
	kv     kvstore.Store
	logger *slog.Logger
}

func NewListStore(kv kvstore.Store, logger *slog.Logger) *ListStore {
	return &ListStore{
		lists:  collection[domain.ShoppingList]{kv: kv, key: ListsKey, logger: logger},
		kv:     kv,
		logger: logger,
	}
}

func (s *ListStore) List(ctx context.Context) []domain.ShoppingList {
	lists := s.lists.load(ctx)
	for i := range lists {
		if lists[i].Items == nil {
			lists[i].Items = []domain.Item{}
		}
	}
	return lists
}

func (s *ListStore) GetByID(ctx context.Context, id string) (*domain.ShoppingList, error) {
	for _, l := range s.List(ctx) {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

// Mutate applies fn to all lists and saves the result as one write, then
// mirrors the active list's id under ActiveListKey before any other mutation
// can run. An error from fn is returned unwrapped and nothing is saved.
func (s *ListStore) Mutate(ctx context.Context, fn func([]domain.ShoppingList) ([]domain.ShoppingList, error)) error {
	return s.lists.mutateThen(ctx, fn, func(all []domain.ShoppingList) error {
		var activeID string
		for _, l := range all {
			if l.IsActive {
				activeID = l.ID
				break
			}
		}
		return s.SetActiveID(ctx, activeID)
	})
}

// ActiveID returns the mirrored active list id, or "" when none is stored.
func (s *ListStore) ActiveID(ctx context.Context) string {
	var id string
	if !kvstore.LoadValue(ctx, s.kv, ActiveListKey, &id, s.logger) {
		return ""
	}
	return id
}

// SetActiveID stores id under ActiveListKey. An empty id removes the key.
func (s *ListStore) SetActiveID(ctx context.Context, id string) error {
	if id == "" {
		if err := s.kv.Remove(ctx, ActiveListKey); err != nil {
			return fmt.Errorf("failed to clear active list: %w", err)
		}
		return nil
	}
	if err := kvstore.SaveValue(ctx, s.kv, ActiveListKey, id, s.logger); err != nil {
		return fmt.Errorf("failed to set active list: %w", err)
	}
	return nil
}

func (s *ListStore) DeleteAll(ctx context.Context) error {
	if err := s.lists.clear(ctx); err != nil {
		return fmt.Errorf("failed to delete lists: %w", err)
	}
	if err := s.kv.Remove(ctx, ActiveListKey); err != nil {
		return fmt.Errorf("failed to delete lists: %w", err)
	}

	return nil
}
