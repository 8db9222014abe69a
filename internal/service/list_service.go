package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/domain"
)

// listRepository is the subset of store.ListStore that ListService requires.
type listRepository interface {
	List(ctx context.Context) []domain.ShoppingList
	GetByID(ctx context.Context, id string) (*domain.ShoppingList, error)
	Mutate(ctx context.Context, fn func([]domain.ShoppingList) ([]domain.ShoppingList, error)) error
	DeleteAll(ctx context.Context) error
}

type ListService struct {
	lists      listRepository
	classifier *category.Classifier
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewListService(lists listRepository, classifier *category.Classifier, v *validator.Validate, logger *slog.Logger) *ListService {
	return &ListService{lists: lists, classifier: classifier, validator: v, logger: logger}
}

// ListStats totals every list. TotalValue is the sum of price times quantity
// over all items.
type ListStats struct {
	TotalLists int             `json:"totalLists"`
	TotalItems int             `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// CategoryGroup is one display section of a list.
type CategoryGroup struct {
	Name  string        `json:"name"`
	Items []domain.Item `json:"items"`
}

// CategoryView is a list's items grouped by category in display order.
type CategoryView struct {
	Groups []CategoryGroup `json:"groups"`
	Stats  category.Stats  `json:"stats"`
}

func (s *ListService) Lists(ctx context.Context) []domain.ShoppingList {
	return s.lists.List(ctx)
}

func (s *ListService) GetList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	l, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrListNotFound
	}
	return l, nil
}

// ActiveList returns the list flagged active, or domain.ErrListNotFound when
// there is none.
func (s *ListService) ActiveList(ctx context.Context) (*domain.ShoppingList, error) {
	for _, l := range s.lists.List(ctx) {
		if l.IsActive {
			return &l, nil
		}
	}
	return nil, domain.ErrListNotFound
}

// CreateList appends a new empty list and makes it the only active one.
func (s *ListService) CreateList(ctx context.Context, in domain.ListInput) (*domain.ShoppingList, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.ShoppingList{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Items:     []domain.Item{},
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		for i := range all {
			all[i].IsActive = false
		}
		return append(all, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.logger.Info("list created", "id", created.ID)
	return &created, nil
}

func (s *ListService) RenameList(ctx context.Context, id string, in domain.ListInput) (*domain.ShoppingList, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	var renamed domain.ShoppingList
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		l := find(all, id)
		if l == nil {
			return nil, domain.ErrListNotFound
		}
		l.Name = in.Name
		l.UpdatedAt = time.Now().UTC()
		renamed = *l
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename list: %w", err)
	}
	return &renamed, nil
}

// DeleteList removes a list. When the active list goes, the first remaining
// list becomes active.
func (s *ListService) DeleteList(ctx context.Context, id string) error {
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		i := slices.IndexFunc(all, func(l domain.ShoppingList) bool { return l.ID == id })
		if i < 0 {
			return nil, domain.ErrListNotFound
		}
		wasActive := all[i].IsActive
		all = slices.Delete(all, i, i+1)
		if wasActive && len(all) > 0 {
			all[0].IsActive = true
		}
		return all, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.logger.Info("list deleted", "id", id)
	return nil
}

// DuplicateList copies a list and its items under new ids. The copy is
// appended inactive and every item keeps its state.
func (s *ListService) DuplicateList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	var dup domain.ShoppingList
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		src := find(all, id)
		if src == nil {
			return nil, domain.ErrListNotFound
		}
		now := time.Now().UTC()
		dup = domain.ShoppingList{
			ID:        uuid.NewString(),
			Name:      src.Name + " (Cópia)",
			Items:     make([]domain.Item, len(src.Items)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		for i, item := range src.Items {
			item.ID = uuid.NewString()
			dup.Items[i] = item
		}
		return append(all, dup), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate list: %w", err)
	}
	return &dup, nil
}

// SetActive makes id the only active list.
func (s *ListService) SetActive(ctx context.Context, id string) (*domain.ShoppingList, error) {
	var active domain.ShoppingList
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		if find(all, id) == nil {
			return nil, domain.ErrListNotFound
		}
		for i := range all {
			all[i].IsActive = all[i].ID == id
			if all[i].IsActive {
				active = all[i]
			}
		}
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate list: %w", err)
	}
	return &active, nil
}

// AddItem appends an item to a list. Without an explicit category the item
// gets the suggested one, if any.
func (s *ListService) AddItem(ctx context.Context, listID string, in domain.ItemInput) (*domain.Item, error) {
	in, err := s.normalizeItem(in)
	if err != nil {
		return nil, err
	}

	item := domain.Item{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Category:  in.Category,
		CreatedAt: time.Now().UTC(),
	}
	if item.Category == "" {
		item.Category = s.suggestedName(item.Name)
	}

	err = s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		l := find(all, listID)
		if l == nil {
			return nil, domain.ErrListNotFound
		}
		l.Items = append(l.Items, item)
		l.UpdatedAt = item.CreatedAt
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.Info("item added", "list_id", listID, "item_id", item.ID, "category", item.Category)
	return &item, nil
}

// UpdateItem replaces an item's fields. An explicit category always wins; a
// renamed item without one is re-categorized; otherwise the category stays.
func (s *ListService) UpdateItem(ctx context.Context, listID, itemID string, in domain.ItemInput) (*domain.Item, error) {
	in, err := s.normalizeItem(in)
	if err != nil {
		return nil, err
	}

	var updated domain.Item
	err = s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		l := find(all, listID)
		if l == nil {
			return nil, domain.ErrListNotFound
		}
		item := l.Item(itemID)
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		switch {
		case in.Category != "":
			item.Category = in.Category
		case in.Name != item.Name:
			item.Category = s.suggestedName(in.Name)
		}
		item.Name = in.Name
		item.Quantity = in.Quantity
		item.Price = in.Price
		l.UpdatedAt = time.Now().UTC()
		updated = *item
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &updated, nil
}

func (s *ListService) ToggleItem(ctx context.Context, listID, itemID string) (*domain.Item, error) {
	var toggled domain.Item
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		l := find(all, listID)
		if l == nil {
			return nil, domain.ErrListNotFound
		}
		item := l.Item(itemID)
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		item.Completed = !item.Completed
		l.UpdatedAt = time.Now().UTC()
		toggled = *item
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle item: %w", err)
	}
	return &toggled, nil
}

func (s *ListService) RemoveItem(ctx context.Context, listID, itemID string) error {
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		l := find(all, listID)
		if l == nil {
			return nil, domain.ErrListNotFound
		}
		i := slices.IndexFunc(l.Items, func(it domain.Item) bool { return it.ID == itemID })
		if i < 0 {
			return nil, domain.ErrItemNotFound
		}
		l.Items = slices.Delete(l.Items, i, i+1)
		l.UpdatedAt = time.Now().UTC()
		return all, nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// Categories groups a list's items for display.
func (s *ListService) Categories(ctx context.Context, listID string) (*CategoryView, error) {
	l, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	groups := s.classifier.GroupByCategory(l.Items)
	view := &CategoryView{Groups: make([]CategoryGroup, 0, len(groups)), Stats: s.classifier.Stats(l.Items)}
	for _, name := range s.classifier.Order(groups) {
		view.Groups = append(view.Groups, CategoryGroup{Name: name, Items: groups[name]})
	}
	return view, nil
}

func (s *ListService) Stats(ctx context.Context) ListStats {
	lists := s.lists.List(ctx)
	stats := ListStats{TotalLists: len(lists), TotalValue: decimal.Zero}
	for _, l := range lists {
		stats.TotalItems += len(l.Items)
		for _, item := range l.Items {
			line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
			stats.TotalValue = stats.TotalValue.Add(line)
		}
	}
	return stats
}

// LastUpdate is the most recent change to any list, or the zero time.
func (s *ListService) LastUpdate(ctx context.Context) time.Time {
	var last time.Time
	for _, l := range s.lists.List(ctx) {
		if t := l.LastUpdate(); t.After(last) {
			last = t
		}
	}
	return last
}

// ClearPrices resets every item to price 0 and quantity 1, returning how
// many items were touched.
func (s *ListService) ClearPrices(ctx context.Context) (int, error) {
	var count int
	err := s.lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		now := time.Now().UTC()
		for i := range all {
			for j := range all[i].Items {
				all[i].Items[j].Price = 0
				all[i].Items[j].Quantity = 1
				count++
			}
			all[i].UpdatedAt = now
		}
		return all, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear item prices: %w", err)
	}

	s.logger.Info("item prices cleared", "count", count)
	return count, nil
}

func (s *ListService) ClearAll(ctx context.Context) error {
	if err := s.lists.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("lists cleared")
	return nil
}

func (s *ListService) normalizeItem(in domain.ItemInput) (domain.ItemInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate(s.validator, in); err != nil {
		return in, err
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return in, nil
}

func (s *ListService) suggestedName(name string) string {
	if c := s.classifier.Suggest(name); c != nil {
		return c.Name
	}
	return ""
}

func find(lists []domain.ShoppingList, id string) *domain.ShoppingList {
	for i := range lists {
		if lists[i].ID == id {
			return &lists[i]
		}
	}
	return nil
}
