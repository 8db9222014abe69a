package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/kvstore"
	"github.com/vbonduro/cartwise/internal/pricing"
)

// ProductsKey is the storage key of the price comparator's products.
const ProductsKey = "price-comparator"

// ProductStore keeps comparator products in insertion order. Every product
// it returns or writes has PricePerUnit recomputed from its inputs.
type ProductStore struct {
	products collection[domain.Product]
}

func NewProductStore(kv kvstore.Store, logger *slog.Logger) *ProductStore {
	return &ProductStore{products: collection[domain.Product]{kv: kv, key: ProductsKey, logger: logger}}
}

func (s *ProductStore) Create(ctx context.Context, name string, unit pricing.Unit, amount, packagePrice float64) (*domain.Product, error) {
	now := time.Now().UTC()
	p := domain.Product{
		Product: pricing.Reprice(pricing.Product{
			ID:           uuid.NewString(),
			Unit:         unit,
			Amount:       amount,
			PackagePrice: packagePrice,
		}),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.products.mutate(ctx, func(all []domain.Product) ([]domain.Product, error) {
		return append(all, p), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *ProductStore) List(ctx context.Context) []domain.Product {
	all := s.products.load(ctx)
	for i := range all {
		all[i].Product = pricing.Reprice(all[i].Product)
	}
	return all
}

func (s *ProductStore) Update(ctx context.Context, id, name string, unit pricing.Unit, amount, packagePrice float64) (*domain.Product, error) {
	var updated domain.Product
	err := s.products.mutate(ctx, func(all []domain.Product) ([]domain.Product, error) {
		i := slices.IndexFunc(all, func(p domain.Product) bool { return p.ID == id })
		if i < 0 {
			return nil, domain.ErrProductNotFound
		}
		all[i].Name = name
		all[i].Unit = unit
		all[i].Amount = amount
		all[i].PackagePrice = packagePrice
		all[i].Product = pricing.Reprice(all[i].Product)
		all[i].UpdatedAt = time.Now().UTC()
		updated = all[i]
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &updated, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	err := s.products.mutate(ctx, func(all []domain.Product) ([]domain.Product, error) {
		i := slices.IndexFunc(all, func(p domain.Product) bool { return p.ID == id })
		if i < 0 {
			return nil, domain.ErrProductNotFound
		}
		return slices.Delete(all, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// ClearPrices zeroes every package price, keeping names and package sizes.
func (s *ProductStore) ClearPrices(ctx context.Context) (int, error) {
	var count int
	err := s.products.mutate(ctx, func(all []domain.Product) ([]domain.Product, error) {
		now := time.Now().UTC()
		for i := range all {
			all[i].PackagePrice = 0
			all[i].Product = pricing.Reprice(all[i].Product)
			all[i].UpdatedAt = now
		}
		count = len(all)
		return all, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear prices: %w", err)
	}

	return count, nil
}

func (s *ProductStore) DeleteAll(ctx context.Context) error {
	if err := s.products.clear(ctx); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}

	return nil
}
