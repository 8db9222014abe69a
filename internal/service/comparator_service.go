package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/pricing"
)

// productRepository is the subset of store.ProductStore that ComparatorService requires.
type productRepository interface {
	Create(ctx context.Context, name string, unit pricing.Unit, amount, packagePrice float64) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) []domain.Product
	Update(ctx context.Context, id, name string, unit pricing.Unit, amount, packagePrice float64) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ClearPrices(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ComparatorService struct {
	products  productRepository
	validator *validator.Validate
	logger    *slog.Logger
}

func NewComparatorService(products productRepository, v *validator.Validate, logger *slog.Logger) *ComparatorService {
	return &ComparatorService{products: products, validator: v, logger: logger}
}

// RankedProduct is a product inside its family, flagged when it is the
// family's best offer.
type RankedProduct struct {
	domain.Product
	IsBest bool `json:"isBest"`
}

// Family is one unit family of the comparison, cheapest first.
type Family struct {
	Unit     pricing.Unit    `json:"unit"`
	Products []RankedProduct `json:"products"`
	Best     *domain.Product `json:"best"`
}

type Comparison struct {
	Families []Family      `json:"families"`
	Stats    pricing.Stats `json:"stats"`
}

func (s *ComparatorService) ListProducts(ctx context.Context) []domain.Product {
	return s.products.List(ctx)
}

func (s *ComparatorService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *ComparatorService) AddProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	in, unit, err := s.normalizeProduct(in)
	if err != nil {
		return nil, err
	}

	p, err := s.products.Create(ctx, in.Name, unit, in.Amount, in.PackagePrice)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product added", "id", p.ID, "unit", p.Unit, "price_per_unit", p.PricePerUnit)
	return p, nil
}

func (s *ComparatorService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	in, unit, err := s.normalizeProduct(in)
	if err != nil {
		return nil, err
	}

	p, err := s.products.Update(ctx, id, in.Name, unit, in.Amount, in.PackagePrice)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product updated", "id", p.ID, "price_per_unit", p.PricePerUnit)
	return p, nil
}

func (s *ComparatorService) RemoveProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product removed", "id", id)
	return nil
}

// Comparison groups every product by unit family, in the order each family
// first appears, with the best offer of each family flagged.
func (s *ComparatorService) Comparison(ctx context.Context) *Comparison {
	all := s.products.List(ctx)
	byID := make(map[string]domain.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	offers := offersOf(all)
	groups := pricing.GroupByUnit(offers)
	families := make([]Family, 0, len(groups))
	for _, unit := range pricing.Families(offers) {
		group := groups[unit]
		f := Family{Unit: unit, Products: make([]RankedProduct, 0, len(group))}
		for _, offer := range group {
			p := byID[offer.ID]
			p.Product = offer
			f.Products = append(f.Products, RankedProduct{Product: p, IsBest: pricing.IsBest(offers, offer)})
		}
		if best := pricing.BestInUnit(offers, unit); best != nil {
			p := byID[best.ID]
			p.Product = *best
			f.Best = &p
		}
		families = append(families, f)
	}

	return &Comparison{Families: families, Stats: pricing.Summarize(offers)}
}

// Best returns the cheapest product in the family of unit, or nil when the
// family has no products.
func (s *ComparatorService) Best(ctx context.Context, unit string) (*domain.Product, error) {
	u := pricing.ParseUnit(unit)
	if u == "" {
		return nil, fmt.Errorf("%w: unit is required", domain.ErrInvalidInput)
	}

	all := s.products.List(ctx)
	best := pricing.BestInUnit(offersOf(all), u)
	if best == nil {
		return nil, nil
	}
	for _, p := range all {
		if p.ID == best.ID {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *ComparatorService) Stats(ctx context.Context) pricing.Stats {
	return pricing.Summarize(offersOf(s.products.List(ctx)))
}

// ClearPrices zeroes every package price and returns how many products were
// touched.
func (s *ComparatorService) ClearPrices(ctx context.Context) (int, error) {
	n, err := s.products.ClearPrices(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("product prices cleared", "count", n)
	return n, nil
}

func (s *ComparatorService) ClearAll(ctx context.Context) error {
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("products cleared")
	return nil
}

func (s *ComparatorService) normalizeProduct(in domain.ProductInput) (domain.ProductInput, pricing.Unit, error) {
	in.Name = strings.TrimSpace(in.Name)
	unit := pricing.ParseUnit(in.Unit)
	in.Unit = string(unit)
	if err := validate(s.validator, in); err != nil {
		return in, "", err
	}
	return in, unit, nil
}

func offersOf(products []domain.Product) []pricing.Product {
	offers := make([]pricing.Product, len(products))
	for i, p := range products {
		offers[i] = p.Product
	}
	return offers
}
