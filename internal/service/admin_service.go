package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/cartwise/internal/kvstore"
	"github.com/vbonduro/cartwise/internal/pricing"
)

// keyLister is the subset of kvstore.Store that AdminService requires.
type keyLister interface {
	Keys(ctx context.Context) ([]kvstore.KeyInfo, error)
}

type AdminService struct {
	lists      *ListService
	comparator *ComparatorService
	kv         keyLister
	logger     *slog.Logger
}

func NewAdminService(lists *ListService, comparator *ComparatorService, kv keyLister, logger *slog.Logger) *AdminService {
	return &AdminService{lists: lists, comparator: comparator, kv: kv, logger: logger}
}

type Overview struct {
	Lists        ListStats         `json:"lists"`
	Products     pricing.Stats     `json:"products"`
	Storage      []kvstore.KeyInfo `json:"storage"`
	StorageBytes int               `json:"storageBytes"`
	LastUpdate   *time.Time        `json:"lastUpdate"`
}

// ClearResult counts what a price reset touched.
type ClearResult struct {
	Items    int `json:"items"`
	Products int `json:"products"`
}

func (s *AdminService) Overview(ctx context.Context) (*Overview, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage keys: %w", err)
	}

	o := &Overview{
		Lists:    s.lists.Stats(ctx),
		Products: s.comparator.Stats(ctx),
		Storage:  keys,
	}
	for _, k := range keys {
		o.StorageBytes += k.Size
	}
	if last := s.lists.LastUpdate(ctx); !last.IsZero() {
		o.LastUpdate = &last
	}
	return o, nil
}

// ClearPrices resets item prices and quantities and every product's package
// price. Names, units and amounts are kept.
func (s *AdminService) ClearPrices(ctx context.Context) (*ClearResult, error) {
	items, err := s.lists.ClearPrices(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.comparator.ClearPrices(ctx)
	if err != nil {
		return nil, err
	}
	return &ClearResult{Items: items, Products: products}, nil
}

// ClearAll deletes every list and product.
func (s *AdminService) ClearAll(ctx context.Context) error {
	if err := s.lists.ClearAll(ctx); err != nil {
		return err
	}
	if err := s.comparator.ClearAll(ctx); err != nil {
		return err
	}
	s.logger.Warn("all data cleared")
	return nil
}
