package domain

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductNotFound = errors.New("product not found")
	ErrListNotFound    = errors.New("shopping list not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrNoAssistant     = errors.New("category assistant not configured")
)

// Field limits, counted in characters. The validator exposes them to the
// inputs below as the namelen and categorylen tags.
const (
	MaxNameLen     = 200
	MaxCategoryLen = 100
)

type (
	// ProductInput is a create or edit of a comparator product. Unit must
	// already be parsed with pricing.ParseUnit.
	ProductInput struct {
		Name         string  `json:"name" validate:"required,namelen"`
		Unit         string  `json:"unit" validate:"required,oneof=kg g l ml un"`
		Amount       float64 `json:"amount" validate:"gte=0"`
		PackagePrice float64 `json:"packagePrice" validate:"gte=0"`
	}

	// ItemInput is a create or edit of a shopping-list item. A zero Quantity
	// means the default of 1. An empty Category asks for inference.
	ItemInput struct {
		Name     string  `json:"name" validate:"required,namelen"`
		Quantity int     `json:"quantity" validate:"gte=0"`
		Price    float64 `json:"price" validate:"gte=0"`
		Category string  `json:"category" validate:"categorylen"`
	}

	ListInput struct {
		Name string `json:"name" validate:"required,namelen"`
	}
)
