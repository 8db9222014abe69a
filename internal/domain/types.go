package domain

import (
	"time"

	"github.com/vbonduro/cartwise/internal/pricing"
)

// Product is a packaged offer in the price comparator. PricePerUnit is per
// base unit of the product's family (kg, l, un) and is recomputed from
// Amount and PackagePrice whenever either changes.
type Product struct {
	pricing.Product
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is an entry on a shopping list. An empty Category means none was
// assigned or inferred.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Completed bool      `json:"completed"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ShoppingList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsActive  bool      `json:"isActive"`
}

// Item returns a pointer to the list's item with the given id, or nil.
func (l *ShoppingList) Item(id string) *Item {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// LastUpdate is the newer of UpdatedAt and CreatedAt.
func (l ShoppingList) LastUpdate() time.Time {
	if l.UpdatedAt.After(l.CreatedAt) {
		return l.UpdatedAt
	}
	return l.CreatedAt
}
