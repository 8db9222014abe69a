// Package pricing normalizes package offers to a per-base-unit price and picks
// the cheapest offer in each unit family. Every function is pure: results are
// derived from the arguments only and the inputs are never modified.
package pricing

import (
	"math"
	"slices"
)

// Product is the comparator's view of a packaged offer.
type Product struct {
	ID           string  `json:"id"`
	Unit         Unit    `json:"unit"`
	Amount       float64 `json:"amount"`
	PackagePrice float64 `json:"packagePrice"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// Stats summarizes a set of products for display.
type Stats struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalUnits       int     `json:"totalUnits"`
	PotentialSavings float64 `json:"potentialSavings"`
}

// ComputeUnitPrice returns packagePrice/amount, or 0 when amount is not
// positive so NaN and Inf never reach a sort.
func ComputeUnitPrice(amount, packagePrice float64) float64 {
	if amount > 0 {
		return packagePrice / amount
	}
	return 0
}

// UnitPrice is the price of p per base unit of its family.
func UnitPrice(p Product) float64 {
	_, amount := Normalize(p.Unit, p.Amount)
	return ComputeUnitPrice(amount, p.PackagePrice)
}

// Reprice returns p with PricePerUnit recomputed from its amount and price.
func Reprice(p Product) Product {
	p.PricePerUnit = UnitPrice(p)
	return p
}

// GroupByUnit partitions products by unit family. Each group is sorted by
// ascending per-unit price; equal prices keep their input order, so index 0
// is always the cheapest and the earliest of any tie.
func GroupByUnit(products []Product) map[Unit][]Product {
	groups := make(map[Unit][]Product)
	for _, p := range products {
		f := Family(p.Unit)
		groups[f] = append(groups[f], Reprice(p))
	}
	for _, g := range groups {
		slices.SortStableFunc(g, func(a, b Product) int {
			switch {
			case a.PricePerUnit < b.PricePerUnit:
				return -1
			case a.PricePerUnit > b.PricePerUnit:
				return 1
			}
			return 0
		})
	}
	return groups
}

// Families lists the unit families present in products in order of first
// appearance.
func Families(products []Product) []Unit {
	var out []Unit
	seen := make(map[Unit]bool)
	for _, p := range products {
		f := Family(p.Unit)
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// BestInUnit returns the cheapest product per base unit in the family of
// unit, or nil if there is none. Of several tied minima the first one in
// products wins.
func BestInUnit(products []Product, unit Unit) *Product {
	family := Family(unit)
	var best *Product
	for _, p := range products {
		if Family(p.Unit) != family {
			continue
		}
		p = Reprice(p)
		if best == nil || p.PricePerUnit < best.PricePerUnit {
			candidate := p
			best = &candidate
		}
	}
	return best
}

// IsBest reports whether product is the best offer of its family in products.
func IsBest(products []Product, product Product) bool {
	best := BestInUnit(products, product.Unit)
	return best != nil && best.ID == product.ID
}

// PotentialSavings sums, over each family with at least two products, the
// spread between the most and least expensive per-unit price.
func PotentialSavings(products []Product) float64 {
	// Sum in family order so repeated calls add in the same sequence.
	groups := GroupByUnit(products)
	var total float64
	for _, f := range Families(products) {
		g := groups[f]
		if len(g) < 2 {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range g {
			lo = min(lo, p.PricePerUnit)
			hi = max(hi, p.PricePerUnit)
		}
		total += hi - lo
	}
	return total
}

// Summarize computes the comparator statistics shown next to the table.
func Summarize(products []Product) Stats {
	return Stats{
		TotalProducts:    len(products),
		TotalUnits:       len(Families(products)),
		PotentialSavings: PotentialSavings(products),
	}
}
