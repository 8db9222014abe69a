// Package category infers a grocery category from a free-text item name and
// aggregates items by category.
//
// Matching is a plain bidirectional substring test against an ordered
// keyword table: a name matches a keyword when either contains the other,
// and the first category in table order with a match wins. This accepts
// false positives (a keyword inside an unrelated word). Stored category
// assignments were made with these exact rules, so they must not change.
package category

import (
	"slices"
	"strings"

	"github.com/vbonduro/cartwise/internal/domain"
)

// Uncategorized is the group name for items with no explicit or inferred
// category.
const Uncategorized = "Uncategorized"

// Stats describes how much of a list the keyword table recognizes.
type Stats struct {
	TotalCategories    int     `json:"totalCategories"`
	CategorizedCount   int     `json:"categorizedCount"`
	UncategorizedCount int     `json:"uncategorizedCount"`
	Rate               float64 `json:"rate"`
}

type Classifier struct {
	taxonomy Taxonomy
}

func NewClassifier(t Taxonomy) *Classifier {
	return &Classifier{taxonomy: t}
}

func (c *Classifier) Taxonomy() Taxonomy {
	return c.taxonomy
}

// Suggest returns the first category with a keyword matching name, or nil.
func (c *Classifier) Suggest(name string) *Category {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		// every keyword contains the empty string
		return nil
	}
	for i := range c.taxonomy {
		for _, k := range c.taxonomy[i].Keywords {
			if strings.Contains(normalized, k) || strings.Contains(k, normalized) {
				return &c.taxonomy[i]
			}
		}
	}
	return nil
}

// CategoryFor resolves the group an item belongs to: its explicit category,
// else the suggested one, else Uncategorized.
func (c *Classifier) CategoryFor(item domain.Item) string {
	if item.Category != "" {
		return item.Category
	}
	if s := c.Suggest(item.Name); s != nil {
		return s.Name
	}
	return Uncategorized
}

// GroupByCategory buckets items by CategoryFor, keeping input order inside
// each bucket. Only non-empty buckets are present.
func (c *Classifier) GroupByCategory(items []domain.Item) map[string][]domain.Item {
	groups := make(map[string][]domain.Item)
	for _, item := range items {
		name := c.CategoryFor(item)
		groups[name] = append(groups[name], item)
	}
	return groups
}

// Order returns the keys of groups for display: taxonomy order first, then
// categories outside the taxonomy alphabetically, then Uncategorized.
func (c *Classifier) Order(groups map[string][]domain.Item) []string {
	out := make([]string, 0, len(groups))
	known := make(map[string]bool, len(c.taxonomy))
	for _, cat := range c.taxonomy {
		known[cat.Name] = true
		if len(groups[cat.Name]) > 0 {
			out = append(out, cat.Name)
		}
	}

	var extra []string
	for name, items := range groups {
		if !known[name] && name != Uncategorized && len(items) > 0 {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	out = append(out, extra...)

	if len(groups[Uncategorized]) > 0 {
		out = append(out, Uncategorized)
	}
	return out
}

// Stats counts items the keyword table recognizes by name. Explicit
// categories on the items are not consulted.
func (c *Classifier) Stats(items []domain.Item) Stats {
	var categorized int
	for _, item := range items {
		if c.Suggest(item.Name) != nil {
			categorized++
		}
	}
	stats := Stats{
		TotalCategories:    len(c.GroupByCategory(items)),
		CategorizedCount:   categorized,
		UncategorizedCount: len(items) - categorized,
	}
	if len(items) > 0 {
		stats.Rate = float64(categorized) / float64(len(items)) * 100
	}
	return stats
}
