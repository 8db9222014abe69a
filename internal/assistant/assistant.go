// Package assistant asks a language model to place an item the keyword table
// does not recognize into one of the known categories.
package assistant

import (
	"context"
	"fmt"
	"strings"
)

type Suggester interface {
	// SuggestCategory returns one of categories for the item name, or "" when
	// the model picks none of them.
	SuggestCategory(ctx context.Context, name string, categories []string) (string, error)
}

// NoneAnswer is what the model is told to reply when no category fits.
const NoneAnswer = "none"

// CategoryPrompt is the shared prompt used by all assistant adapters.
func CategoryPrompt(name string, categories []string) string {
	var b strings.Builder
	b.WriteString("You sort grocery shopping-list items into categories.\n")
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "Item: %q\n", name)
	fmt.Fprintf(&b, "Reply with exactly one category name from the list, or %q if none fits. No other text.", NoneAnswer)
	return b.String()
}
