package category

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// Category is a taxonomy entry: a name and the lowercase substrings that
// identify items belonging to it.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Taxonomy is the ordered category table. Order is match priority.
type Taxonomy []Category

type taxonomyFile struct {
	Categories []Category `yaml:"categories"`
}

// DefaultTaxonomy returns the built-in grocery taxonomy.
func DefaultTaxonomy() Taxonomy {
	t, err := LoadTaxonomy(bytes.NewReader(defaultTaxonomy))
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// LoadTaxonomyFile reads a taxonomy from a YAML file on disk.
func LoadTaxonomyFile(path string) (Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxonomy file: %w", err)
	}
	defer f.Close()
	return LoadTaxonomy(f)
}

// LoadTaxonomy decodes a taxonomy document. Keywords are lowercased and
// trimmed and blanks dropped; category names must be present and unique.
func LoadTaxonomy(r io.Reader) (Taxonomy, error) {
	var doc taxonomyFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy: %w", err)
	}

	seen := make(map[string]bool, len(doc.Categories))
	t := make(Taxonomy, 0, len(doc.Categories))
	for i, c := range doc.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if name == Uncategorized {
			return nil, fmt.Errorf("category name %q is reserved", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		t = append(t, Category{Name: name, Keywords: keywords})
	}
	return t, nil
}

// Names returns the category names in declared order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a category by exact name.
func (t Taxonomy) Lookup(name string) *Category {
	for i := range t {
		if t[i].Name == name {
			return &t[i]
		}
	}
	return nil
}
