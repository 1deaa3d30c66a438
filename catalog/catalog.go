// Package catalog holds the reference table of renovation line items and
// their unit costs per quality tier. A catalog is loaded once at start-up
// and is read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"boligbudsjett/models"
	"boligbudsjett/utils"
)

//go:embed default.yaml
var defaultCatalog []byte

type categoryDoc struct {
	Category string               `yaml:"category"`
	Items    []models.CatalogItem `yaml:"items"`
}

// Catalog is an immutable, ordered set of renovation items.
type Catalog struct {
	categories []string
	byCategory map[string][]models.CatalogItem
	byName     map[string]models.CatalogItem
}

// Default returns the built-in catalog. It panics only if the embedded
// table is broken, which the package tests guard against.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var docs []categoryDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	v := utils.NewValidator()
	c := &Catalog{
		byCategory: make(map[string][]models.CatalogItem),
		byName:     make(map[string]models.CatalogItem),
	}

	for _, doc := range docs {
		if doc.Category == "" {
			return nil, fmt.Errorf("catalog: category without a name")
		}
		if _, dup := c.byCategory[doc.Category]; dup {
			return nil, fmt.Errorf("catalog: category %q listed twice", doc.Category)
		}
		c.categories = append(c.categories, doc.Category)

		items := make([]models.CatalogItem, 0, len(doc.Items))
		for _, item := range doc.Items {
			item.Category = doc.Category
			if err := v.Struct(item); err != nil {
				return nil, fmt.Errorf("catalog: item %q in %q: %w", item.Name, doc.Category, err)
			}
			// Selections are keyed by item name, so names must be unique
			// across the whole catalog.
			if prev, dup := c.byName[item.Name]; dup {
				return nil, fmt.Errorf("catalog: item %q appears in both %q and %q", item.Name, prev.Category, doc.Category)
			}
			c.byName[item.Name] = item
			items = append(items, item)
		}
		c.byCategory[doc.Category] = items
	}

	if len(c.byName) == 0 {
		return nil, fmt.Errorf("catalog: no items")
	}
	return c, nil
}

// Categories returns category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Items returns the items of one category in catalog order.
func (c *Catalog) Items(category string) []models.CatalogItem {
	items := c.byCategory[category]
	out := make([]models.CatalogItem, len(items))
	copy(out, items)
	return out
}

// All returns every item, category by category.
func (c *Catalog) All() []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(c.byName))
	for _, cat := range c.categories {
		out = append(out, c.byCategory[cat]...)
	}
	return out
}

// Lookup finds an item by name.
func (c *Catalog) Lookup(name string) (models.CatalogItem, bool) {
	item, ok := c.byName[name]
	return item, ok
}

// UnitCost returns the unit cost of an item at a tier.
func (c *Catalog) UnitCost(name string, tier models.Tier) (float64, bool) {
	item, ok := c.byName[name]
	if !ok {
		return 0, false
	}
	return item.UnitCost(tier)
}

// Position is the index of an item in All(), or -1 when unknown. Used to
// list selections in catalog order.
func (c *Catalog) Position(name string) int {
	i := 0
	for _, cat := range c.categories {
		for _, item := range c.byCategory[cat] {
			if item.Name == name {
				return i
			}
			i++
		}
	}
	return -1
}
