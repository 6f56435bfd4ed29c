// Package catalog provides a small file-backed product catalog for cartctl.
// The cart core only ever sees these products through the Buyable interface;
// any application can substitute its own product source.
package catalog

import (
	"fmt"
	"os"

	"github.com/witify/go-cart/internal/types"
	"gopkg.in/yaml.v3"
)

// Product is a catalog entry. Surcharges maps option values to price deltas,
// so an option like size=XL can carry a surcharge resolved at add time.
type Product struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	BasePrice  float64            `yaml:"price"`
	Surcharges map[string]float64 `yaml:"surcharges,omitempty"`
}

// Identifier implements types.Buyable.
func (p *Product) Identifier(_ types.Options) string {
	return p.ID
}

// Description implements types.Buyable.
func (p *Product) Description(_ types.Options) string {
	return p.Name
}

// Price implements types.Buyable: the base price plus the surcharge of every
// selected option value.
func (p *Product) Price(options types.Options) float64 {
	price := p.BasePrice
	for _, v := range options {
		price += p.Surcharges[v]
	}
	return price
}

// Catalog is an id-indexed product collection.
type Catalog struct {
	products map[string]*Product
}

type catalogFile struct {
	Products []*Product `yaml:"products"`
}

// Load reads a YAML product catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	c := &Catalog{products: make(map[string]*Product, len(file.Products))}
	for _, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog %s: product with empty id", path)
		}
		if _, ok := c.products[p.ID]; ok {
			return nil, fmt.Errorf("catalog %s: duplicate product id %q", path, p.ID)
		}
		c.products[p.ID] = p
	}
	return c, nil
}

// Get returns a product by id.
func (c *Catalog) Get(id string) (*Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
