package till

import "github.com/shopspring/decimal"

// Catalog is the fixed, ordered list of sellable products. It is built once
// at startup and read-only afterwards; derivations iterate it in order so
// cart lines always come out in catalog order.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// NewCatalog builds a catalog from an ordered product list. Later duplicates
// of an id are ignored.
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]Product, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c
}

// Products returns the catalog in its fixed order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// DefaultProducts is the built-in cash-stand price list, used when no
// catalog file is configured.
func DefaultProducts() []Product {
	return []Product{
		{ID: "cerveza", Name: "Cerveza", Price: decimal.NewFromInt(2)},
		{ID: "tinto", Name: "Tinto", Price: decimal.NewFromInt(2)},
		{ID: "refresco", Name: "Refresco", Price: decimal.NewFromFloat(1.5)},
		{ID: "cubata", Name: "Cubata", Price: decimal.NewFromInt(5)},
		{ID: "plus", Name: "+ Extra", Price: decimal.NewFromInt(1)},
		{ID: "chupito", Name: "Chupito", Price: decimal.NewFromFloat(1.5)},
		{ID: "chupito_premium", Name: "Chupito premium", Price: decimal.NewFromInt(2)},
		{ID: "agua_15", Name: "Botella de agua 1,5L", Price: decimal.NewFromFloat(1.5)},
	}
}
