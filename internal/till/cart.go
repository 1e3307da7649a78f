package till

import "github.com/shopspring/decimal"

// Cart is the in-progress working set of productID -> quantity. Entries are
// always positive: a decrement to zero removes the entry instead of storing
// it. The service serializes access, so the cart itself does no locking.
type Cart struct {
	quantities map[string]int
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{quantities: map[string]int{}}
}

// Add increments the quantity for a product, creating the entry at 1.
func (c *Cart) Add(productID string) {
	c.quantities[productID]++
}

// Decrement lowers the quantity by one and drops the entry when it would
// reach zero or below.
func (c *Cart) Decrement(productID string) {
	q := c.quantities[productID] - 1
	if q <= 0 {
		delete(c.quantities, productID)
		return
	}
	c.quantities[productID] = q
}

// Remove deletes the entry outright, whatever its quantity.
func (c *Cart) Remove(productID string) {
	delete(c.quantities, productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.quantities = map[string]int{}
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// Quantities returns a copy of the raw cart map, for snapshotting.
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.quantities))
	for id, q := range c.quantities {
		out[id] = q
	}
	return out
}

// Lines derives the priced line items in catalog order, skipping entries
// whose product is unknown to the catalog.
func (c *Cart) Lines(catalog *Catalog) []LineItem {
	lines := make([]LineItem, 0, len(c.quantities))
	for _, p := range catalog.products {
		q, ok := c.quantities[p.ID]
		if !ok {
			continue
		}
		lines = append(lines, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  q,
			UnitPrice: p.Price,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(q))),
		})
	}
	return lines
}

// Total sums the line totals of the current cart.
func (c *Cart) Total(catalog *Catalog) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines(catalog) {
		total = total.Add(l.LineTotal)
	}
	return total
}

// restore replaces the cart contents from a persisted snapshot, dropping
// non-positive quantities so the cart invariant holds even over bad data.
func (c *Cart) restore(quantities map[string]int) {
	c.quantities = map[string]int{}
	for id, q := range quantities {
		if q > 0 {
			c.quantities[id] = q
		}
	}
}
