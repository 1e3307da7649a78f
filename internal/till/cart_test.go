package till

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartAddAndDecrement(t *testing.T) {
	c := NewCart()

	c.Add("cerveza")
	c.Add("cerveza")
	c.Add("tinto")
	assert.Equal(t, map[string]int{"cerveza": 2, "tinto": 1}, c.Quantities())

	c.Decrement("cerveza")
	assert.Equal(t, map[string]int{"cerveza": 1, "tinto": 1}, c.Quantities())

	// Decrementing to zero removes the entry instead of storing it.
	c.Decrement("tinto")
	assert.Equal(t, map[string]int{"cerveza": 1}, c.Quantities())

	// Decrementing an absent entry never creates a negative one.
	c.Decrement("tinto")
	assert.Equal(t, map[string]int{"cerveza": 1}, c.Quantities())
}

func TestCartRemoveAndClear(t *testing.T) {
	c := NewCart()
	c.Add("cubata")
	c.Add("cubata")
	c.Add("refresco")

	c.Remove("cubata")
	assert.Equal(t, map[string]int{"refresco": 1}, c.Quantities())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Quantities())
}

func TestCartLinesFollowCatalogOrder(t *testing.T) {
	catalog := NewCatalog(DefaultProducts())
	c := NewCart()
	c.Add("agua_15")
	c.Add("cerveza")
	c.Add("cerveza")

	lines := c.Lines(catalog)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	assert.Equal(t, "cerveza", lines[0].ProductID, "lines must come out in catalog order")
	assert.Equal(t, "agua_15", lines[1].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].LineTotal.Equal(decimal.NewFromInt(4)), "2 x 2.00 = 4.00")
}

func TestCartUnknownProductsAreSkippedInLines(t *testing.T) {
	catalog := NewCatalog(DefaultProducts())
	c := NewCart()
	c.restore(map[string]int{"cerveza": 1, "discontinued": 3})

	lines := c.Lines(catalog)
	assert.Len(t, lines, 1)
	assert.True(t, c.Total(catalog).Equal(decimal.NewFromInt(2)))
}

// TestCartInvariantUnderRandomOps drives a random add/decrement/remove
// sequence and checks that no stored quantity ever drops to zero or below
// and the derived total always matches the sum over the lines.
func TestCartInvariantUnderRandomOps(t *testing.T) {
	catalog := NewCatalog(DefaultProducts())
	products := catalog.Products()
	rng := rand.New(rand.NewSource(42))

	c := NewCart()
	for i := 0; i < 5000; i++ {
		id := products[rng.Intn(len(products))].ID
		switch rng.Intn(4) {
		case 0, 1:
			c.Add(id)
		case 2:
			c.Decrement(id)
		case 3:
			c.Remove(id)
		}

		for pid, q := range c.Quantities() {
			if q <= 0 {
				t.Fatalf("op %d: product %s stored with quantity %d", i, pid, q)
			}
		}

		want := decimal.Zero
		for _, l := range c.Lines(catalog) {
			want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		if got := c.Total(catalog); !got.Equal(want) {
			t.Fatalf("op %d: total %s does not match line sum %s", i, got, want)
		}
	}
}
