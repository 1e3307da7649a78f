package till

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item from the catalog. Products are defined at
// startup and never persisted; snapshots carry their own price copies.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineItem is a derived view of one cart entry priced against the catalog.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleItem is a frozen copy of a line at the moment of sale, decoupled from
// the live catalog so later price changes never rewrite history.
type SaleItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Sale origins.
const (
	OriginDirect      = "direct"
	OriginSettledDebt = "settled-debt"
)

// Sale is an immutable, committed transaction record.
type Sale struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Change       decimal.Decimal `json:"change"`
	Items        []SaleItem      `json:"items"`
	CustomerName string          `json:"customer_name,omitempty"`
	Origin       string          `json:"origin"`
}

// Debt is an open tab owed by a named customer. It is removed either on
// settlement, which produces an equivalent Sale, or on explicit discard.
type Debt struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	CustomerName string          `json:"customer_name"`
	Items        []SaleItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

// Display modes for the operator screen preference.
const (
	ModeDark  = "dark"
	ModeColor = "color"
)

// Snapshot is the single unit of durability: the whole session, written
// and read as one blob.
type Snapshot struct {
	Cart        map[string]int `json:"cart"`
	DisplayMode string         `json:"display_mode"`
	Sales       []Sale         `json:"sales"`
	Debts       []Debt         `json:"debts"`
}

// DefaultSnapshot is what Load falls back to when nothing usable is stored.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Cart:        map[string]int{},
		DisplayMode: ModeDark,
		Sales:       []Sale{},
		Debts:       []Debt{},
	}
}
