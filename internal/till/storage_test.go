package till

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func tempFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "till_session.json")
	return NewFileStorage(path, zaptest.NewLogger(t))
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := tempFileStorage(t)

	saved := &Snapshot{
		Cart:        map[string]int{"cerveza": 2, "tinto": 1},
		DisplayMode: ModeColor,
		Sales: []Sale{{
			ID:        "sale-1",
			Timestamp: time.Date(2026, 8, 15, 22, 30, 0, 0, time.UTC),
			Total:     decimal.NewFromInt(6),
			Paid:      decimal.NewFromInt(10),
			Change:    decimal.NewFromInt(4),
			Items: []SaleItem{
				{ProductID: "cerveza", Name: "Cerveza", Quantity: 2, UnitPrice: decimal.NewFromInt(2)},
				{ProductID: "tinto", Name: "Tinto", Quantity: 1, UnitPrice: decimal.NewFromInt(2)},
			},
			Origin: OriginDirect,
		}},
		Debts: []Debt{{
			ID:           "debt-1",
			Timestamp:    time.Date(2026, 8, 15, 23, 0, 0, 0, time.UTC),
			CustomerName: "Paco",
			Items: []SaleItem{
				{ProductID: "cubata", Name: "Cubata", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			},
			Total: decimal.NewFromInt(5),
		}},
	}

	if err := storage.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := storage.Load()
	assert.Equal(t, saved.Cart, loaded.Cart)
	assert.Equal(t, saved.DisplayMode, loaded.DisplayMode)
	assert.Len(t, loaded.Sales, 1)
	assert.Len(t, loaded.Debts, 1)
	assert.Equal(t, "sale-1", loaded.Sales[0].ID)
	assert.True(t, loaded.Sales[0].Total.Equal(saved.Sales[0].Total))
	assert.True(t, loaded.Sales[0].Change.Equal(saved.Sales[0].Change))
	assert.Equal(t, saved.Sales[0].Items, loaded.Sales[0].Items)
	assert.Equal(t, "Paco", loaded.Debts[0].CustomerName)
	assert.True(t, loaded.Debts[0].Total.Equal(saved.Debts[0].Total))
	assert.True(t, loaded.Sales[0].Timestamp.Equal(saved.Sales[0].Timestamp))
}

func TestFileStorageLoadMissingFile(t *testing.T) {
	storage := tempFileStorage(t)

	loaded := storage.Load()
	assert.Equal(t, DefaultSnapshot(), loaded)
}

func TestFileStorageLoadGarbage(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON at all", "}}}garbage{{{"},
		{"JSON but not an object", `[1, 2, 3]`},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := tempFileStorage(t)
			if err := os.WriteFile(storage.path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			loaded := storage.Load()
			assert.Equal(t, DefaultSnapshot(), loaded, "garbage must fall back to the default snapshot")
		})
	}
}

// A partially valid blob keeps what it can: each field falls back on its
// own, never dragging the rest of the session down with it.
func TestFileStorageLoadPartialShape(t *testing.T) {
	storage := tempFileStorage(t)
	blob := `{
		"cart": {"cerveza": 2, "stale": -3},
		"display_mode": "neon",
		"sales": {"not": "an array"},
		"debts": [{"id": "debt-1", "customer_name": "Paco", "total": "5", "items": []}]
	}`
	if err := os.WriteFile(storage.path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := storage.Load()
	assert.Equal(t, map[string]int{"cerveza": 2}, loaded.Cart, "non-positive cart entries dropped")
	assert.Equal(t, ModeDark, loaded.DisplayMode, "unknown display mode coerced to dark")
	assert.Empty(t, loaded.Sales, "mis-shaped sales fall back to empty")
	assert.Len(t, loaded.Debts, 1, "well-formed debts survive")
	assert.Equal(t, "Paco", loaded.Debts[0].CustomerName)
}

func TestFileStorageSaveOverwrites(t *testing.T) {
	storage := tempFileStorage(t)

	first := DefaultSnapshot()
	first.Cart["cerveza"] = 1
	if err := storage.Save(first); err != nil {
		t.Fatal(err)
	}

	second := DefaultSnapshot()
	second.DisplayMode = ModeColor
	if err := storage.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded := storage.Load()
	assert.Empty(t, loaded.Cart, "previous blob must be fully replaced")
	assert.Equal(t, ModeColor, loaded.DisplayMode)
}

func TestMemoryStorageRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	assert.Equal(t, DefaultSnapshot(), storage.Load())

	snapshot := DefaultSnapshot()
	snapshot.Cart["tinto"] = 3
	if err := storage.Save(snapshot); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, map[string]int{"tinto": 3}, storage.Load().Cart)
}
