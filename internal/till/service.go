package till

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidTender is returned when the tendered amount does not cover the
// cart total, or the cart is empty.
var ErrInvalidTender = errors.New("tendered amount below cart total")

// ErrInvalidDebt is returned when deferring an empty cart or a blank
// customer name.
var ErrInvalidDebt = errors.New("invalid debt")

// ErrUnknownProduct is returned when adding a product id the catalog does
// not know.
var ErrUnknownProduct = errors.New("unknown product")

// ErrInvalidMode is returned for a display mode other than dark or color.
var ErrInvalidMode = errors.New("invalid display mode")

// Service is the session container: it owns the cart, the sales history and
// the open debts, funnels every mutation through one lock, and writes the
// full snapshot after each change. It is constructed once at startup from
// whatever the storage gateway can recover.
type Service struct {
	mu          sync.Mutex
	catalog     *Catalog
	cart        *Cart
	keypad      *Keypad
	sales       []Sale
	debts       []Debt
	displayMode string
	ids         *IDSource
	storage     Storage
	logger      *zap.Logger
}

// NewService restores the session from storage and returns the service.
func NewService(catalog *Catalog, storage Storage, ids *IDSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if ids == nil {
		ids = NewIDSource()
	}

	snapshot := storage.Load()
	cart := NewCart()
	cart.restore(snapshot.Cart)

	return &Service{
		catalog:     catalog,
		cart:        cart,
		keypad:      NewKeypad(),
		sales:       snapshot.Sales,
		debts:       snapshot.Debts,
		displayMode: snapshot.DisplayMode,
		ids:         ids,
		storage:     storage,
		logger:      logger,
	}
}

// Catalog returns the read-only product list backing this session.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// AddToCart adds one unit of the given product.
func (s *Service) AddToCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Get(productID); !ok {
		return ErrUnknownProduct
	}
	s.cart.Add(productID)
	s.persistLocked()
	return nil
}

// DecrementInCart removes one unit; the line disappears at zero.
func (s *Service) DecrementInCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Decrement(productID)
	s.persistLocked()
}

// RemoveFromCart drops the whole line.
func (s *Service) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	s.persistLocked()
}

// ClearCart empties the cart.
func (s *Service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.persistLocked()
}

// CartLines returns the current priced lines in catalog order.
func (s *Service) CartLines() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Lines(s.catalog)
}

// CartTotal returns the current cart total.
func (s *Service) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Total(s.catalog)
}

// Checkout commits the cart as a direct Sale and clears it, atomically.
// It fails with ErrInvalidTender when the cart is empty or the tendered
// amount is below the total; on failure nothing changes.
func (s *Service) Checkout(tendered decimal.Decimal) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.checkoutLocked(tendered)
}

func (s *Service) checkoutLocked(tendered decimal.Decimal) (*Sale, error) {
	total := s.cart.Total(s.catalog)
	if !total.IsPositive() || tendered.LessThan(total) {
		return nil, ErrInvalidTender
	}

	sale := Sale{
		ID:        s.ids.NewID(),
		Timestamp: time.Now(),
		Total:     total,
		Paid:      tendered,
		Change:    tendered.Sub(total),
		Items:     s.snapshotItemsLocked(),
		Origin:    OriginDirect,
	}

	s.sales = append([]Sale{sale}, s.sales...)
	s.cart.Clear()
	s.persistLocked()

	s.logger.Info("sale completed",
		zap.String("sale_id", sale.ID),
		zap.String("total", sale.Total.String()),
		zap.String("paid", sale.Paid.String()),
		zap.String("change", sale.Change.String()),
	)
	return &sale, nil
}

// DeferDebt commits the cart as an open Debt for the named customer and
// clears it, atomically. ErrInvalidDebt on an empty cart or blank name.
func (s *Service) DeferDebt(customerName string) (*Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.cart.Total(s.catalog)
	name := strings.TrimSpace(customerName)
	if !total.IsPositive() || name == "" {
		return nil, ErrInvalidDebt
	}

	debt := Debt{
		ID:           s.ids.NewID(),
		Timestamp:    time.Now(),
		CustomerName: name,
		Items:        s.snapshotItemsLocked(),
		Total:        total,
	}

	s.debts = append([]Debt{debt}, s.debts...)
	s.cart.Clear()
	s.persistLocked()

	s.logger.Info("debt opened",
		zap.String("debt_id", debt.ID),
		zap.String("customer", debt.CustomerName),
		zap.String("total", debt.Total.String()),
	)
	return &debt, nil
}

// SettleDebt converts an open debt into a Sale with no change due. Both
// collections change under the same lock, so no caller can observe the
// debt gone without the sale present. A stale id yields ErrNotFound.
func (s *Service) SettleDebt(debtID string) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, d := range s.debts {
		if d.ID == debtID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	debt := s.debts[idx]

	sale := Sale{
		ID:           s.ids.NewID(),
		Timestamp:    time.Now(),
		Total:        debt.Total,
		Paid:         debt.Total,
		Change:       decimal.Zero,
		Items:        append([]SaleItem(nil), debt.Items...),
		CustomerName: debt.CustomerName,
		Origin:       OriginSettledDebt,
	}

	s.sales = append([]Sale{sale}, s.sales...)
	s.debts = append(s.debts[:idx], s.debts[idx+1:]...)
	s.persistLocked()

	s.logger.Info("debt settled",
		zap.String("debt_id", debt.ID),
		zap.String("sale_id", sale.ID),
		zap.String("customer", debt.CustomerName),
		zap.String("total", debt.Total.String()),
	)
	return &sale, nil
}

// DiscardDebt removes an open debt without payment. Discarding an absent
// id is a no-op.
func (s *Service) DiscardDebt(debtID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.debts {
		if d.ID == debtID {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			s.persistLocked()
			s.logger.Info("debt discarded", zap.String("debt_id", debtID))
			return
		}
	}
}

// ClearHistory wipes sales and debts. Explicit operator action only.
func (s *Service) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = []Sale{}
	s.debts = []Debt{}
	s.persistLocked()
	s.logger.Info("history cleared")
}

// Sales returns the sales history, newest first.
func (s *Service) Sales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Sale(nil), s.sales...)
}

// Debts returns the open debts.
func (s *Service) Debts() []Debt {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Debt(nil), s.debts...)
}

// TotalCollected sums the totals of every recorded sale.
func (s *Service) TotalCollected() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, sale := range s.sales {
		total = total.Add(sale.Total)
	}
	return total
}

// TotalOutstanding sums the totals of every open debt.
func (s *Service) TotalOutstanding() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, debt := range s.debts {
		total = total.Add(debt.Total)
	}
	return total
}

// DisplayMode returns the persisted screen preference.
func (s *Service) DisplayMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.displayMode
}

// SetDisplayMode stores the screen preference; only dark and color exist.
func (s *Service) SetDisplayMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != ModeDark && mode != ModeColor {
		return ErrInvalidMode
	}
	s.displayMode = mode
	s.persistLocked()
	return nil
}

// KeypadState is the cash dialog's derived view: the raw buffer, the parsed
// amount, and the change against the current cart total. Change goes
// negative while the operator has entered less than the total.
type KeypadState struct {
	Value  string          `json:"value"`
	Amount decimal.Decimal `json:"amount"`
	Change decimal.Decimal `json:"change"`
}

// Keypad buffer operations. The buffer is transient dialog state and is
// never persisted; it only feeds ConfirmPayment.

// PressKey applies one keystroke to the cash buffer.
func (s *Service) PressKey(key string) KeypadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keypad.Press(key)
	return s.keypadStateLocked()
}

// SetKeypadPreset replaces the buffer with a banknote shortcut value.
func (s *Service) SetKeypadPreset(amount string) KeypadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keypad.SetPreset(amount)
	return s.keypadStateLocked()
}

// KeypadBackspace drops the last keystroke.
func (s *Service) KeypadBackspace() KeypadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keypad.Backspace()
	return s.keypadStateLocked()
}

// KeypadClear empties the buffer, as happens when the dialog opens.
func (s *Service) KeypadClear() KeypadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keypad.Clear()
	return s.keypadStateLocked()
}

// Keypad returns the current buffer view.
func (s *Service) Keypad() KeypadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.keypadStateLocked()
}

// ConfirmPayment checks out the cart against the keypad buffer and resets
// the buffer on success. Underpayment fails with ErrInvalidTender and
// leaves cart and buffer untouched.
func (s *Service) ConfirmPayment() (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.checkoutLocked(s.keypad.Amount())
	if err != nil {
		return nil, err
	}
	s.keypad.Clear()
	return sale, nil
}

func (s *Service) keypadStateLocked() KeypadState {
	return KeypadState{
		Value:  s.keypad.Value(),
		Amount: s.keypad.Amount(),
		Change: s.keypad.Change(s.cart.Total(s.catalog)),
	}
}

// snapshotItemsLocked freezes the current cart lines into sale items.
func (s *Service) snapshotItemsLocked() []SaleItem {
	lines := s.cart.Lines(s.catalog)
	items := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SaleItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return items
}

// persistLocked writes the full snapshot. Save failures are logged and
// swallowed: losing a write never blocks the till.
func (s *Service) persistLocked() {
	snapshot := &Snapshot{
		Cart:        s.cart.Quantities(),
		DisplayMode: s.displayMode,
		Sales:       s.sales,
		Debts:       s.debts,
	}
	if err := s.storage.Save(snapshot); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
	}
}
