package till

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Keypad is the cash-entry buffer behind the checkout dialog. It accepts
// digit keys, a single decimal separator, a "00" convenience key and fixed
// banknote presets, and parses fail-soft: anything unparseable is zero.
type Keypad struct {
	buffer string
}

// NewKeypad returns an empty keypad buffer.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press handles one keystroke: a digit "0"-"9", ".", or "00".
func (k *Keypad) Press(key string) {
	switch key {
	case ".":
		if k.buffer == "" {
			k.buffer = "0."
			return
		}
		if strings.Contains(k.buffer, ".") {
			return
		}
		k.buffer += "."
	case "00":
		if k.buffer == "" {
			k.buffer = "0"
			return
		}
		k.buffer += "00"
	default:
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return
		}
		if k.buffer == "0" {
			k.buffer = key
			return
		}
		k.buffer += key
	}
}

// SetPreset replaces the buffer wholesale, for banknote shortcut buttons.
func (k *Keypad) SetPreset(amount string) {
	k.buffer = amount
}

// Backspace drops the last character; the buffer may become empty.
func (k *Keypad) Backspace() {
	if k.buffer != "" {
		k.buffer = k.buffer[:len(k.buffer)-1]
	}
}

// Clear empties the buffer.
func (k *Keypad) Clear() {
	k.buffer = ""
}

// Value returns the raw buffer for display.
func (k *Keypad) Value() string {
	return k.buffer
}

// Amount parses the buffer as a decimal amount. A decimal comma is accepted
// as a separator, and an empty or unparseable buffer yields zero.
func (k *Keypad) Amount() decimal.Decimal {
	s := strings.ReplaceAll(k.buffer, ",", ".")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Change is the tendered amount minus the given total. It goes negative
// while the operator has entered less than the total.
func (k *Keypad) Change(total decimal.Decimal) decimal.Decimal {
	return k.Amount().Sub(total)
}
