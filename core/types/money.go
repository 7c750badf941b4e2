// Package types - Money and resolution result types
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Amount is an optional monetary amount. The zero value is the unknown
// amount. An unknown amount poisons every sum it participates in,
// which is how a failed leaf resolution propagates to booking totals.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// NewAmount creates a known amount
func NewAmount(v decimal.Decimal) Amount {
	return Amount{value: v, valid: true}
}

// AmountFromFloat creates a known amount from a float
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// AmountFromInt creates a known amount from an integer
func AmountFromInt(n int64) Amount {
	return NewAmount(decimal.NewFromInt(n))
}

// NoAmount returns the unknown amount
func NoAmount() Amount {
	return Amount{}
}

// Valid reports whether the amount is known
func (a Amount) Valid() bool {
	return a.valid
}

// Decimal returns the underlying value, zero when unknown
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Add returns a+b, unknown when either side is unknown
func (a Amount) Add(b Amount) Amount {
	if !a.valid || !b.valid {
		return NoAmount()
	}
	return NewAmount(a.value.Add(b.value))
}

// Mul returns a scaled by m, unknown when a is unknown
func (a Amount) Mul(m decimal.Decimal) Amount {
	if !a.valid {
		return NoAmount()
	}
	return NewAmount(a.value.Mul(m))
}

// Div returns a divided by m, unknown when a is unknown
func (a Amount) Div(m decimal.Decimal) Amount {
	if !a.valid || m.IsZero() {
		return NoAmount()
	}
	return NewAmount(a.value.Div(m))
}

// Round returns the amount rounded to the given number of decimals
func (a Amount) Round(places int32) Amount {
	if !a.valid {
		return NoAmount()
	}
	return NewAmount(a.value.Round(places))
}

// Equal reports value equality; two unknown amounts are equal
func (a Amount) Equal(b Amount) bool {
	if a.valid != b.valid {
		return false
	}
	if !a.valid {
		return true
	}
	return a.value.Equal(b.value)
}

// String returns the decimal text, or "-" when unknown
func (a Amount) String() string {
	if !a.valid {
		return "-"
	}
	return a.value.String()
}

// MarshalJSON encodes the amount as a JSON number, or null when unknown
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return a.value.MarshalJSON()
}

// UnmarshalJSON decodes a JSON number or null
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = NoAmount()
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}

// Resolution is the outcome of one amount resolution: either a known
// amount, or an unknown amount plus a human-readable message naming
// the first thing that went wrong. Failures are data, never panics.
type Resolution struct {
	// Amount is the resolved amount, unknown on failure
	Amount Amount `json:"amount"`

	// Message explains a failure; empty on success
	Message string `json:"message,omitempty"`
}

// Resolved creates a successful resolution
func Resolved(v decimal.Decimal) Resolution {
	return Resolution{Amount: NewAmount(v)}
}

// ResolvedAmount creates a resolution carrying a stored amount as-is.
// Used for manual overrides, where the stored value is authoritative
// even when it is unknown.
func ResolvedAmount(a Amount) Resolution {
	return Resolution{Amount: a}
}

// Unresolved creates a failed resolution
func Unresolved(message string) Resolution {
	return Resolution{Message: message}
}

// Failed reports whether the resolution carries no amount
func (r Resolution) Failed() bool {
	return !r.Amount.Valid()
}
