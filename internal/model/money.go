package model

import (
	"github.com/shopspring/decimal"
)

// Money is an amount that travels as a plain JSON number, matching what the
// UI sends. Decoding accepts numbers and quoted strings.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromInt returns n as Money.
func MoneyFromInt(n int64) Money {
	return Money{Decimal: decimal.NewFromInt(n)}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
