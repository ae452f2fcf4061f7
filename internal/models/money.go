package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact currency amount stored in integer cents.
// It is the only representation used for balance arithmetic; decimals
// appear only when parsing input and formatting output.
type Money struct {
	Cents int64
}

// FromCents wraps a cent count.
func FromCents(cents int64) Money {
	return Money{Cents: cents}
}

// FromDecimal converts a decimal amount to Money, rounding half away
// from zero to two decimal places first.
func FromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Round(2).Shift(2).IntPart()}
}

// ParseAmount parses a decimal string into Money. It accepts both dot
// ("12.34") and comma ("12,34") separators and rounds half away from zero
// on the third decimal place. Sign is preserved; callers that require a
// positive amount must validate it themselves.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount as an exact two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
func (m Money) Neg() Money        { return Money{Cents: -m.Cents} }

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsPositive() bool { return m.Cents > 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a plain two-decimal number, e.g. 12.34.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		return ErrInvalidAmount
	}
	v, err := ParseAmount(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
