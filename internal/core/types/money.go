// Package types provides common type aliases and monetary helpers.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in Colombian pesos (COP) with full
// precision. Uses decimal.Decimal to avoid floating-point errors; rounding
// happens only at display time.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: prefer NewMoneyFromString for values coming from user input.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Percent is a whole-number percentage (19 means 19%, never 0.19).
// Tax rates, discounts and commission rates are all carried this way.
type Percent = decimal.Decimal

var hundred = decimal.NewFromInt(100)

// ApplyPercent returns amount × (pct/100).
func ApplyPercent(amount Money, pct Percent) Money {
	return amount.Mul(pct).Div(hundred)
}

// ApplyDiscount returns amount × (1 − pct/100).
func ApplyDiscount(amount Money, pct Percent) Money {
	return amount.Sub(ApplyPercent(amount, pct))
}

// RatioPercent returns part/total × 100, or zero when total is zero.
// The zero guard keeps margin and rate computations NaN-free on empty data.
func RatioPercent(part, total Money) Percent {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// CoerceMoney parses a possibly dirty monetary string, falling back to zero.
// Reports built over legacy data must not fail on a missing or malformed
// price; callers are expected to log the coercion.
func CoerceMoney(s string) (Money, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
