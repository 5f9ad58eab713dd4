// Package types provides common value types for the ledger.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; the same type carries
// weights (kg) and prices (per kg), which share the exactness requirement.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// NewMoneyFromInt creates a Money value from an integer amount.
func NewMoneyFromInt(n int64) Money {
	return decimal.NewFromInt(n)
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

// DivSafe divides num by den, returning zero when den is zero.
// KPI ratios are defined to be 0 (never an error or NaN) for empty periods.
func DivSafe(num, den Money) Money {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// RatioPercent returns num/den*100 with safe-division semantics.
func RatioPercent(num, den Money) Money {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimal.NewFromInt(100))
}

// ApplyWastePercent reduces a gross weight by the given waste percentage:
// net = gross * (1 - waste/100).
func ApplyWastePercent(gross, wastePercent Money) Money {
	hundred := decimal.NewFromInt(100)
	return gross.Mul(hundred.Sub(wastePercent)).Div(hundred)
}
