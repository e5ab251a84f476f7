package money

import "github.com/shopspring/decimal"

// Tolerance is the maximum difference (0.01 currency units) two amounts can
// have and still be considered equal. It absorbs the rounding error that
// per-member share rounding introduces.
var Tolerance = decimal.New(1, -2)

// FromFloat converts a float received at the API boundary into a fixed-point
// amount with 2 decimal places.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Float converts a fixed-point amount back into the float representation used
// in JSON responses.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Round rounds an amount to 2 decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Equalish reports whether two amounts are equal within Tolerance.
func Equalish(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Sum adds a list of amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
