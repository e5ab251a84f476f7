package split

import (
	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

var oneHundred = decimal.NewFromInt(100)

// PercentageStrategy divides the expense based on a percentage per member.
// Percentages must sum to 100 within tolerance. Per-member rounding can push
// the rounded sum a few cents off the total, so a single corrective
// adjustment lands on the member with the largest rounded share; the final
// shares always sum exactly to the total.
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks that every member has a percentage in range and that the
// percentages sum to 100 within tolerance
func (s *PercentageStrategy) Validate(total decimal.Decimal, members []Input) error {
	if len(members) == 0 {
		return ErrNoMembers
	}
	if total.IsNegative() {
		return ErrNegativeAmount
	}

	sum := decimal.Zero
	for _, m := range members {
		if m.Percentage == nil {
			return ErrMissingPercentage
		}
		pct := decimal.NewFromFloat(*m.Percentage)
		if pct.IsNegative() || pct.GreaterThan(oneHundred) {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(pct)
	}

	if !money.Equalish(sum, oneHundred) {
		return ErrInvalidPercentages
	}

	return nil
}

// Calculate divides the total amount based on each member's percentage
func (s *PercentageStrategy) Calculate(total decimal.Decimal, members []Input) ([]Share, error) {
	if err := s.Validate(total, members); err != nil {
		return nil, err
	}

	shares := make([]Share, len(members))
	largest := 0
	for i, m := range members {
		pct := decimal.NewFromFloat(*m.Percentage)
		amount := total.Mul(pct).Div(oneHundred).Round(2)
		shares[i] = Share{MemberID: m.MemberID, Amount: amount}
		if amount.GreaterThan(shares[largest].Amount) {
			largest = i
		}
	}

	// Absorb any rounding discrepancy into the largest share so the sum
	// equals the total exactly
	amounts := make([]decimal.Decimal, len(shares))
	for i, sh := range shares {
		amounts[i] = sh.Amount
	}
	difference := total.Sub(money.Sum(amounts))
	if !difference.IsZero() {
		shares[largest].Amount = money.Round(shares[largest].Amount.Add(difference))
	}

	return shares, nil
}
