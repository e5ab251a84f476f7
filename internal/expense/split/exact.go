package split

import (
	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

// ExactStrategy lets the caller supply each member's share directly. No
// computation happens here, only validation that the amounts reconcile.
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks that every member has a non-negative amount and that the
// amounts sum to the total within tolerance
func (s *ExactStrategy) Validate(total decimal.Decimal, members []Input) error {
	if len(members) == 0 {
		return ErrNoMembers
	}
	if total.IsNegative() {
		return ErrNegativeAmount
	}

	sum := decimal.Zero
	for _, m := range members {
		if m.Amount == nil {
			return ErrMissingExactAmount
		}
		amount := money.FromFloat(*m.Amount)
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
		sum = sum.Add(amount)
	}

	if !money.Equalish(sum, total) {
		return ErrSharesMismatch
	}

	return nil
}

// Calculate returns the amounts supplied by the caller, rounded to 2 decimals
func (s *ExactStrategy) Calculate(total decimal.Decimal, members []Input) ([]Share, error) {
	if err := s.Validate(total, members); err != nil {
		return nil, err
	}

	shares := make([]Share, len(members))
	for i, m := range members {
		shares[i] = Share{MemberID: m.MemberID, Amount: money.FromFloat(*m.Amount)}
	}

	return shares, nil
}
