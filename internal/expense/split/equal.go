package split

import (
	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

// EqualStrategy divides the expense equally among all selected members.
//
// round(total/n, 2) can lose or gain fractional cents against the true total
// (100 / 3 gives three shares of 33.33, summing to 99.99). The default leaves
// that residual unaccounted; setting Reconcile adds it to the first member so
// the shares sum exactly to the total.
type EqualStrategy struct {
	Reconcile bool
}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total decimal.Decimal, members []Input) error {
	if len(members) == 0 {
		return ErrNoMembers
	}
	if total.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate divides the total amount evenly among all selected members
func (s *EqualStrategy) Calculate(total decimal.Decimal, members []Input) ([]Share, error) {
	if err := s.Validate(total, members); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(members)))
	perMember := total.Div(n).Round(2)

	shares := make([]Share, len(members))
	for i, m := range members {
		shares[i] = Share{MemberID: m.MemberID, Amount: perMember}
	}

	if s.Reconcile {
		residual := total.Sub(perMember.Mul(n))
		if !residual.IsZero() {
			shares[0].Amount = money.Round(shares[0].Amount.Add(residual))
		}
	}

	return shares, nil
}
