package balance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Compute aggregates a group's ledger into one Balance per member:
//
//   - each expense adds its amount to the payer's total_paid
//   - each share adds its amount to that member's total_owed
//   - each settlement adds its amount to the sender's total_paid and to the
//     receiver's total_owed, so the sender's debt clears and the receiver's
//     claim shrinks by the cash they already got
//   - net = total_paid - total_owed
//
// Settlements handled this way keep the conservation invariant: the nets of
// a consistent snapshot always sum to zero.
//
// Members with no ledger activity still appear with zero balances. Any
// reference to a member outside the roster fails with ErrUnknownMember; the
// caller handed over an inconsistent snapshot and silently dropping the row
// would corrupt every balance in the group.
func Compute(members []Member, expenses []Expense, shares []ExpenseShare, settlements []Settlement) ([]Balance, error) {
	byID := make(map[int64]*Balance, len(members))
	balances := make([]Balance, len(members))
	for i, m := range members {
		balances[i] = Balance{
			MemberID:   m.ID,
			MemberName: m.Name,
			TotalPaid:  decimal.Zero,
			TotalOwed:  decimal.Zero,
			Net:        decimal.Zero,
		}
		byID[m.ID] = &balances[i]
	}

	for _, e := range expenses {
		payer, ok := byID[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("expense %d payer %d: %w", e.ID, e.PayerID, ErrUnknownMember)
		}
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)
	}

	for _, s := range shares {
		member, ok := byID[s.MemberID]
		if !ok {
			return nil, fmt.Errorf("share of expense %d member %d: %w", s.ExpenseID, s.MemberID, ErrUnknownMember)
		}
		member.TotalOwed = member.TotalOwed.Add(s.Amount)
	}

	for _, s := range settlements {
		from, ok := byID[s.FromID]
		if !ok {
			return nil, fmt.Errorf("settlement from member %d: %w", s.FromID, ErrUnknownMember)
		}
		to, ok := byID[s.ToID]
		if !ok {
			return nil, fmt.Errorf("settlement to member %d: %w", s.ToID, ErrUnknownMember)
		}
		// The sender effectively paid more, clearing their debt; the
		// receiver's claim shrinks because they already got cash.
		from.TotalPaid = from.TotalPaid.Add(s.Amount)
		to.TotalOwed = to.TotalOwed.Add(s.Amount)
	}

	for i := range balances {
		balances[i].Net = balances[i].TotalPaid.Sub(balances[i].TotalOwed)
	}

	return balances, nil
}

// Imbalance returns the sum of all net balances. For a consistent snapshot
// this is within Tolerance of zero; anything larger indicates an upstream
// calculation defect the caller should log.
func Imbalance(balances []Balance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Net)
	}
	return total
}
