package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

// party tracks one side of the matching with its remaining amount
type party struct {
	id        int64
	name      string
	remaining decimal.Decimal
}

// Minimize produces a settlement plan that clears every balance using a
// greedy largest-creditor / largest-debtor matching. Members within the 0.01
// tolerance band are already settled and excluded.
//
// The plan is deterministic: both sides are sorted descending by amount with
// ties keeping input order. When the input balances do not sum to zero the
// function still returns its best-effort plan and leaves a residual on one
// side; it never errors and never loops.
func Minimize(balances []Balance) []Suggestion {
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net.GreaterThan(money.Tolerance):
			creditors = append(creditors, party{id: b.MemberID, name: b.MemberName, remaining: b.Net})
		case b.Net.LessThan(money.Tolerance.Neg()):
			debtors = append(debtors, party{id: b.MemberID, name: b.MemberName, remaining: b.Net.Neg()})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})

	var suggestions []Suggestion
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := money.Min(creditor.remaining, debtor.remaining)

		suggestions = append(suggestions, Suggestion{
			FromID:   debtor.id,
			FromName: debtor.name,
			ToID:     creditor.id,
			ToName:   creditor.name,
			Amount:   money.Round(amount),
		})

		creditor.remaining = creditor.remaining.Sub(amount)
		debtor.remaining = debtor.remaining.Sub(amount)

		// Both cursors may advance in the same step when amounts tie
		if creditor.remaining.LessThan(money.Tolerance) {
			i++
		}
		if debtor.remaining.LessThan(money.Tolerance) {
			j++
		}
	}

	return suggestions
}
