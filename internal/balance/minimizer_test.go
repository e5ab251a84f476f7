package balance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

// applyPlan replays suggestions against the balances and returns the
// remaining net per member. Used as the conservation oracle.
func applyPlan(balances []Balance, plan []Suggestion) map[int64]decimal.Decimal {
	remaining := make(map[int64]decimal.Decimal, len(balances))
	for _, b := range balances {
		remaining[b.MemberID] = b.Net
	}
	for _, s := range plan {
		remaining[s.FromID] = remaining[s.FromID].Add(s.Amount)
		remaining[s.ToID] = remaining[s.ToID].Sub(s.Amount)
	}
	return remaining
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		name         string
		balances     []Balance
		validateFunc func(t *testing.T, plan []Suggestion)
	}{
		{
			name: "single debtor pays single creditor",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Net: amt("100")},
				{MemberID: 2, MemberName: "Bob", Net: amt("0")},
				{MemberID: 3, MemberName: "Carol", Net: amt("-100")},
			},
			validateFunc: func(t *testing.T, plan []Suggestion) {
				if len(plan) != 1 {
					t.Fatalf("got %d suggestions, want 1", len(plan))
				}
				s := plan[0]
				if s.FromID != 3 || s.ToID != 1 || !s.Amount.Equal(amt("100")) {
					t.Errorf("suggestion = %+v, want Carol pays Alice 100", s)
				}
			},
		},
		{
			name: "largest debtor matched with largest creditor first",
			balances: []Balance{
				{MemberID: 1, MemberName: "A", Net: amt("70")},
				{MemberID: 2, MemberName: "B", Net: amt("30")},
				{MemberID: 3, MemberName: "C", Net: amt("-60")},
				{MemberID: 4, MemberName: "D", Net: amt("-40")},
			},
			validateFunc: func(t *testing.T, plan []Suggestion) {
				if len(plan) != 3 {
					t.Fatalf("got %d suggestions, want 3", len(plan))
				}
				first := plan[0]
				if first.FromID != 3 || first.ToID != 1 || !first.Amount.Equal(amt("60")) {
					t.Errorf("plan[0] = %+v, want C pays A 60", first)
				}
				second := plan[1]
				if second.FromID != 4 || second.ToID != 1 || !second.Amount.Equal(amt("10")) {
					t.Errorf("plan[1] = %+v, want D pays A 10", second)
				}
				third := plan[2]
				if third.FromID != 4 || third.ToID != 2 || !third.Amount.Equal(amt("30")) {
					t.Errorf("plan[2] = %+v, want D pays B 30", third)
				}
			},
		},
		{
			name: "exact tie advances both cursors in one step",
			balances: []Balance{
				{MemberID: 1, MemberName: "A", Net: amt("50")},
				{MemberID: 2, MemberName: "B", Net: amt("50")},
				{MemberID: 3, MemberName: "C", Net: amt("-50")},
				{MemberID: 4, MemberName: "D", Net: amt("-50")},
			},
			validateFunc: func(t *testing.T, plan []Suggestion) {
				if len(plan) != 2 {
					t.Fatalf("got %d suggestions, want 2", len(plan))
				}
				// Ties keep input order on both sides
				if plan[0].FromID != 3 || plan[0].ToID != 1 {
					t.Errorf("plan[0] = %+v, want C pays A", plan[0])
				}
				if plan[1].FromID != 4 || plan[1].ToID != 2 {
					t.Errorf("plan[1] = %+v, want D pays B", plan[1])
				}
			},
		},
		{
			name: "members inside the tolerance band are excluded",
			balances: []Balance{
				{MemberID: 1, MemberName: "A", Net: amt("0.01")},
				{MemberID: 2, MemberName: "B", Net: amt("-0.01")},
				{MemberID: 3, MemberName: "C", Net: amt("0")},
			},
			validateFunc: func(t *testing.T, plan []Suggestion) {
				if len(plan) != 0 {
					t.Errorf("got %d suggestions, want none for settled group", len(plan))
				}
			},
		},
		{
			name:     "no balances yields no plan",
			balances: nil,
			validateFunc: func(t *testing.T, plan []Suggestion) {
				if len(plan) != 0 {
					t.Errorf("got %d suggestions, want 0", len(plan))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Minimize(tt.balances)
			tt.validateFunc(t, plan)
		})
	}
}

// For balanced inputs the plan must drive every member's net to within
// tolerance of zero, using at most creditors + debtors - 1 transfers.
func TestMinimizeConservationAndBound(t *testing.T) {
	cases := [][]Balance{
		{
			{MemberID: 1, Net: amt("200")},
			{MemberID: 2, Net: amt("-150")},
			{MemberID: 3, Net: amt("-50")},
		},
		{
			{MemberID: 1, Net: amt("33.34")},
			{MemberID: 2, Net: amt("33.33")},
			{MemberID: 3, Net: amt("-66.67")},
		},
		{
			{MemberID: 1, Net: amt("0.05")},
			{MemberID: 2, Net: amt("12.40")},
			{MemberID: 3, Net: amt("-7.45")},
			{MemberID: 4, Net: amt("-5.00")},
			{MemberID: 5, Net: amt("0")},
		},
	}

	for _, balances := range cases {
		plan := Minimize(balances)

		creditors, debtors := 0, 0
		for _, b := range balances {
			if b.Net.GreaterThan(money.Tolerance) {
				creditors++
			} else if b.Net.LessThan(money.Tolerance.Neg()) {
				debtors++
			}
		}
		if bound := creditors + debtors - 1; len(plan) > bound {
			t.Errorf("plan has %d transfers, want at most %d", len(plan), bound)
		}

		for memberID, net := range applyPlan(balances, plan) {
			if net.Abs().GreaterThan(money.Tolerance) {
				t.Errorf("member %d left with net %v after plan %v", memberID, net, plan)
			}
		}
	}
}

// An unbalanced input (caller bug) must terminate with a best-effort plan
// and a residual, never loop or panic.
func TestMinimizeResidualImbalance(t *testing.T) {
	balances := []Balance{
		{MemberID: 1, MemberName: "A", Net: amt("100")},
		{MemberID: 2, MemberName: "B", Net: amt("-40")},
	}

	plan := Minimize(balances)
	if len(plan) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(plan))
	}
	if !plan[0].Amount.Equal(amt("40")) {
		t.Errorf("suggestion amount = %v, want 40", plan[0].Amount)
	}

	remaining := applyPlan(balances, plan)
	if !remaining[1].Equal(amt("60")) {
		t.Errorf("creditor residual = %v, want 60", remaining[1])
	}
}

func TestMinimizeDeterministic(t *testing.T) {
	balances := []Balance{
		{MemberID: 1, MemberName: "A", Net: amt("25")},
		{MemberID: 2, MemberName: "B", Net: amt("25")},
		{MemberID: 3, MemberName: "C", Net: amt("-25")},
		{MemberID: 4, MemberName: "D", Net: amt("-25")},
	}

	first := Minimize(balances)
	second := Minimize(balances)

	if len(first) != len(second) {
		t.Fatalf("plan lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].FromID != second[i].FromID ||
			first[i].ToID != second[i].ToID ||
			!first[i].Amount.Equal(second[i].Amount) {
			t.Errorf("plan[%d] differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
