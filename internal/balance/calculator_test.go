package balance

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	members := []Member{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}

	tests := []struct {
		name         string
		members      []Member
		expenses     []Expense
		shares       []ExpenseShare
		settlements  []Settlement
		wantErr      error
		validateFunc func(t *testing.T, balances []Balance)
	}{
		{
			name:    "expense split equally with settlement",
			members: members,
			expenses: []Expense{
				{ID: 10, PayerID: 1, Amount: amt("300")},
			},
			shares: []ExpenseShare{
				{ExpenseID: 10, MemberID: 1, Amount: amt("100")},
				{ExpenseID: 10, MemberID: 2, Amount: amt("100")},
				{ExpenseID: 10, MemberID: 3, Amount: amt("100")},
			},
			settlements: []Settlement{
				{FromID: 2, ToID: 1, Amount: amt("100")},
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				// Alice paid 300, her own share is 100, and Bob already
				// repaid her 100, leaving the group owing her 100
				alice := balances[0]
				if !alice.TotalPaid.Equal(amt("300")) {
					t.Errorf("Alice total_paid = %v, want 300", alice.TotalPaid)
				}
				if !alice.TotalOwed.Equal(amt("200")) {
					t.Errorf("Alice total_owed = %v, want 200 (100 share + 100 received)", alice.TotalOwed)
				}
				if !alice.Net.Equal(amt("100")) {
					t.Errorf("Alice net = %v, want 100", alice.Net)
				}

				bob := balances[1]
				if !bob.TotalPaid.Equal(amt("100")) {
					t.Errorf("Bob total_paid = %v, want 100", bob.TotalPaid)
				}
				if !bob.Net.Equal(amt("0")) {
					t.Errorf("Bob net = %v, want 0", bob.Net)
				}

				carol := balances[2]
				if !carol.Net.Equal(amt("-100")) {
					t.Errorf("Carol net = %v, want -100", carol.Net)
				}
			},
		},
		{
			name:    "member with no activity has zero balance and still appears",
			members: members,
			expenses: []Expense{
				{ID: 10, PayerID: 1, Amount: amt("50")},
			},
			shares: []ExpenseShare{
				{ExpenseID: 10, MemberID: 1, Amount: amt("25")},
				{ExpenseID: 10, MemberID: 2, Amount: amt("25")},
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				if len(balances) != 3 {
					t.Fatalf("got %d balances, want 3", len(balances))
				}
				carol := balances[2]
				if carol.MemberID != 3 {
					t.Fatalf("balances[2].MemberID = %d, want 3", carol.MemberID)
				}
				if !carol.Net.IsZero() || !carol.TotalPaid.IsZero() || !carol.TotalOwed.IsZero() {
					t.Errorf("Carol balance = %+v, want all zero", carol)
				}
			},
		},
		{
			name:    "empty ledger yields all zeros",
			members: members,
			validateFunc: func(t *testing.T, balances []Balance) {
				for _, b := range balances {
					if !b.Net.IsZero() {
						t.Errorf("%s net = %v, want 0", b.MemberName, b.Net)
					}
				}
			},
		},
		{
			name:    "share referencing unknown member fails",
			members: members,
			expenses: []Expense{
				{ID: 10, PayerID: 1, Amount: amt("30")},
			},
			shares: []ExpenseShare{
				{ExpenseID: 10, MemberID: 99, Amount: amt("30")},
			},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "settlement referencing unknown member fails",
			members: members,
			settlements: []Settlement{
				{FromID: 1, ToID: 42, Amount: amt("10")},
			},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "expense paid by unknown member fails",
			members: members,
			expenses: []Expense{
				{ID: 10, PayerID: 7, Amount: amt("30")},
			},
			wantErr: ErrUnknownMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := Compute(tt.members, tt.expenses, tt.shares, tt.settlements)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Compute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, balances)
			}
		})
	}
}

// Accumulating many small fractional amounts must not drift the way binary
// floating point does (0.10 added 1000 times is exactly 100.00).
func TestComputeNoAccumulationDrift(t *testing.T) {
	members := []Member{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	var expenses []Expense
	var shares []ExpenseShare
	for i := 0; i < 1000; i++ {
		id := int64(i + 1)
		expenses = append(expenses, Expense{ID: id, PayerID: 1, Amount: amt("0.10")})
		shares = append(shares, ExpenseShare{ExpenseID: id, MemberID: 2, Amount: amt("0.10")})
	}

	balances, err := Compute(members, expenses, shares, nil)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	if !balances[0].TotalPaid.Equal(amt("100.00")) {
		t.Errorf("A total_paid = %v, want exactly 100.00", balances[0].TotalPaid)
	}
	if !balances[1].Net.Equal(amt("-100.00")) {
		t.Errorf("B net = %v, want exactly -100.00", balances[1].Net)
	}
}

func TestComputeIdempotent(t *testing.T) {
	members := []Member{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	expenses := []Expense{
		{ID: 1, PayerID: 1, Amount: amt("99.99")},
		{ID: 2, PayerID: 2, Amount: amt("0.03")},
	}
	shares := []ExpenseShare{
		{ExpenseID: 1, MemberID: 1, Amount: amt("33.33")},
		{ExpenseID: 1, MemberID: 2, Amount: amt("33.33")},
		{ExpenseID: 1, MemberID: 3, Amount: amt("33.33")},
		{ExpenseID: 2, MemberID: 1, Amount: amt("0.01")},
		{ExpenseID: 2, MemberID: 2, Amount: amt("0.01")},
		{ExpenseID: 2, MemberID: 3, Amount: amt("0.01")},
	}
	settlements := []Settlement{{FromID: 3, ToID: 1, Amount: amt("12.34")}}

	first, err := Compute(members, expenses, shares, settlements)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	second, err := Compute(members, expenses, shares, settlements)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	if fmt.Sprintf("%v", first) != fmt.Sprintf("%v", second) {
		t.Errorf("Compute() is not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestImbalance(t *testing.T) {
	balanced := []Balance{
		{MemberID: 1, Net: amt("50")},
		{MemberID: 2, Net: amt("-50")},
	}
	if got := Imbalance(balanced); !got.IsZero() {
		t.Errorf("Imbalance(balanced) = %v, want 0", got)
	}

	skewed := []Balance{
		{MemberID: 1, Net: amt("50")},
		{MemberID: 2, Net: amt("-49.50")},
	}
	if got := Imbalance(skewed); !got.Equal(amt("0.50")) {
		t.Errorf("Imbalance(skewed) = %v, want 0.50", got)
	}
}
