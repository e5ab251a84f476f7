package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func floatPtr(v float64) *float64 {
	return &v
}

func sumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		members      []Input
		reconcile    bool
		wantErr      error
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:    "divides evenly when exact",
			total:   amt("90"),
			members: []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(amt("30")) {
						t.Errorf("member %d share = %v, want 30", s.MemberID, s.Amount)
					}
				}
			},
		},
		{
			name:    "100 over 3 leaves the known rounding artifact",
			total:   amt("100"),
			members: []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(amt("33.33")) {
						t.Errorf("member %d share = %v, want 33.33", s.MemberID, s.Amount)
					}
				}
				if !sumShares(shares).Equal(amt("99.99")) {
					t.Errorf("sum = %v, want 99.99 (residual cent left unaccounted)", sumShares(shares))
				}
			},
		},
		{
			name:      "reconcile mode pushes the residual cent to the first member",
			total:     amt("100"),
			members:   []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}},
			reconcile: true,
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].Amount.Equal(amt("33.34")) {
					t.Errorf("first share = %v, want 33.34", shares[0].Amount)
				}
				if !sumShares(shares).Equal(amt("100")) {
					t.Errorf("sum = %v, want exactly 100", sumShares(shares))
				}
			},
		},
		{
			name:    "single member takes the whole amount",
			total:   amt("42.50"),
			members: []Input{{MemberID: 7}},
			validateFunc: func(t *testing.T, shares []Share) {
				if len(shares) != 1 || !shares[0].Amount.Equal(amt("42.50")) {
					t.Errorf("shares = %+v, want one share of 42.50", shares)
				}
			},
		},
		{
			name:    "no members fails",
			total:   amt("10"),
			members: nil,
			wantErr: ErrNoMembers,
		},
		{
			name:    "negative total fails",
			total:   amt("-5"),
			members: []Input{{MemberID: 1}},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &EqualStrategy{Reconcile: tt.reconcile}
			shares, err := strategy.Calculate(tt.total, tt.members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			tt.validateFunc(t, shares)
		})
	}
}

func TestExactStrategy(t *testing.T) {
	strategy := &ExactStrategy{}

	tests := []struct {
		name    string
		total   decimal.Decimal
		members []Input
		wantErr error
	}{
		{
			name:  "amounts that sum to total pass through",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Amount: floatPtr(40)},
				{MemberID: 2, Amount: floatPtr(35)},
				{MemberID: 3, Amount: floatPtr(25)},
			},
		},
		{
			name:  "amounts off by a cent are tolerated",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Amount: floatPtr(50)},
				{MemberID: 2, Amount: floatPtr(49.99)},
			},
		},
		{
			name:  "amounts that do not reconcile fail",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Amount: floatPtr(40)},
				{MemberID: 2, Amount: floatPtr(40)},
				{MemberID: 3, Amount: floatPtr(10)},
			},
			wantErr: ErrSharesMismatch,
		},
		{
			name:  "missing amount fails",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Amount: floatPtr(50)},
				{MemberID: 2},
			},
			wantErr: ErrMissingExactAmount,
		},
		{
			name:  "negative amount fails",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Amount: floatPtr(110)},
				{MemberID: 2, Amount: floatPtr(-10)},
			},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(tt.total, tt.members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if len(shares) != len(tt.members) {
				t.Errorf("got %d shares, want %d", len(shares), len(tt.members))
			}
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	strategy := &PercentageStrategy{}

	tests := []struct {
		name         string
		total        decimal.Decimal
		members      []Input
		wantErr      error
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:  "33/33/34 sums exactly to the total",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(33)},
				{MemberID: 2, Percentage: floatPtr(33)},
				{MemberID: 3, Percentage: floatPtr(34)},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				if !sumShares(shares).Equal(amt("100")) {
					t.Errorf("sum = %v, want exactly 100", sumShares(shares))
				}
				if !shares[2].Amount.Equal(amt("34")) {
					t.Errorf("largest share = %v, want 34", shares[2].Amount)
				}
			},
		},
		{
			name:  "rounding discrepancy lands on the largest share",
			total: amt("100.01"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(33.33)},
				{MemberID: 2, Percentage: floatPtr(33.33)},
				{MemberID: 3, Percentage: floatPtr(33.34)},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				if !sumShares(shares).Equal(amt("100.01")) {
					t.Errorf("sum = %v, want exactly 100.01", sumShares(shares))
				}
				// Members 1 and 2 keep their independently rounded 33.33;
				// member 3, having the largest raw share, absorbs the rest
				if !shares[0].Amount.Equal(amt("33.33")) || !shares[1].Amount.Equal(amt("33.33")) {
					t.Errorf("untouched shares = %v, %v, want 33.33 each", shares[0].Amount, shares[1].Amount)
				}
				if !shares[2].Amount.Equal(amt("33.35")) {
					t.Errorf("adjusted share = %v, want 33.35", shares[2].Amount)
				}
			},
		},
		{
			name:  "fifty-fifty",
			total: amt("81.50"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(50)},
				{MemberID: 2, Percentage: floatPtr(50)},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(amt("40.75")) {
						t.Errorf("member %d share = %v, want 40.75", s.MemberID, s.Amount)
					}
				}
			},
		},
		{
			name:  "percentages not summing to 100 fail",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(60)},
				{MemberID: 2, Percentage: floatPtr(30)},
			},
			wantErr: ErrInvalidPercentages,
		},
		{
			name:  "missing percentage fails",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(100)},
				{MemberID: 2},
			},
			wantErr: ErrMissingPercentage,
		},
		{
			name:  "percentage above 100 fails",
			total: amt("100"),
			members: []Input{
				{MemberID: 1, Percentage: floatPtr(150)},
				{MemberID: 2, Percentage: floatPtr(-50)},
			},
			wantErr: ErrPercentageOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(tt.total, tt.members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			tt.validateFunc(t, shares)
		})
	}
}

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name    string
		total   decimal.Decimal
		amounts []decimal.Decimal
		want    bool
	}{
		{"exact sum", amt("100"), []decimal.Decimal{amt("40"), amt("35"), amt("25")}, true},
		{"off by more than tolerance", amt("100"), []decimal.Decimal{amt("40"), amt("40"), amt("10")}, false},
		{"within tolerance", amt("100"), []decimal.Decimal{amt("33.33"), amt("33.33"), amt("33.33")}, true},
		{"no shares against zero total", amt("0"), nil, true},
		{"no shares against positive total", amt("10"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateShares(tt.total, tt.amounts); got != tt.want {
				t.Errorf("ValidateShares(%v, %v) = %v, want %v", tt.total, tt.amounts, got, tt.want)
			}
		})
	}
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for _, splitType := range []Type{TypeEqual, TypeExact, TypePercentage} {
		strategy, err := factory.Create(splitType)
		if err != nil {
			t.Fatalf("Create(%s) unexpected error: %v", splitType, err)
		}
		if strategy.Type() != splitType {
			t.Errorf("Create(%s).Type() = %s", splitType, strategy.Type())
		}
	}

	if _, err := factory.CreateFromString("SOMETHING_ELSE"); err == nil {
		t.Error("CreateFromString with unknown type should fail")
	}
}
