package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/internal/expense/split"
)

// Expense represents a shared cost entry. Expenses are immutable once
// created; there is no update path, only deletion.
type Expense struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	PayerID     int64           `json:"payer_id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   string          `json:"split_type"` // EQUAL, EXACT, PERCENTAGE
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Share represents one member's portion of an expense. Shares are created
// atomically with their parent expense and never mutated; together they sum
// to the expense amount within the fixed tolerance.
type Share struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	MemberID  int64           `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`

	// Populated via JOIN
	MemberUsername string `json:"member_username,omitempty"`
}

// ExpenseWithShares combines an expense with its shares
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*Share
}

// Participant is a selected member when creating an expense
type Participant struct {
	MemberID   int64    `json:"member_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
}

// ToSplitInput converts to the split package's input type
func (p *Participant) ToSplitInput() split.Input {
	return split.Input{
		MemberID:   p.MemberID,
		Percentage: p.Percentage,
		Amount:     p.Amount,
	}
}
