package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/internal/balance"
)

// Settlement represents a recorded real-world payment between two members of
// a group. Settlement rows are append-only: they are never edited or
// reversed, a correction is a new offsetting row.
type Settlement struct {
	ID        int64           `json:"id"`
	GroupID   int64           `json:"group_id"`
	FromID    int64           `json:"from_member_id"`
	ToID      int64           `json:"to_member_id"`
	Amount    decimal.Decimal `json:"amount"`
	SettledAt time.Time       `json:"settled_at"`
	CreatedAt time.Time       `json:"created_at"`

	// Populated via JOIN
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}

// Snapshot is one consistent read of a group's ledger: the exact inputs the
// balance calculator needs, fetched inside a single transaction so a
// settlement recorded mid-read cannot skew the result.
type Snapshot struct {
	Members     []balance.Member
	Expenses    []balance.Expense
	Shares      []balance.ExpenseShare
	Settlements []balance.Settlement
}
