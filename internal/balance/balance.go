// Package balance derives per-member balances from a group's ledger and
// produces a minimal settlement plan. All functions are pure: they read
// nothing but their arguments and never touch the database.
package balance

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownMember is returned when an expense, share or settlement
// references a member that is not in the supplied roster. It signals an
// inconsistent snapshot from the caller, not a user mistake.
var ErrUnknownMember = errors.New("member not in roster")

// Member is a group participant
type Member struct {
	ID   int64
	Name string
}

// Expense is a shared cost entry, reduced to the fields balance math needs
type Expense struct {
	ID      int64
	PayerID int64
	Amount  decimal.Decimal
}

// ExpenseShare is one member's portion of an expense
type ExpenseShare struct {
	ExpenseID int64
	MemberID  int64
	Amount    decimal.Decimal
}

// Settlement is a recorded payment between two members
type Settlement struct {
	FromID int64
	ToID   int64
	Amount decimal.Decimal
}

// Balance is the derived position of one member within a group.
// Positive Net means the group owes the member money; negative means the
// member owes the group.
type Balance struct {
	MemberID   int64           `json:"member_id"`
	MemberName string          `json:"member_name"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	Net        decimal.Decimal `json:"net_balance"`
}

// Suggestion is a proposed payment that reduces outstanding debt. It becomes
// a Settlement only once a user confirms it.
type Suggestion struct {
	FromID   int64           `json:"from_member_id"`
	FromName string          `json:"from_member_name"`
	ToID     int64           `json:"to_member_id"`
	ToName   string          `json:"to_member_name"`
	Amount   decimal.Decimal `json:"amount"`
}
