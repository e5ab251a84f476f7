package expense

import "github.com/akshat-jain/splitr/pkg/money"

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID     int64   `json:"group_id" validate:"required"`
	Description string  `json:"description" validate:"required,min=1,max=255"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	SplitType   string  `json:"split_type" validate:"required,oneof=EQUAL EXACT PERCENTAGE"`
	// Reconcile asks the equal split to fold the residual rounding cent back
	// into the first share so the shares sum exactly to the amount
	Reconcile    bool           `json:"reconcile,omitempty"`
	Participants []*Participant `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	GroupID       int64            `json:"group_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Amount        float64          `json:"amount"`
	SplitType     string           `json:"split_type"`
	Date          string           `json:"date"`
	CreatedAt     string           `json:"created_at"`
	Shares        []*ShareResponse `json:"shares,omitempty"`
}

// ShareResponse represents the response for a single share
type ShareResponse struct {
	ID             int64   `json:"id"`
	ExpenseID      int64   `json:"expense_id"`
	MemberID       int64   `json:"member_id"`
	MemberUsername string  `json:"member_username,omitempty"`
	Amount         float64 `json:"amount"`
}

// CategoryTotal is one slice of the group spending summary
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MemberPaidTotal is how much one member paid across the summarized window
type MemberPaidTotal struct {
	MemberID int64   `json:"member_id"`
	Username string  `json:"username,omitempty"`
	Amount   float64 `json:"amount"`
}

// SummaryResponse represents the group spending summary
type SummaryResponse struct {
	GroupID      int64             `json:"group_id"`
	Total        float64           `json:"total"`
	ExpenseCount int               `json:"expense_count"`
	ByCategory   []CategoryTotal   `json:"by_category"`
	ByPayer      []MemberPaidTotal `json:"by_payer"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Category:      e.Category,
		Amount:        money.Float(e.Amount),
		SplitType:     e.SplitType,
		Date:          e.Date.Format("2006-01-02T15:04:05Z"),
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Share model to a ShareResponse DTO
func (s *Share) ToResponse() *ShareResponse {
	return &ShareResponse{
		ID:             s.ID,
		ExpenseID:      s.ExpenseID,
		MemberID:       s.MemberID,
		MemberUsername: s.MemberUsername,
		Amount:         money.Float(s.Amount),
	}
}
