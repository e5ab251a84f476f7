package settlement

import (
	"github.com/akshat-jain/splitr/internal/balance"
	"github.com/akshat-jain/splitr/pkg/money"
)

// RecordSettlementRequest represents the request to record a payment that
// happened in the real world, typically confirming a suggestion
type RecordSettlementRequest struct {
	GroupID int64   `json:"group_id" validate:"required"`
	FromID  int64   `json:"from_member_id" validate:"required"`
	ToID    int64   `json:"to_member_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           int64   `json:"id"`
	GroupID      int64   `json:"group_id"`
	FromID       int64   `json:"from_member_id"`
	FromUsername string  `json:"from_username,omitempty"`
	ToID         int64   `json:"to_member_id"`
	ToUsername   string  `json:"to_username,omitempty"`
	Amount       float64 `json:"amount"`
	SettledAt    string  `json:"settled_at"`
}

// BalanceResponse represents one member's derived balance within a group
type BalanceResponse struct {
	MemberID   int64   `json:"member_id"`
	MemberName string  `json:"member_name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	NetBalance float64 `json:"net_balance"` // positive = gets back, negative = owes
}

// SuggestionResponse represents one proposed payment from the minimizer
type SuggestionResponse struct {
	FromID   int64   `json:"from_member_id"`
	FromName string  `json:"from_member_name"`
	ToID     int64   `json:"to_member_id"`
	ToName   string  `json:"to_member_name"`
	Amount   float64 `json:"amount"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromID:       s.FromID,
		FromUsername: s.FromUsername,
		ToID:         s.ToID,
		ToUsername:   s.ToUsername,
		Amount:       money.Float(s.Amount),
		SettledAt:    s.SettledAt.Format("2006-01-02T15:04:05Z"),
	}
}

// BalanceToResponse converts a derived balance to its DTO
func BalanceToResponse(b balance.Balance) *BalanceResponse {
	return &BalanceResponse{
		MemberID:   b.MemberID,
		MemberName: b.MemberName,
		TotalPaid:  money.Float(b.TotalPaid),
		TotalOwed:  money.Float(b.TotalOwed),
		NetBalance: money.Float(b.Net),
	}
}

// SuggestionToResponse converts a minimizer suggestion to its DTO
func SuggestionToResponse(s balance.Suggestion) *SuggestionResponse {
	return &SuggestionResponse{
		FromID:   s.FromID,
		FromName: s.FromName,
		ToID:     s.ToID,
		ToName:   s.ToName,
		Amount:   money.Float(s.Amount),
	}
}
