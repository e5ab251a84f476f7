package settlement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/akshat-jain/splitr/internal/balance"
	"github.com/akshat-jain/splitr/pkg/money"
)

// Common errors
var (
	ErrCannotSettleSelf = errors.New("cannot record a settlement with yourself")
	ErrInvalidAmount    = errors.New("settlement amount must be greater than zero")
	ErrNotGroupMember   = errors.New("member does not belong to this group")
)

// Service handles settlement business logic
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

// NewService creates a new settlement service
func NewService(repo *Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Record persists a confirmed payment as a new settlement row. It verifies
// that both parties belong to the group so the ledger never references
// members outside it.
func (s *Service) Record(ctx context.Context, req *RecordSettlementRequest) (*Settlement, error) {
	if req.FromID == req.ToID {
		return nil, ErrCannotSettleSelf
	}

	amount := money.FromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	for _, memberID := range []int64{req.FromID, req.ToID} {
		isMember, err := s.repo.IsGroupMember(ctx, req.GroupID, memberID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotGroupMember
		}
	}

	created, err := s.repo.Create(ctx, &Settlement{
		GroupID: req.GroupID,
		FromID:  req.FromID,
		ToID:    req.ToID,
		Amount:  amount,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("settlement recorded",
		"settlement_id", created.ID,
		"group_id", created.GroupID,
		"from", created.FromID,
		"to", created.ToID,
		"amount", created.Amount,
	)

	return created, nil
}

// ListByGroupID retrieves settlements for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Balances recomputes every member's balance from a fresh ledger snapshot.
// Balances are derived views, never cached or stored.
func (s *Service) Balances(ctx context.Context, groupID int64) ([]balance.Balance, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := balance.Compute(snapshot.Members, snapshot.Expenses, snapshot.Shares, snapshot.Settlements)
	if err != nil {
		return nil, err
	}

	return balances, nil
}

// Suggestions computes the minimal payment plan that would settle the group.
// A snapshot whose nets do not sum to zero indicates an upstream defect; the
// plan is still returned best-effort and the leftover is logged.
func (s *Service) Suggestions(ctx context.Context, groupID int64) ([]balance.Suggestion, error) {
	balances, err := s.Balances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if imbalance := balance.Imbalance(balances); imbalance.Abs().GreaterThan(money.Tolerance) {
		s.logger.Warn("group ledger does not balance",
			"group_id", groupID,
			"imbalance", imbalance,
		)
	}

	return balance.Minimize(balances), nil
}
