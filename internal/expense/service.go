package expense

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/internal/expense/split"
	"github.com/akshat-jain/splitr/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	logger       *slog.Logger
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		logger:       logger,
	}
}

// Create builds the shares with the requested split strategy, validates that
// they reconcile to the total, and persists expense + shares atomically. The
// reconciliation gate is the last line of defense against a corrupted
// ledger: nothing reaches the database without it.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	amount := money.FromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var strategy split.Strategy
	var err error
	if split.Type(req.SplitType) == split.TypeEqual {
		strategy = &split.EqualStrategy{Reconcile: req.Reconcile}
	} else {
		strategy, err = s.splitFactory.CreateFromString(req.SplitType)
		if err != nil {
			return nil, err
		}
	}

	inputs := make([]split.Input, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitInput()
	}

	calculated, err := strategy.Calculate(amount, inputs)
	if err != nil {
		return nil, err
	}

	// The unreconciled equal split may leave a residual cent; that is inside
	// tolerance and passes. Anything further off is rejected here.
	amounts := make([]decimal.Decimal, len(calculated))
	for i, c := range calculated {
		amounts[i] = c.Amount
	}
	if !split.ValidateShares(amount, amounts) {
		return nil, split.ErrSharesMismatch
	}

	date := time.Now().UTC()
	category := req.Category
	if category == "" {
		category = "Other"
	}

	shares := make([]*Share, len(calculated))
	for i, c := range calculated {
		shares[i] = &Share{MemberID: c.MemberID, Amount: c.Amount}
	}

	created, err := s.repo.CreateWithShares(ctx, &Expense{
		GroupID:     req.GroupID,
		PayerID:     payerID,
		Description: req.Description,
		Category:    category,
		Amount:      amount,
		SplitType:   req.SplitType,
		Date:        date,
	}, shares)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("expense created",
		"expense_id", created.Expense.ID,
		"group_id", created.Expense.GroupID,
		"amount", created.Expense.Amount,
		"shares", len(created.Shares),
	)

	return created, nil
}

// GetByID retrieves an expense with its shares
func (s *Service) GetByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetShares(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

// ListByGroupID retrieves expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Summary aggregates a group's spending per category and per payer over an
// optional date window
func (s *Service) Summary(ctx context.Context, groupID int64, from, to *time.Time) (*SummaryResponse, error) {
	expenses, err := s.repo.ListForSummary(ctx, groupID, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	byPayer := make(map[int64]decimal.Decimal)
	payerNames := make(map[int64]string)

	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		byPayer[e.PayerID] = byPayer[e.PayerID].Add(e.Amount)
		payerNames[e.PayerID] = e.PayerUsername
	}

	summary := &SummaryResponse{
		GroupID:      groupID,
		Total:        money.Float(total),
		ExpenseCount: len(expenses),
	}

	for category, amount := range byCategory {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{
			Category: category,
			Amount:   money.Float(amount),
		})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Amount != summary.ByCategory[j].Amount {
			return summary.ByCategory[i].Amount > summary.ByCategory[j].Amount
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	for payerID, amount := range byPayer {
		summary.ByPayer = append(summary.ByPayer, MemberPaidTotal{
			MemberID: payerID,
			Username: payerNames[payerID],
			Amount:   money.Float(amount),
		})
	}
	sort.Slice(summary.ByPayer, func(i, j int) bool {
		if summary.ByPayer[i].Amount != summary.ByPayer[j].Amount {
			return summary.ByPayer[i].Amount > summary.ByPayer[j].Amount
		}
		return summary.ByPayer[i].MemberID < summary.ByPayer[j].MemberID
	})

	return summary, nil
}

// Delete deletes an expense; only the payer may do so
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PayerID != userID {
		return ErrNotPayer
	}

	return s.repo.Delete(ctx, id)
}
