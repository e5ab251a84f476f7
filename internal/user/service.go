package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/internal/balance"
	"github.com/akshat-jain/splitr/pkg/money"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// BalanceSource resolves the current balances of a group's members.
type BalanceSource interface {
	Balances(ctx context.Context, groupID int64) ([]balance.Balance, error)
}

// Service handles user business logic
type Service struct {
	repo     *Repository
	balances BalanceSource
}

// NewService creates a new user service with dependencies injected
func NewService(repo *Repository, balances BalanceSource) *Service {
	return &Service{repo: repo, balances: balances}
}

// Create creates a new user
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	// Check if email is already in use
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List retrieves all users with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing user
func (s *Service) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	// Check if user exists
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Summary aggregates the user's net position across every group they
// have joined. A positive group net means the user is owed money there.
func (s *Service) Summary(ctx context.Context, userID int64) (*SummaryResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	groups, err := s.repo.ListJoinedGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &SummaryResponse{
		UserID: userID,
		Groups: make([]GroupBalanceResponse, 0, len(groups)),
	}

	totalOwe := decimal.Zero
	totalGetBack := decimal.Zero

	for _, g := range groups {
		balances, err := s.balances.Balances(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balances for group %d: %w", g.ID, err)
		}

		net := decimal.Zero
		for _, b := range balances {
			if b.MemberID == userID {
				net = b.Net
				break
			}
		}

		if net.IsPositive() {
			totalGetBack = totalGetBack.Add(net)
		} else if net.IsNegative() {
			totalOwe = totalOwe.Add(net.Neg())
		}

		summary.Groups = append(summary.Groups, GroupBalanceResponse{
			GroupID:   g.ID,
			GroupName: g.Name,
			Net:       money.Float(net),
		})
	}

	summary.TotalOwe = money.Float(totalOwe)
	summary.TotalGetBack = money.Float(totalGetBack)
	summary.Net = money.Float(totalGetBack.Sub(totalOwe))

	return summary, nil
}
