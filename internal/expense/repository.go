package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithShares inserts an expense and all of its shares in one
// transaction. The ledger never contains an expense whose shares are missing
// or partial.
func (r *Repository) CreateWithShares(ctx context.Context, expense *Expense, shares []*Share) (*ExpenseWithShares, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (group_id, payer_id, description, category, amount, split_type, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, group_id, payer_id, description, category, amount, split_type, date, created_at
	`

	created := &Expense{}
	err = tx.QueryRowContext(ctx, expenseQuery,
		expense.GroupID,
		expense.PayerID,
		expense.Description,
		expense.Category,
		expense.Amount,
		expense.SplitType,
		expense.Date,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.PayerID,
		&created.Description,
		&created.Category,
		&created.Amount,
		&created.SplitType,
		&created.Date,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	shareQuery := `
		INSERT INTO expense_shares (expense_id, member_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, expense_id, member_id, amount
	`

	createdShares := make([]*Share, len(shares))
	for i, s := range shares {
		createdShare := &Share{}
		err := tx.QueryRowContext(ctx, shareQuery, created.ID, s.MemberID, s.Amount).Scan(
			&createdShare.ID,
			&createdShare.ExpenseID,
			&createdShare.MemberID,
			&createdShare.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create share: %w", err)
		}
		createdShares[i] = createdShare
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithShares{Expense: created, Shares: createdShares}, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.category, e.amount, e.split_type, e.date, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Category,
		&expense.Amount,
		&expense.SplitType,
		&expense.Date,
		&expense.CreatedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetShares retrieves all shares for an expense
func (r *Repository) GetShares(ctx context.Context, expenseID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.member_id, s.amount, u.username
		FROM expense_shares s
		JOIN users u ON s.member_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*Share
	for rows.Next() {
		share := &Share{}
		if err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.MemberID,
			&share.Amount,
			&share.MemberUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// ListByGroupID retrieves expenses for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.category, e.amount, e.split_type, e.date, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.date DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Category,
			&expense.Amount,
			&expense.SplitType,
			&expense.Date,
			&expense.CreatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListForSummary retrieves expenses for a group within an optional date
// window, oldest first
func (r *Repository) ListForSummary(ctx context.Context, groupID int64, from, to *time.Time) ([]*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.category, e.amount, e.split_type, e.date, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		  AND ($2::timestamptz IS NULL OR e.date >= $2)
		  AND ($3::timestamptz IS NULL OR e.date <= $3)
		ORDER BY e.date
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for summary: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Category,
			&expense.Amount,
			&expense.SplitType,
			&expense.Date,
			&expense.CreatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// Delete removes an expense; its shares go with it via ON DELETE CASCADE
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
