package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akshat-jain/splitr/internal/balance"
)

// Repository handles settlement data persistence and ledger snapshot reads
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement row
func (r *Repository) Create(ctx context.Context, s *Settlement) (*Settlement, error) {
	query := `
		INSERT INTO settlements (group_id, from_user, to_user, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, from_user, to_user, amount, settled_at, created_at
	`

	created := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, s.GroupID, s.FromID, s.ToID, s.Amount).Scan(
		&created.ID,
		&created.GroupID,
		&created.FromID,
		&created.ToID,
		&created.Amount,
		&created.SettledAt,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return created, nil
}

// ListByGroupID retrieves settlements for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.group_id, s.from_user, s.to_user, s.amount, s.settled_at, s.created_at,
		       uf.username, ut.username
		FROM settlements s
		JOIN users uf ON s.from_user = uf.id
		JOIN users ut ON s.to_user = ut.id
		WHERE s.group_id = $1
		ORDER BY s.settled_at DESC, s.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.FromID,
			&s.ToID,
			&s.Amount,
			&s.SettledAt,
			&s.CreatedAt,
			&s.FromUsername,
			&s.ToUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, total, nil
}

// IsGroupMember reports whether the user has joined the group
func (r *Repository) IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// GetSnapshot reads the group's full ledger inside a single REPEATABLE READ
// transaction. Balances computed from this snapshot satisfy the conservation
// invariant even while other users keep writing to the ledger.
func (r *Repository) GetSnapshot(ctx context.Context, groupID int64) (*Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot := &Snapshot{}

	memberQuery := `
		SELECT u.id, u.username
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at, u.id
	`
	memberRows, err := tx.QueryContext(ctx, memberQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var m balance.Member
		if err := memberRows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		snapshot.Members = append(snapshot.Members, m)
	}
	if err := memberRows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}

	expenseQuery := `SELECT id, payer_id, amount FROM expenses WHERE group_id = $1 ORDER BY id`
	expenseRows, err := tx.QueryContext(ctx, expenseQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer expenseRows.Close()
	for expenseRows.Next() {
		var e balance.Expense
		if err := expenseRows.Scan(&e.ID, &e.PayerID, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		snapshot.Expenses = append(snapshot.Expenses, e)
	}
	if err := expenseRows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}

	shareQuery := `
		SELECT s.expense_id, s.member_id, s.amount
		FROM expense_shares s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY s.id
	`
	shareRows, err := tx.QueryContext(ctx, shareQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer shareRows.Close()
	for shareRows.Next() {
		var s balance.ExpenseShare
		if err := shareRows.Scan(&s.ExpenseID, &s.MemberID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		snapshot.Shares = append(snapshot.Shares, s)
	}
	if err := shareRows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	settlementQuery := `SELECT from_user, to_user, amount FROM settlements WHERE group_id = $1 ORDER BY id`
	settlementRows, err := tx.QueryContext(ctx, settlementQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %w", err)
	}
	defer settlementRows.Close()
	for settlementRows.Next() {
		var s balance.Settlement
		if err := settlementRows.Scan(&s.FromID, &s.ToID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		snapshot.Settlements = append(snapshot.Settlements, s)
	}
	if err := settlementRows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read settlements: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return snapshot, nil
}
