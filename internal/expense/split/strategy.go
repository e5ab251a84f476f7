package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akshat-jain/splitr/pkg/money"
)

// Type defines the type of split strategy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypeExact      Type = "EXACT"
	TypePercentage Type = "PERCENTAGE"
)

// Input represents a selected member in a split with optional values
type Input struct {
	MemberID   int64    `json:"member_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
}

// Share represents the calculated share for a single member.
// Every selected member gets a share, including the payer: the payer's own
// share counts toward what they owe, and their payment toward what they paid.
type Share struct {
	MemberID int64
	Amount   decimal.Decimal
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the share amounts for all selected members
	Calculate(total decimal.Decimal, members []Input) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(total decimal.Decimal, members []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

var (
	ErrNoMembers            = errors.New("at least one member is required")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrMissingExactAmount   = errors.New("exact amount required for all members")
	ErrMissingPercentage    = errors.New("percentage value required for all members")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrSharesMismatch       = errors.New("splits do not sum to total")
)

// ValidateShares reports whether the proposed share amounts reconcile to the
// expense total within the 0.01 tolerance. This runs as the last gate before
// an expense and its shares are persisted.
func ValidateShares(total decimal.Decimal, amounts []decimal.Decimal) bool {
	return money.Equalish(money.Sum(amounts), total)
}
