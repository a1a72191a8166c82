package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a planned amount for one (month, owner, category) key.
type Budget struct {
	ID            string          `json:"id"`
	Month         string          `json:"month"`
	OwnerID       string          `json:"ownerId"`
	CategoryID    string          `json:"categoryId"`
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PlannedVsActualRow is one cell of the owners x active-categories grid.
// Pairs with neither a budget nor transactions still appear as zero rows.
type PlannedVsActualRow struct {
	Owner    string          `json:"owner"`
	Category string          `json:"category"`
	Planned  decimal.Decimal `json:"planned"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
}

type BudgetRepository interface {
	// Upsert inserts or replaces the budget for (month, owner, category).
	Upsert(budget *Budget) error
	GetForMonth(month string) ([]*Budget, error)
}
