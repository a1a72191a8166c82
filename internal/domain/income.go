package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID        string          `json:"id"`
	Month     string          `json:"month"`
	OwnerID   string          `json:"ownerId"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IncomeRow is an income record joined with its owner's display name.
type IncomeRow struct {
	ID     string          `json:"id"`
	Month  string          `json:"month"`
	Owner  string          `json:"owner"`
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

type IncomeRepository interface {
	Create(income *Income) (*Income, error)
	// GetAll lists income rows, optionally filtered by month ("" for all).
	GetAll(month string) ([]*IncomeRow, error)
}
