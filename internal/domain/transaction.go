package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          string          `json:"id"`
	TxnDate     string          `json:"txnDate"`
	OwnerID     string          `json:"ownerId"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

// TransactionRow is a transaction joined with owner and category names.
type TransactionRow struct {
	ID          string          `json:"id"`
	TxnDate     string          `json:"txnDate"`
	Owner       string          `json:"owner"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ActualSum is the summed non-deleted transaction amount for one
// (owner, category) pair in a month.
type ActualSum struct {
	OwnerID    string
	CategoryID string
	Actual     decimal.Decimal
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	// CreateBatch inserts all transactions in a single storage transaction.
	CreateBatch(transactions []*Transaction) error
	// GetAll lists non-deleted transactions, newest first. An empty month
	// means all months.
	GetAll(month string) ([]*TransactionRow, error)
	// Export lists non-deleted transactions in date-ascending order.
	Export(month string) ([]*TransactionRow, error)
	SoftDelete(id string) error
	SumByOwnerCategory(month string) ([]*ActualSum, error)
	// CountAll counts every stored row, soft-deleted included.
	CountAll() (int64, error)
}
