package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeLoan       AccountType = "LOAN"
)

type Account struct {
	ID           string           `json:"id"`
	OwnerID      string           `json:"ownerId"`
	Name         string           `json:"name"`
	Type         AccountType      `json:"type"`
	APR          *decimal.Decimal `json:"apr,omitempty"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	StartBalance *decimal.Decimal `json:"startBalance,omitempty"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// AccountWithOwner is an account joined with its owner's display name.
type AccountWithOwner struct {
	Account
	Owner string `json:"owner"`
}

// Snapshot is a point-in-time balance/payment record, at most one per
// (account, month).
type Snapshot struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Month     string          `json:"month"`
	Balance   decimal.Decimal `json:"balance"`
	Payment   decimal.Decimal `json:"payment"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SnapshotRow is one row of the snapshot history listing.
type SnapshotRow struct {
	AccountID    string           `json:"accountId"`
	Owner        string           `json:"owner"`
	Account      string           `json:"account"`
	Type         AccountType      `json:"type"`
	Month        string           `json:"month"`
	Balance      decimal.Decimal  `json:"balance"`
	Payment      decimal.Decimal  `json:"payment"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	StartBalance *decimal.Decimal `json:"startBalance,omitempty"`
}

// DebtProgressRow pairs an active account with its snapshot for the requested
// month and the latest snapshot strictly before it. Accounts with no snapshot
// for the month still appear, with nil current-balance fields.
type DebtProgressRow struct {
	AccountID    string           `json:"accountId"`
	Owner        string           `json:"owner"`
	Account      string           `json:"account"`
	Type         AccountType      `json:"type"`
	APR          *decimal.Decimal `json:"apr,omitempty"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	StartBalance *decimal.Decimal `json:"startBalance,omitempty"`
	CurrBalance  *decimal.Decimal `json:"currBalance,omitempty"`
	CurrPayment  *decimal.Decimal `json:"currPayment,omitempty"`
	PrevBalance  *decimal.Decimal `json:"prevBalance,omitempty"`
	PrevPayment  *decimal.Decimal `json:"prevPayment,omitempty"`
	Utilization  *decimal.Decimal `json:"utilizationPct,omitempty"`
	Payoff       *decimal.Decimal `json:"payoffPct,omitempty"`
	BalanceDelta *decimal.Decimal `json:"balanceDelta,omitempty"`
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetAll(activeOnly bool) ([]*AccountWithOwner, error)
	GetByID(id string) (*Account, error)
	// UpsertSnapshot inserts or replaces the snapshot for (accountID, month).
	UpsertSnapshot(accountID, month string, balance, payment decimal.Decimal) error
	GetSnapshots() ([]*SnapshotRow, error)
	// SnapshotJoinForMonth returns one row per active account with the
	// snapshot for the exact month and the latest snapshot before it.
	// Derived percentage fields are left nil for the service to compute.
	SnapshotJoinForMonth(month string) ([]*DebtProgressRow, error)
}
