package domain

import "time"

// MonthClosing marks a calendar month as closed. Presence of a row makes the
// month CLOSED; absence means OPEN. There is no reopen operation.
type MonthClosing struct {
	ID       string    `json:"id"`
	Month    string    `json:"month"`
	ClosedAt time.Time `json:"closedAt"`
	Note     *string   `json:"note,omitempty"`
}

type ClosingRepository interface {
	IsClosed(month string) (bool, error)
	Create(closing *MonthClosing) error
	GetAll() ([]*MonthClosing, error)
	// KnownMonths returns the distinct months appearing anywhere in the
	// ledger (transactions, budgets, bill payments, snapshots, income,
	// closings), newest first, capped at limit.
	KnownMonths(limit int) ([]string, error)
}
