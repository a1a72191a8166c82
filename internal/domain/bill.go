package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID            string           `json:"id"`
	OwnerID       string           `json:"ownerId"`
	Name          string           `json:"name"`
	DueDay        *int             `json:"dueDay,omitempty"`
	DefaultAmount *decimal.Decimal `json:"defaultAmount,omitempty"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// BillWithOwner is a bill joined with its owner's display name for listings.
type BillWithOwner struct {
	Bill
	Owner string `json:"owner"`
}

type BillPayment struct {
	ID         string           `json:"id"`
	BillID     string           `json:"billId"`
	Month      string           `json:"month"`
	Paid       bool             `json:"paid"`
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	PaidDate   *string          `json:"paidDate,omitempty"`
	Note       *string          `json:"note,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// BillDue is one row of the bills-due view for a month.
type BillDue struct {
	BillID     string           `json:"billId"`
	Owner      string           `json:"owner"`
	Bill       string           `json:"bill"`
	DueDay     *int             `json:"dueDay,omitempty"`
	Planned    *decimal.Decimal `json:"planned,omitempty"`
	Paid       bool             `json:"paid"`
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	PaidDate   *string          `json:"paidDate,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

// BillPaymentUpdate carries the mutable payment state for a (bill, month) row.
type BillPaymentUpdate struct {
	Paid       bool
	PaidAmount *decimal.Decimal
	PaidDate   *string
	Note       *string
}

type BillRepository interface {
	Create(bill *Bill) (*Bill, error)
	GetAll(activeOnly bool) ([]*BillWithOwner, error)
	SetActive(id string, active bool) error
	// EnsurePaymentRows lazily materializes a payment row for every active
	// bill in the month. Existing rows are never overwritten.
	EnsurePaymentRows(month string) error
	DueForMonth(month string) ([]*BillDue, error)
	SetPaid(billID, month string, update *BillPaymentUpdate) error
}
