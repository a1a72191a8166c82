package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// BillService handles recurring bill definitions and per-month payment state
type BillService struct {
	billRepo  domain.BillRepository
	ownerRepo domain.OwnerRepository
	gate      *ConfirmationGate
}

// NewBillService creates a new BillService
func NewBillService(billRepo domain.BillRepository, ownerRepo domain.OwnerRepository, gate *ConfirmationGate) *BillService {
	return &BillService{
		billRepo:  billRepo,
		ownerRepo: ownerRepo,
		gate:      gate,
	}
}

// Bills lists bill definitions with owner names
func (s *BillService) Bills(activeOnly bool) ([]*domain.BillWithOwner, error) {
	return s.billRepo.GetAll(activeOnly)
}

// Add creates a bill definition. DueDay, when present, must be 1..31.
func (s *BillService) Add(ownerID, name string, dueDay *int, defaultAmount *decimal.Decimal) (*domain.Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if dueDay != nil && (*dueDay < 1 || *dueDay > 31) {
		return nil, domain.ErrInvalidDueDay
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return nil, err
	}

	bill := &domain.Bill{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          name,
		DueDay:        dueDay,
		DefaultAmount: defaultAmount,
		Active:        true,
	}
	return s.billRepo.Create(bill)
}

// SetActive retires or restores a bill. Retired bills keep their payment
// history and are skipped by future materialization.
func (s *BillService) SetActive(id string, active bool) error {
	return s.billRepo.SetActive(id, active)
}

// BillsDue returns the month's bill checklist, materializing missing payment
// rows first. Ordered by due day, then owner, then bill name.
func (s *BillService) BillsDue(month string) ([]*domain.BillDue, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	if err := s.billRepo.EnsurePaymentRows(month); err != nil {
		return nil, err
	}
	return s.billRepo.DueForMonth(month)
}

// SetPaid updates the payment state for one (bill, month) row. Writes into a
// closed month pass through the confirmation gate.
func (s *BillService) SetPaid(billID, month string, update *domain.BillPaymentUpdate, confirmed bool) error {
	if !util.ValidMonth(month) {
		return domain.ErrInvalidMonth
	}
	if update.PaidDate != nil && !util.ValidDate(*update.PaidDate) {
		return domain.ErrInvalidDate
	}

	ok, err := s.gate.Authorize(ActionBillPayment, confirmed, month)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConfirmationRequired
	}

	if err := s.billRepo.EnsurePaymentRows(month); err != nil {
		return err
	}
	if err := s.billRepo.SetPaid(billID, month, update); err != nil {
		return err
	}

	log.Debug().Str("billId", billID).Str("month", month).Bool("paid", update.Paid).Msg("Bill payment updated")
	return nil
}
