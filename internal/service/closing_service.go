package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// ClosingService is the month state machine: a month is CLOSED iff a closing
// row exists for its exact YYYY-MM string, OPEN otherwise. Closing is
// one-directional; there is no reopen.
type ClosingService struct {
	closingRepo domain.ClosingRepository
	billRepo    domain.BillRepository
	knownLimit  int
}

// NewClosingService creates a new ClosingService
func NewClosingService(closingRepo domain.ClosingRepository, billRepo domain.BillRepository, knownLimit int) *ClosingService {
	return &ClosingService{
		closingRepo: closingRepo,
		billRepo:    billRepo,
		knownLimit:  knownLimit,
	}
}

// IsClosed reports whether the month is closed
func (s *ClosingService) IsClosed(month string) (bool, error) {
	if !util.ValidMonth(month) {
		return false, domain.ErrInvalidMonth
	}
	return s.closingRepo.IsClosed(month)
}

// Close records a closing for the month. Closing an already-closed month is
// a silent no-op. Before the closing lands, a payment row is materialized
// for every active bill so the closed month has a complete bills ledger.
func (s *ClosingService) Close(month string, note *string) error {
	if !util.ValidMonth(month) {
		return domain.ErrInvalidMonth
	}

	closed, err := s.closingRepo.IsClosed(month)
	if err != nil {
		return err
	}
	if closed {
		return nil
	}

	if err := s.billRepo.EnsurePaymentRows(month); err != nil {
		return err
	}

	closing := &domain.MonthClosing{
		ID:    uuid.New().String(),
		Month: month,
		Note:  note,
	}
	if err := s.closingRepo.Create(closing); err != nil {
		return err
	}

	log.Info().Str("month", month).Msg("Month closed")
	return nil
}

// Closings lists recorded closings, newest month first
func (s *ClosingService) Closings() ([]*domain.MonthClosing, error) {
	return s.closingRepo.GetAll()
}

// KnownMonths lists the months present anywhere in the ledger, newest first
func (s *ClosingService) KnownMonths() ([]string, error) {
	return s.closingRepo.KnownMonths(s.knownLimit)
}
