package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// IncomeService handles income records
type IncomeService struct {
	incomeRepo domain.IncomeRepository
	ownerRepo  domain.OwnerRepository
	gate       *ConfirmationGate
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository, ownerRepo domain.OwnerRepository, gate *ConfirmationGate) *IncomeService {
	return &IncomeService{
		incomeRepo: incomeRepo,
		ownerRepo:  ownerRepo,
		gate:       gate,
	}
}

// Add records income for an owner in a month. Writes into a closed month pass
// through the confirmation gate.
func (s *IncomeService) Add(month, ownerID, source string, amount decimal.Decimal, confirmed bool) (*domain.Income, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, domain.ErrNameRequired
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return nil, err
	}

	ok, err := s.gate.Authorize(ActionAddIncome, confirmed, month)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConfirmationRequired
	}

	return s.incomeRepo.Create(&domain.Income{
		ID:      uuid.New().String(),
		Month:   month,
		OwnerID: ownerID,
		Source:  source,
		Amount:  amount,
	})
}

// Incomes lists income rows, optionally filtered by month
func (s *IncomeService) Incomes(month string) ([]*domain.IncomeRow, error) {
	if month != "" && !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	return s.incomeRepo.GetAll(month)
}
