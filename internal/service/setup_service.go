package service

import (
	"github.com/casafin/casafin-backend/internal/domain"
)

// SetupService answers first-run questions for the UI
type SetupService struct {
	categoryRepo    domain.CategoryRepository
	billRepo        domain.BillRepository
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
}

// NewSetupService creates a new SetupService
func NewSetupService(categoryRepo domain.CategoryRepository, billRepo domain.BillRepository, accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *SetupService {
	return &SetupService{
		categoryRepo:    categoryRepo,
		billRepo:        billRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// FirstRun reports whether the ledger looks untouched: no categories, no
// bills, no accounts and no stored transactions, deleted ones included.
func (s *SetupService) FirstRun() (bool, error) {
	categories, err := s.categoryRepo.GetAll(false)
	if err != nil {
		return false, err
	}
	if len(categories) > 0 {
		return false, nil
	}
	bills, err := s.billRepo.GetAll(false)
	if err != nil {
		return false, err
	}
	if len(bills) > 0 {
		return false, nil
	}
	accounts, err := s.accountRepo.GetAll(false)
	if err != nil {
		return false, err
	}
	if len(accounts) > 0 {
		return false, nil
	}
	count, err := s.transactionRepo.CountAll()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
