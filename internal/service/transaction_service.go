package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// TransactionService handles the spending ledger
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	ownerRepo       domain.OwnerRepository
	categoryRepo    domain.CategoryRepository
	gate            *ConfirmationGate
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, ownerRepo domain.OwnerRepository, categoryRepo domain.CategoryRepository, gate *ConfirmationGate) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		ownerRepo:       ownerRepo,
		categoryRepo:    categoryRepo,
		gate:            gate,
	}
}

// Add records a spending transaction. The target month is derived from the
// transaction date; writes into a closed month pass through the confirmation
// gate.
func (s *TransactionService) Add(txnDate, ownerID, categoryID, description string, amount decimal.Decimal, confirmed bool) (*domain.Transaction, error) {
	if !util.ValidDate(txnDate) {
		return nil, domain.ErrInvalidDate
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	ok, err := s.gate.Authorize(ActionAddTransaction, confirmed, util.MonthOfDate(txnDate))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConfirmationRequired
	}

	transaction := &domain.Transaction{
		ID:          uuid.New().String(),
		TxnDate:     txnDate,
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("id", created.ID).Str("date", txnDate).Msg("Transaction recorded")
	return created, nil
}

// Transactions lists non-deleted transactions, newest first. An empty month
// means all months.
func (s *TransactionService) Transactions(month string) ([]*domain.TransactionRow, error) {
	if month != "" && !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	return s.transactionRepo.GetAll(month)
}

// Delete soft-deletes a transaction. The row stays in storage and drops out
// of every listing, sum and export.
func (s *TransactionService) Delete(id string) error {
	if err := s.transactionRepo.SoftDelete(id); err != nil {
		return err
	}
	log.Debug().Str("id", id).Msg("Transaction deleted")
	return nil
}
