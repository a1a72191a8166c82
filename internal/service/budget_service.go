package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// BudgetService handles planned amounts and the planned-vs-actual view
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	ownerRepo       domain.OwnerRepository
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	gate            *ConfirmationGate
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, ownerRepo domain.OwnerRepository, categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository, gate *ConfirmationGate) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		ownerRepo:       ownerRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		gate:            gate,
	}
}

// Upsert sets the planned amount for (month, owner, category), replacing any
// earlier value. Writes into a closed month pass through the confirmation
// gate.
func (s *BudgetService) Upsert(month, ownerID, categoryID string, planned decimal.Decimal, confirmed bool) error {
	if !util.ValidMonth(month) {
		return domain.ErrInvalidMonth
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return err
	}

	ok, err := s.gate.Authorize(ActionUpsertBudget, confirmed, month)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConfirmationRequired
	}

	return s.budgetRepo.Upsert(&domain.Budget{
		ID:            uuid.New().String(),
		Month:         month,
		OwnerID:       ownerID,
		CategoryID:    categoryID,
		PlannedAmount: planned,
	})
}

// Budgets lists the raw budget rows for a month
func (s *BudgetService) Budgets(month string) ([]*domain.Budget, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	return s.budgetRepo.GetForMonth(month)
}

// PlannedVsActual builds the full owners x active-categories grid for a
// month. Every pair appears, zero-filled when it has neither a budget nor
// spending; variance is planned minus actual, rounded to cents.
func (s *BudgetService) PlannedVsActual(month string) ([]*domain.PlannedVsActualRow, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	owners, err := s.ownerRepo.GetAll()
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll(true)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetForMonth(month)
	if err != nil {
		return nil, err
	}
	actuals, err := s.transactionRepo.SumByOwnerCategory(month)
	if err != nil {
		return nil, err
	}

	type pair struct{ ownerID, categoryID string }
	planned := make(map[pair]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		planned[pair{b.OwnerID, b.CategoryID}] = b.PlannedAmount
	}
	actual := make(map[pair]decimal.Decimal, len(actuals))
	for _, a := range actuals {
		actual[pair{a.OwnerID, a.CategoryID}] = a.Actual
	}

	rows := make([]*domain.PlannedVsActualRow, 0, len(owners)*len(categories))
	for _, owner := range owners {
		for _, category := range categories {
			key := pair{owner.ID, category.ID}
			p := planned[key]
			a := actual[key]
			rows = append(rows, &domain.PlannedVsActualRow{
				Owner:    owner.DisplayName,
				Category: category.Name,
				Planned:  p.Round(2),
				Actual:   a.Round(2),
				Variance: p.Sub(a).Round(2),
			})
		}
	}
	return rows, nil
}
