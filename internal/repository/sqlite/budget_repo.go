package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using SQLite
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert inserts or replaces the budget for (month, owner, category)
func (r *BudgetRepository) Upsert(budget *domain.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	now := timeToText(time.Now())
	_, err := r.db.Exec(`
		INSERT INTO budgets (id, month, owner_id, category_id, planned_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (month, owner_id, category_id) DO UPDATE SET
		  planned_amount = excluded.planned_amount,
		  updated_at = excluded.updated_at`,
		budget.ID, budget.Month, budget.OwnerID, budget.CategoryID,
		decimalToText(budget.PlannedAmount), now, now,
	)
	return err
}

// GetForMonth lists every budget row for the month
func (r *BudgetRepository) GetForMonth(month string) ([]*domain.Budget, error) {
	rows, err := r.db.Query(`
		SELECT id, month, owner_id, category_id, planned_amount, created_at, updated_at
		FROM budgets
		WHERE month = ?`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		var b domain.Budget
		var planned, createdAt, updatedAt string
		if err := rows.Scan(&b.ID, &b.Month, &b.OwnerID, &b.CategoryID, &planned, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		b.PlannedAmount = textToDecimal(planned)
		b.CreatedAt = textToTime(createdAt)
		b.UpdatedAt = textToTime(updatedAt)
		budgets = append(budgets, &b)
	}
	return budgets, rows.Err()
}
