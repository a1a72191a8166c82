package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// IncomeRepository implements domain.IncomeRepository using SQLite
type IncomeRepository struct {
	db *sql.DB
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// Create inserts a new income record
func (r *IncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	income.CreatedAt = now
	income.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO income (id, month, owner_id, source, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		income.ID, income.Month, income.OwnerID, income.Source,
		decimalToText(income.Amount), timeToText(now), timeToText(now),
	)
	if err != nil {
		return nil, err
	}
	return income, nil
}

// GetAll lists income rows with owner names, newest month first
func (r *IncomeRepository) GetAll(month string) ([]*domain.IncomeRow, error) {
	query := `
		SELECT i.id, i.month, o.display_name, i.source, i.amount
		FROM income i
		JOIN owners o ON o.id = i.owner_id`
	args := []any{}
	if month != "" {
		query += ` WHERE i.month = ?`
		args = append(args, month)
	}
	query += ` ORDER BY i.month DESC, o.display_name, i.source`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.IncomeRow
	for rows.Next() {
		var i domain.IncomeRow
		var amount string
		if err := rows.Scan(&i.ID, &i.Month, &i.Owner, &i.Source, &amount); err != nil {
			return nil, err
		}
		i.Amount = textToDecimal(amount)
		result = append(result, &i)
	}
	return result, rows.Err()
}
