package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using SQLite
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO transactions (id, txn_date, owner_id, category_id, description, amount, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		transaction.ID, transaction.TxnDate, transaction.OwnerID, transaction.CategoryID,
		transaction.Description, decimalToText(transaction.Amount), timeToText(now), timeToText(now),
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// CreateBatch inserts all transactions in a single storage transaction
func (r *TransactionRepository) CreateBatch(transactions []*domain.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, t := range transactions {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.CreatedAt = now
		t.UpdatedAt = now
		_, err := tx.Exec(`
			INSERT INTO transactions (id, txn_date, owner_id, category_id, description, amount, created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
			t.ID, t.TxnDate, t.OwnerID, t.CategoryID, t.Description,
			decimalToText(t.Amount), timeToText(now), timeToText(now),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetAll lists non-deleted transactions, newest first
func (r *TransactionRepository) GetAll(month string) ([]*domain.TransactionRow, error) {
	return r.list(month, "DESC")
}

// Export lists non-deleted transactions in date-ascending order
func (r *TransactionRepository) Export(month string) ([]*domain.TransactionRow, error) {
	return r.list(month, "ASC")
}

func (r *TransactionRepository) list(month, direction string) ([]*domain.TransactionRow, error) {
	query := `
		SELECT t.id, t.txn_date, o.display_name, c.name, t.description, t.amount
		FROM transactions t
		JOIN owners o ON o.id = t.owner_id
		JOIN categories c ON c.id = t.category_id
		WHERE t.deleted_at IS NULL`
	args := []any{}
	if month != "" {
		query += ` AND substr(t.txn_date, 1, 7) = ?`
		args = append(args, month)
	}
	query += ` ORDER BY t.txn_date ` + direction

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.TransactionRow
	for rows.Next() {
		var t domain.TransactionRow
		var amount string
		if err := rows.Scan(&t.ID, &t.TxnDate, &t.Owner, &t.Category, &t.Description, &amount); err != nil {
			return nil, err
		}
		t.Amount = textToDecimal(amount)
		result = append(result, &t)
	}
	return result, rows.Err()
}

// SoftDelete marks a transaction as deleted; the row stays in storage
func (r *TransactionRepository) SoftDelete(id string) error {
	now := timeToText(time.Now())
	res, err := r.db.Exec(`
		UPDATE transactions SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SumByOwnerCategory sums non-deleted transaction amounts per (owner, category)
// for the month. Amounts are stored as exact decimal text, so the aggregation
// happens here rather than in SQL.
func (r *TransactionRepository) SumByOwnerCategory(month string) ([]*domain.ActualSum, error) {
	rows, err := r.db.Query(`
		SELECT owner_id, category_id, amount
		FROM transactions
		WHERE deleted_at IS NULL AND substr(txn_date, 1, 7) = ?`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type key struct{ ownerID, categoryID string }
	sums := make(map[key]decimal.Decimal)
	var order []key
	for rows.Next() {
		var ownerID, categoryID, amount string
		if err := rows.Scan(&ownerID, &categoryID, &amount); err != nil {
			return nil, err
		}
		k := key{ownerID, categoryID}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(textToDecimal(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*domain.ActualSum, len(order))
	for i, k := range order {
		result[i] = &domain.ActualSum{OwnerID: k.ownerID, CategoryID: k.categoryID, Actual: sums[k]}
	}
	return result, nil
}

// CountAll counts every stored row, soft-deleted included
func (r *TransactionRepository) CountAll() (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}
