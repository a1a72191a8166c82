package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// ClosingRepository implements domain.ClosingRepository using SQLite
type ClosingRepository struct {
	db *sql.DB
}

// NewClosingRepository creates a new ClosingRepository
func NewClosingRepository(db *sql.DB) *ClosingRepository {
	return &ClosingRepository{db: db}
}

// IsClosed reports whether a closing row exists for the exact month string
func (r *ClosingRepository) IsClosed(month string) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM month_closings WHERE month = ? LIMIT 1`, month).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create records a month closing
func (r *ClosingRepository) Create(closing *domain.MonthClosing) error {
	if closing.ID == "" {
		closing.ID = uuid.New().String()
	}
	if closing.ClosedAt.IsZero() {
		closing.ClosedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO month_closings (id, month, closed_at, note)
		VALUES (?, ?, ?, ?)`,
		closing.ID, closing.Month, timeToText(closing.ClosedAt), nullString(closing.Note),
	)
	return err
}

// GetAll lists closings, newest month first
func (r *ClosingRepository) GetAll() ([]*domain.MonthClosing, error) {
	rows, err := r.db.Query(`
		SELECT id, month, closed_at, note
		FROM month_closings
		ORDER BY month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closings []*domain.MonthClosing
	for rows.Next() {
		var c domain.MonthClosing
		var closedAt string
		var note sql.NullString
		if err := rows.Scan(&c.ID, &c.Month, &closedAt, &note); err != nil {
			return nil, err
		}
		c.ClosedAt = textToTime(closedAt)
		c.Note = stringPtr(note)
		closings = append(closings, &c)
	}
	return closings, rows.Err()
}

// KnownMonths returns the distinct months appearing anywhere in the ledger,
// newest first, capped at limit.
func (r *ClosingRepository) KnownMonths(limit int) ([]string, error) {
	rows, err := r.db.Query(`
		WITH months AS (
		  SELECT DISTINCT substr(txn_date, 1, 7) AS m FROM transactions WHERE deleted_at IS NULL
		  UNION
		  SELECT DISTINCT month AS m FROM budgets
		  UNION
		  SELECT DISTINCT month AS m FROM bill_payments
		  UNION
		  SELECT DISTINCT month AS m FROM account_snapshots
		  UNION
		  SELECT DISTINCT month AS m FROM income
		  UNION
		  SELECT DISTINCT month AS m FROM month_closings
		)
		SELECT m FROM months
		WHERE m IS NOT NULL AND length(m) = 7
		ORDER BY m DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}
