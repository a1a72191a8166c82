package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/casafin/casafin-backend/internal/domain"
)

// BillRepository implements domain.BillRepository using SQLite
type BillRepository struct {
	db *sql.DB
}

// NewBillRepository creates a new BillRepository
func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Create inserts a new bill
func (r *BillRepository) Create(bill *domain.Bill) (*domain.Bill, error) {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	bill.Active = true

	_, err := r.db.Exec(`
		INSERT INTO bills (id, owner_id, name, due_day, default_amount, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		bill.ID, bill.OwnerID, bill.Name, nullInt(bill.DueDay), nullDecimalToText(bill.DefaultAmount),
		timeToText(now), timeToText(now),
	)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetAll lists bills with their owner names
func (r *BillRepository) GetAll(activeOnly bool) ([]*domain.BillWithOwner, error) {
	query := `
		SELECT b.id, b.owner_id, b.name, b.due_day, b.default_amount, b.active,
		       b.created_at, b.updated_at, o.display_name
		FROM bills b
		JOIN owners o ON o.id = b.owner_id`
	if activeOnly {
		query += ` WHERE b.active = 1`
	}
	query += ` ORDER BY o.display_name, b.due_day, b.name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*domain.BillWithOwner
	for rows.Next() {
		var b domain.BillWithOwner
		var dueDay sql.NullInt64
		var defaultAmount sql.NullString
		var active int
		var createdAt, updatedAt string
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &dueDay, &defaultAmount, &active,
			&createdAt, &updatedAt, &b.Owner); err != nil {
			return nil, err
		}
		b.DueDay = intPtr(dueDay)
		b.DefaultAmount = textToNullDecimal(defaultAmount)
		b.Active = active == 1
		b.CreatedAt = textToTime(createdAt)
		b.UpdatedAt = textToTime(updatedAt)
		bills = append(bills, &b)
	}
	return bills, rows.Err()
}

// SetActive toggles a bill's active flag
func (r *BillRepository) SetActive(id string, active bool) error {
	res, err := r.db.Exec(`
		UPDATE bills SET active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), timeToText(time.Now()), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

// EnsurePaymentRows materializes a payment row for every active bill in the
// month. Insert-if-absent only; already-recorded payment state is untouched.
func (r *BillRepository) EnsurePaymentRows(month string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id FROM bills WHERE active = 1`)
	if err != nil {
		return err
	}
	var billIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		billIDs = append(billIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	now := timeToText(time.Now())
	for _, billID := range billIDs {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO bill_payments
			(id, bill_id, month, paid, paid_amount, paid_date, note, created_at, updated_at)
			VALUES (?, ?, ?, 0, NULL, NULL, NULL, ?, ?)`,
			uuid.New().String(), billID, month, now, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DueForMonth returns the bills-due view, ordered by due day, owner, bill name
func (r *BillRepository) DueForMonth(month string) ([]*domain.BillDue, error) {
	rows, err := r.db.Query(`
		SELECT b.id, o.display_name, b.name, b.due_day, b.default_amount,
		       bp.paid, bp.paid_amount, bp.paid_date, bp.note
		FROM bills b
		JOIN owners o ON o.id = b.owner_id
		JOIN bill_payments bp ON bp.bill_id = b.id AND bp.month = ?
		WHERE b.active = 1
		ORDER BY b.due_day, o.display_name, b.name`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []*domain.BillDue
	for rows.Next() {
		var d domain.BillDue
		var dueDay sql.NullInt64
		var planned, paidAmount, paidDate, note sql.NullString
		var paid int
		if err := rows.Scan(&d.BillID, &d.Owner, &d.Bill, &dueDay, &planned,
			&paid, &paidAmount, &paidDate, &note); err != nil {
			return nil, err
		}
		d.DueDay = intPtr(dueDay)
		d.Planned = textToNullDecimal(planned)
		d.Paid = paid == 1
		d.PaidAmount = textToNullDecimal(paidAmount)
		d.PaidDate = stringPtr(paidDate)
		d.Note = stringPtr(note)
		due = append(due, &d)
	}
	return due, rows.Err()
}

// SetPaid updates the payment state for a (bill, month) row
func (r *BillRepository) SetPaid(billID, month string, update *domain.BillPaymentUpdate) error {
	res, err := r.db.Exec(`
		UPDATE bill_payments
		SET paid = ?, paid_amount = ?, paid_date = ?, note = ?, updated_at = ?
		WHERE bill_id = ? AND month = ?`,
		boolToInt(update.Paid), nullDecimalToText(update.PaidAmount), nullString(update.PaidDate),
		nullString(update.Note), timeToText(time.Now()), billID, month,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}
