package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
)

// AccountRepository implements domain.AccountRepository using SQLite
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new debt-bearing account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Active = true

	_, err := r.db.Exec(`
		INSERT INTO accounts (id, owner_id, name, type, apr, credit_limit, start_balance, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		account.ID, account.OwnerID, account.Name, string(account.Type),
		nullDecimalToText(account.APR), nullDecimalToText(account.CreditLimit),
		nullDecimalToText(account.StartBalance), timeToText(now), timeToText(now),
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAll lists accounts with their owner names
func (r *AccountRepository) GetAll(activeOnly bool) ([]*domain.AccountWithOwner, error) {
	query := `
		SELECT a.id, a.owner_id, a.name, a.type, a.apr, a.credit_limit, a.start_balance,
		       a.active, a.created_at, a.updated_at, o.display_name
		FROM accounts a
		JOIN owners o ON o.id = a.owner_id`
	if activeOnly {
		query += ` WHERE a.active = 1`
	}
	query += ` ORDER BY o.display_name, a.type, a.name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.AccountWithOwner
	for rows.Next() {
		var a domain.AccountWithOwner
		var accType string
		var apr, creditLimit, startBalance sql.NullString
		var active int
		var createdAt, updatedAt string
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &accType, &apr, &creditLimit, &startBalance,
			&active, &createdAt, &updatedAt, &a.Owner); err != nil {
			return nil, err
		}
		a.Type = domain.AccountType(accType)
		a.APR = textToNullDecimal(apr)
		a.CreditLimit = textToNullDecimal(creditLimit)
		a.StartBalance = textToNullDecimal(startBalance)
		a.Active = active == 1
		a.CreatedAt = textToTime(createdAt)
		a.UpdatedAt = textToTime(updatedAt)
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

// GetByID retrieves a single account
func (r *AccountRepository) GetByID(id string) (*domain.Account, error) {
	row := r.db.QueryRow(`
		SELECT id, owner_id, name, type, apr, credit_limit, start_balance, active, created_at, updated_at
		FROM accounts
		WHERE id = ?`, id)

	var a domain.Account
	var accType string
	var apr, creditLimit, startBalance sql.NullString
	var active int
	var createdAt, updatedAt string
	err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &accType, &apr, &creditLimit, &startBalance,
		&active, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(accType)
	a.APR = textToNullDecimal(apr)
	a.CreditLimit = textToNullDecimal(creditLimit)
	a.StartBalance = textToNullDecimal(startBalance)
	a.Active = active == 1
	a.CreatedAt = textToTime(createdAt)
	a.UpdatedAt = textToTime(updatedAt)
	return &a, nil
}

// UpsertSnapshot inserts or replaces the snapshot for (accountID, month)
func (r *AccountRepository) UpsertSnapshot(accountID, month string, balance, payment decimal.Decimal) error {
	now := timeToText(time.Now())
	_, err := r.db.Exec(`
		INSERT INTO account_snapshots (id, account_id, month, balance, payment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, month) DO UPDATE SET
		  balance = excluded.balance,
		  payment = excluded.payment,
		  updated_at = excluded.updated_at`,
		uuid.New().String(), accountID, month, decimalToText(balance), decimalToText(payment), now, now,
	)
	return err
}

// GetSnapshots lists the full snapshot history for active accounts
func (r *AccountRepository) GetSnapshots() ([]*domain.SnapshotRow, error) {
	rows, err := r.db.Query(`
		SELECT a.id, o.display_name, a.name, a.type, s.month, s.balance, s.payment,
		       a.credit_limit, a.start_balance
		FROM account_snapshots s
		JOIN accounts a ON a.id = s.account_id
		JOIN owners o ON o.id = a.owner_id
		WHERE a.active = 1
		ORDER BY o.display_name, a.name, s.month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*domain.SnapshotRow
	for rows.Next() {
		var s domain.SnapshotRow
		var accType, balance, payment string
		var creditLimit, startBalance sql.NullString
		if err := rows.Scan(&s.AccountID, &s.Owner, &s.Account, &accType, &s.Month,
			&balance, &payment, &creditLimit, &startBalance); err != nil {
			return nil, err
		}
		s.Type = domain.AccountType(accType)
		s.Balance = textToDecimal(balance)
		s.Payment = textToDecimal(payment)
		s.CreditLimit = textToNullDecimal(creditLimit)
		s.StartBalance = textToNullDecimal(startBalance)
		snapshots = append(snapshots, &s)
	}
	return snapshots, rows.Err()
}

// SnapshotJoinForMonth left-joins the snapshot for the exact month and the
// latest snapshot strictly before it (months may have gaps, so the previous
// month is found by max-below lookup, not month minus one).
func (r *AccountRepository) SnapshotJoinForMonth(month string) ([]*domain.DebtProgressRow, error) {
	rows, err := r.db.Query(`
		SELECT a.id, o.display_name, a.name, a.type, a.apr, a.credit_limit, a.start_balance,
		       s.balance, s.payment, p.balance, p.payment
		FROM accounts a
		JOIN owners o ON o.id = a.owner_id
		LEFT JOIN account_snapshots s
		  ON s.account_id = a.id AND s.month = ?
		LEFT JOIN account_snapshots p
		  ON p.account_id = a.id AND p.month = (
		    SELECT month FROM account_snapshots
		    WHERE account_id = a.id AND month < ?
		    ORDER BY month DESC LIMIT 1
		  )
		WHERE a.active = 1
		ORDER BY o.display_name, a.type, a.name`, month, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.DebtProgressRow
	for rows.Next() {
		var row domain.DebtProgressRow
		var accType string
		var apr, creditLimit, startBalance sql.NullString
		var currBalance, currPayment, prevBalance, prevPayment sql.NullString
		if err := rows.Scan(&row.AccountID, &row.Owner, &row.Account, &accType,
			&apr, &creditLimit, &startBalance,
			&currBalance, &currPayment, &prevBalance, &prevPayment); err != nil {
			return nil, err
		}
		row.Type = domain.AccountType(accType)
		row.APR = textToNullDecimal(apr)
		row.CreditLimit = textToNullDecimal(creditLimit)
		row.StartBalance = textToNullDecimal(startBalance)
		row.CurrBalance = textToNullDecimal(currBalance)
		row.CurrPayment = textToNullDecimal(currPayment)
		row.PrevBalance = textToNullDecimal(prevBalance)
		row.PrevPayment = textToNullDecimal(prevPayment)
		result = append(result, &row)
	}
	return result, rows.Err()
}
