package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
)

// MockOwnerRepository is a mock implementation of domain.OwnerRepository
type MockOwnerRepository struct {
	Owners []*domain.Owner
}

// NewMockOwnerRepository creates a MockOwnerRepository pre-seeded with the
// three fixed owners.
func NewMockOwnerRepository() *MockOwnerRepository {
	return &MockOwnerRepository{
		Owners: []*domain.Owner{
			{ID: "owner-shared", SystemKey: domain.SystemKeyShared, DisplayName: "Shared", SortOrder: 0},
			{ID: "owner-p1", SystemKey: domain.SystemKeyPersonOne, DisplayName: "Person 1", SortOrder: 1},
			{ID: "owner-p2", SystemKey: domain.SystemKeyPersonTwo, DisplayName: "Person 2", SortOrder: 2},
		},
	}
}

// GetAll lists owners in sort order
func (m *MockOwnerRepository) GetAll() ([]*domain.Owner, error) {
	out := make([]*domain.Owner, len(m.Owners))
	copy(out, m.Owners)
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// GetByID retrieves an owner by ID
func (m *MockOwnerRepository) GetByID(id string) (*domain.Owner, error) {
	for _, o := range m.Owners {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

// Rename changes an owner's display name
func (m *MockOwnerRepository) Rename(id, displayName string) error {
	for _, o := range m.Owners {
		if o.ID == id {
			o.DisplayName = displayName
			o.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrOwnerNotFound
}

// ResolveLabel matches a display name or system key case-insensitively
func (m *MockOwnerRepository) ResolveLabel(label string) (*domain.Owner, error) {
	for _, o := range m.Owners {
		if strings.EqualFold(o.DisplayName, label) || strings.EqualFold(o.SystemKey, label) {
			return o, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories []*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// GetAll lists categories by name, optionally only active ones
func (m *MockCategoryRepository) GetAll(activeOnly bool) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.Categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetOrCreate returns the category with the given name, creating it if absent
func (m *MockCategoryRepository) GetOrCreate(name string) (*domain.Category, error) {
	for _, c := range m.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	category := &domain.Category{ID: uuid.New().String(), Name: name, Active: true}
	m.Categories = append(m.Categories, category)
	return category, nil
}

// Rename changes a category's name
func (m *MockCategoryRepository) Rename(id, name string) error {
	for _, c := range m.Categories {
		if c.ID == id {
			c.Name = name
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// SetActive flips a category's active flag
func (m *MockCategoryRepository) SetActive(id string, active bool) error {
	for _, c := range m.Categories {
		if c.ID == id {
			c.Active = active
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// AddCategory adds a category directly (helper for tests)
func (m *MockCategoryRepository) AddCategory(id, name string) *domain.Category {
	category := &domain.Category{ID: id, Name: name, Active: true}
	m.Categories = append(m.Categories, category)
	return category
}

// MockBillRepository is a mock implementation of domain.BillRepository
type MockBillRepository struct {
	Bills    []*domain.Bill
	Payments map[string]*domain.BillPayment // keyed billID + "|" + month
	Owners   *MockOwnerRepository
}

// NewMockBillRepository creates a new MockBillRepository
func NewMockBillRepository(owners *MockOwnerRepository) *MockBillRepository {
	return &MockBillRepository{
		Payments: make(map[string]*domain.BillPayment),
		Owners:   owners,
	}
}

func paymentKey(billID, month string) string { return billID + "|" + month }

// Create inserts a bill
func (m *MockBillRepository) Create(bill *domain.Bill) (*domain.Bill, error) {
	m.Bills = append(m.Bills, bill)
	return bill, nil
}

// GetAll lists bills with owner names
func (m *MockBillRepository) GetAll(activeOnly bool) ([]*domain.BillWithOwner, error) {
	var out []*domain.BillWithOwner
	for _, b := range m.Bills {
		if activeOnly && !b.Active {
			continue
		}
		owner, err := m.Owners.GetByID(b.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.BillWithOwner{Bill: *b, Owner: owner.DisplayName})
	}
	return out, nil
}

// SetActive flips a bill's active flag
func (m *MockBillRepository) SetActive(id string, active bool) error {
	for _, b := range m.Bills {
		if b.ID == id {
			b.Active = active
			return nil
		}
	}
	return domain.ErrBillNotFound
}

// EnsurePaymentRows materializes a payment row per active bill for the month
func (m *MockBillRepository) EnsurePaymentRows(month string) error {
	for _, b := range m.Bills {
		if !b.Active {
			continue
		}
		key := paymentKey(b.ID, month)
		if _, ok := m.Payments[key]; ok {
			continue
		}
		m.Payments[key] = &domain.BillPayment{
			ID:     uuid.New().String(),
			BillID: b.ID,
			Month:  month,
		}
	}
	return nil
}

// DueForMonth returns the bills-due view for a month
func (m *MockBillRepository) DueForMonth(month string) ([]*domain.BillDue, error) {
	var out []*domain.BillDue
	for _, b := range m.Bills {
		if !b.Active {
			continue
		}
		payment, ok := m.Payments[paymentKey(b.ID, month)]
		if !ok {
			continue
		}
		owner, err := m.Owners.GetByID(b.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.BillDue{
			BillID:     b.ID,
			Owner:      owner.DisplayName,
			Bill:       b.Name,
			DueDay:     b.DueDay,
			Planned:    b.DefaultAmount,
			Paid:       payment.Paid,
			PaidAmount: payment.PaidAmount,
			PaidDate:   payment.PaidDate,
			Note:       payment.Note,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := 32, 32
		if out[i].DueDay != nil {
			di = *out[i].DueDay
		}
		if out[j].DueDay != nil {
			dj = *out[j].DueDay
		}
		if di != dj {
			return di < dj
		}
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Bill < out[j].Bill
	})
	return out, nil
}

// SetPaid updates the payment state for a (bill, month) row
func (m *MockBillRepository) SetPaid(billID, month string, update *domain.BillPaymentUpdate) error {
	payment, ok := m.Payments[paymentKey(billID, month)]
	if !ok {
		return domain.ErrNotFound
	}
	payment.Paid = update.Paid
	payment.PaidAmount = update.PaidAmount
	payment.PaidDate = update.PaidDate
	payment.Note = update.Note
	return nil
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts  []*domain.Account
	Snapshots map[string]*domain.Snapshot // keyed accountID + "|" + month
	Owners    *MockOwnerRepository
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository(owners *MockOwnerRepository) *MockAccountRepository {
	return &MockAccountRepository{
		Snapshots: make(map[string]*domain.Snapshot),
		Owners:    owners,
	}
}

// Create inserts an account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	m.Accounts = append(m.Accounts, account)
	return account, nil
}

// GetAll lists accounts with owner names
func (m *MockAccountRepository) GetAll(activeOnly bool) ([]*domain.AccountWithOwner, error) {
	var out []*domain.AccountWithOwner
	for _, a := range m.Accounts {
		if activeOnly && !a.Active {
			continue
		}
		owner, err := m.Owners.GetByID(a.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.AccountWithOwner{Account: *a, Owner: owner.DisplayName})
	}
	return out, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id string) (*domain.Account, error) {
	for _, a := range m.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// UpsertSnapshot inserts or replaces the snapshot for (accountID, month)
func (m *MockAccountRepository) UpsertSnapshot(accountID, month string, balance, payment decimal.Decimal) error {
	key := accountID + "|" + month
	if existing, ok := m.Snapshots[key]; ok {
		existing.Balance = balance
		existing.Payment = payment
		return nil
	}
	m.Snapshots[key] = &domain.Snapshot{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Month:     month,
		Balance:   balance,
		Payment:   payment,
	}
	return nil
}

// GetSnapshots lists the snapshot history
func (m *MockAccountRepository) GetSnapshots() ([]*domain.SnapshotRow, error) {
	var out []*domain.SnapshotRow
	for _, s := range m.Snapshots {
		account, err := m.GetByID(s.AccountID)
		if err != nil {
			return nil, err
		}
		owner, err := m.Owners.GetByID(account.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.SnapshotRow{
			AccountID:    s.AccountID,
			Owner:        owner.DisplayName,
			Account:      account.Name,
			Type:         account.Type,
			Month:        s.Month,
			Balance:      s.Balance,
			Payment:      s.Payment,
			CreditLimit:  account.CreditLimit,
			StartBalance: account.StartBalance,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Account < out[j].Account
	})
	return out, nil
}

// SnapshotJoinForMonth pairs each active account with its snapshot for the
// month and the latest snapshot strictly before it.
func (m *MockAccountRepository) SnapshotJoinForMonth(month string) ([]*domain.DebtProgressRow, error) {
	var out []*domain.DebtProgressRow
	for _, a := range m.Accounts {
		if !a.Active {
			continue
		}
		owner, err := m.Owners.GetByID(a.OwnerID)
		if err != nil {
			return nil, err
		}
		row := &domain.DebtProgressRow{
			AccountID:    a.ID,
			Owner:        owner.DisplayName,
			Account:      a.Name,
			Type:         a.Type,
			APR:          a.APR,
			CreditLimit:  a.CreditLimit,
			StartBalance: a.StartBalance,
		}
		if curr, ok := m.Snapshots[a.ID+"|"+month]; ok {
			b, p := curr.Balance, curr.Payment
			row.CurrBalance = &b
			row.CurrPayment = &p
		}
		var prev *domain.Snapshot
		for _, s := range m.Snapshots {
			if s.AccountID != a.ID || s.Month >= month {
				continue
			}
			if prev == nil || s.Month > prev.Month {
				prev = s
			}
		}
		if prev != nil {
			b, p := prev.Balance, prev.Payment
			row.PrevBalance = &b
			row.PrevPayment = &p
		}
		out = append(out, row)
	}
	return out, nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	Owners       *MockOwnerRepository
	Categories   *MockCategoryRepository
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository(owners *MockOwnerRepository, categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{Owners: owners, Categories: categories}
}

// Create inserts a transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	transaction.CreatedAt = time.Now().UTC()
	m.Transactions = append(m.Transactions, transaction)
	return transaction, nil
}

// CreateBatch inserts all transactions
func (m *MockTransactionRepository) CreateBatch(transactions []*domain.Transaction) error {
	for _, t := range transactions {
		if _, err := m.Create(t); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockTransactionRepository) rows(month string, ascending bool) ([]*domain.TransactionRow, error) {
	var out []*domain.TransactionRow
	for _, t := range m.Transactions {
		if t.DeletedAt != nil {
			continue
		}
		if month != "" && !strings.HasPrefix(t.TxnDate, month) {
			continue
		}
		owner, err := m.Owners.GetByID(t.OwnerID)
		if err != nil {
			return nil, err
		}
		category, err := m.Categories.GetByID(t.CategoryID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.TransactionRow{
			ID:          t.ID,
			TxnDate:     t.TxnDate,
			Owner:       owner.DisplayName,
			Category:    category.Name,
			Description: t.Description,
			Amount:      t.Amount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].TxnDate < out[j].TxnDate
		}
		return out[i].TxnDate > out[j].TxnDate
	})
	return out, nil
}

// GetAll lists non-deleted transactions, newest first
func (m *MockTransactionRepository) GetAll(month string) ([]*domain.TransactionRow, error) {
	return m.rows(month, false)
}

// Export lists non-deleted transactions, date-ascending
func (m *MockTransactionRepository) Export(month string) ([]*domain.TransactionRow, error) {
	return m.rows(month, true)
}

// SoftDelete marks a transaction deleted without removing the row
func (m *MockTransactionRepository) SoftDelete(id string) error {
	for _, t := range m.Transactions {
		if t.ID == id && t.DeletedAt == nil {
			now := time.Now().UTC()
			t.DeletedAt = &now
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// SumByOwnerCategory sums non-deleted amounts per (owner, category) for the month
func (m *MockTransactionRepository) SumByOwnerCategory(month string) ([]*domain.ActualSum, error) {
	type pair struct{ ownerID, categoryID string }
	sums := make(map[pair]decimal.Decimal)
	var order []pair
	for _, t := range m.Transactions {
		if t.DeletedAt != nil || !strings.HasPrefix(t.TxnDate, month) {
			continue
		}
		key := pair{t.OwnerID, t.CategoryID}
		if _, ok := sums[key]; !ok {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(t.Amount)
	}
	out := make([]*domain.ActualSum, 0, len(order))
	for _, key := range order {
		out = append(out, &domain.ActualSum{OwnerID: key.ownerID, CategoryID: key.categoryID, Actual: sums[key]})
	}
	return out, nil
}

// CountAll counts every stored row, soft-deleted included
func (m *MockTransactionRepository) CountAll() (int64, error) {
	return int64(len(m.Transactions)), nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[string]*domain.Budget // keyed month + "|" + ownerID + "|" + categoryID
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[string]*domain.Budget)}
}

// Upsert inserts or replaces the budget for (month, owner, category)
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) error {
	key := budget.Month + "|" + budget.OwnerID + "|" + budget.CategoryID
	if existing, ok := m.Budgets[key]; ok {
		existing.PlannedAmount = budget.PlannedAmount
		return nil
	}
	m.Budgets[key] = budget
	return nil
}

// GetForMonth lists budgets for a month
func (m *MockBudgetRepository) GetForMonth(month string) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range m.Budgets {
		if b.Month == month {
			out = append(out, b)
		}
	}
	return out, nil
}

// MockClosingRepository is a mock implementation of domain.ClosingRepository
type MockClosingRepository struct {
	Closings []*domain.MonthClosing
	Months   []string
}

// NewMockClosingRepository creates a new MockClosingRepository
func NewMockClosingRepository() *MockClosingRepository {
	return &MockClosingRepository{}
}

// IsClosed reports whether a closing exists for the month
func (m *MockClosingRepository) IsClosed(month string) (bool, error) {
	for _, c := range m.Closings {
		if c.Month == month {
			return true, nil
		}
	}
	return false, nil
}

// Create records a closing
func (m *MockClosingRepository) Create(closing *domain.MonthClosing) error {
	closing.ClosedAt = time.Now().UTC()
	m.Closings = append(m.Closings, closing)
	return nil
}

// GetAll lists closings, newest month first
func (m *MockClosingRepository) GetAll() ([]*domain.MonthClosing, error) {
	out := make([]*domain.MonthClosing, len(m.Closings))
	copy(out, m.Closings)
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

// KnownMonths returns the configured months, newest first, capped at limit
func (m *MockClosingRepository) KnownMonths(limit int) ([]string, error) {
	out := make([]string, len(m.Months))
	copy(out, m.Months)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CloseMonth marks a month closed directly (helper for tests)
func (m *MockClosingRepository) CloseMonth(month string) {
	m.Closings = append(m.Closings, &domain.MonthClosing{
		ID:       uuid.New().String(),
		Month:    month,
		ClosedAt: time.Now().UTC(),
	})
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes []*domain.Income
	Owners  *MockOwnerRepository
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository(owners *MockOwnerRepository) *MockIncomeRepository {
	return &MockIncomeRepository{Owners: owners}
}

// Create inserts an income record
func (m *MockIncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	income.CreatedAt = time.Now().UTC()
	m.Incomes = append(m.Incomes, income)
	return income, nil
}

// GetAll lists income rows with owner names, optionally filtered by month
func (m *MockIncomeRepository) GetAll(month string) ([]*domain.IncomeRow, error) {
	var out []*domain.IncomeRow
	for _, i := range m.Incomes {
		if month != "" && i.Month != month {
			continue
		}
		owner, err := m.Owners.GetByID(i.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.IncomeRow{
			ID:     i.ID,
			Month:  i.Month,
			Owner:  owner.DisplayName,
			Source: i.Source,
			Amount: i.Amount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}
