package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

var hundred = decimal.NewFromInt(100)

// AccountService handles debt accounts, snapshots and payoff progress
type AccountService struct {
	accountRepo domain.AccountRepository
	ownerRepo   domain.OwnerRepository
	gate        *ConfirmationGate
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, ownerRepo domain.OwnerRepository, gate *ConfirmationGate) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		ownerRepo:   ownerRepo,
		gate:        gate,
	}
}

// Accounts lists debt accounts with owner names
func (s *AccountService) Accounts(activeOnly bool) ([]*domain.AccountWithOwner, error) {
	return s.accountRepo.GetAll(activeOnly)
}

// Add creates a debt account
func (s *AccountService) Add(ownerID, name string, accountType domain.AccountType, apr, creditLimit, startBalance *decimal.Decimal) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if accountType != domain.AccountTypeCreditCard && accountType != domain.AccountTypeLoan {
		return nil, domain.ErrInvalidAccountType
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         name,
		Type:         accountType,
		APR:          apr,
		CreditLimit:  creditLimit,
		StartBalance: startBalance,
		Active:       true,
	}
	return s.accountRepo.Create(account)
}

// UpsertSnapshot records the balance and payment for (account, month),
// replacing any earlier snapshot for the same key. Writes into a closed month
// pass through the confirmation gate.
func (s *AccountService) UpsertSnapshot(accountID, month string, balance, payment decimal.Decimal, confirmed bool) error {
	if !util.ValidMonth(month) {
		return domain.ErrInvalidMonth
	}
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		return err
	}

	ok, err := s.gate.Authorize(ActionUpsertSnapshot, confirmed, month)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConfirmationRequired
	}

	if err := s.accountRepo.UpsertSnapshot(accountID, month, balance, payment); err != nil {
		return err
	}

	log.Debug().Str("accountId", accountID).Str("month", month).Msg("Snapshot recorded")
	return nil
}

// Snapshots lists the full snapshot history
func (s *AccountService) Snapshots() ([]*domain.SnapshotRow, error) {
	return s.accountRepo.GetSnapshots()
}

// DebtProgress builds the payoff view for a month: every active account, its
// snapshot for the month (if any), the latest earlier snapshot, and derived
// figures. Derived fields stay nil when their inputs are missing; a zero is
// never invented.
func (s *AccountService) DebtProgress(month string) ([]*domain.DebtProgressRow, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	rows, err := s.accountRepo.SnapshotJoinForMonth(month)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		deriveProgress(row)
	}
	return rows, nil
}

func deriveProgress(row *domain.DebtProgressRow) {
	if row.CurrBalance != nil && row.CreditLimit != nil && row.CreditLimit.IsPositive() {
		u := hundred.Mul(*row.CurrBalance).Div(*row.CreditLimit).Round(1)
		row.Utilization = &u
	}
	if row.CurrBalance != nil && row.StartBalance != nil && row.StartBalance.IsPositive() {
		p := hundred.Mul(row.StartBalance.Sub(*row.CurrBalance)).Div(*row.StartBalance).Round(1)
		row.Payoff = &p
	}
	if row.CurrBalance != nil && row.PrevBalance != nil {
		d := row.CurrBalance.Sub(*row.PrevBalance).Round(2)
		row.BalanceDelta = &d
	}
}
