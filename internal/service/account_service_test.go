package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/testutil"
)

func newAccountServiceFixture() (*AccountService, *testutil.MockAccountRepository, *testutil.MockClosingRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	accountRepo := testutil.NewMockAccountRepository(ownerRepo)
	closingRepo := testutil.NewMockClosingRepository()
	svc := NewAccountService(accountRepo, ownerRepo, NewConfirmationGate(closingRepo))
	return svc, accountRepo, closingRepo
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAccountService_AddValidatesType(t *testing.T) {
	svc, _, _ := newAccountServiceFixture()

	_, err := svc.Add("owner-p1", "Visa", "CHECKING", nil, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)
}

func TestAccountService_UpsertSnapshotReplacesSameKey(t *testing.T) {
	svc, accountRepo, _ := newAccountServiceFixture()
	account, err := svc.Add("owner-p1", "Visa", domain.AccountTypeCreditCard, nil, decPtr("500"), decPtr("1000"))
	require.NoError(t, err)

	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("400"), dec("50"), false))
	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("410"), dec("60"), false))

	assert.Len(t, accountRepo.Snapshots, 1)
	snap := accountRepo.Snapshots[account.ID+"|2026-01"]
	assert.Equal(t, "410", snap.Balance.String())
}

func TestAccountService_UpsertSnapshotGatedOnClosedMonth(t *testing.T) {
	svc, accountRepo, closingRepo := newAccountServiceFixture()
	account, err := svc.Add("owner-p1", "Visa", domain.AccountTypeCreditCard, nil, nil, nil)
	require.NoError(t, err)
	closingRepo.CloseMonth("2026-01")

	err = svc.UpsertSnapshot(account.ID, "2026-01", dec("400"), dec("50"), false)
	require.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Empty(t, accountRepo.Snapshots)

	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("400"), dec("50"), true))
	assert.Len(t, accountRepo.Snapshots, 1)
}

func TestAccountService_DebtProgressDerivation(t *testing.T) {
	svc, _, _ := newAccountServiceFixture()
	account, err := svc.Add("owner-p1", "Visa", domain.AccountTypeCreditCard, nil, decPtr("500"), decPtr("1000"))
	require.NoError(t, err)

	require.NoError(t, svc.UpsertSnapshot(account.ID, "2025-12", dec("600"), dec("40"), false))
	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("400"), dec("50"), false))

	rows, err := svc.DebtProgress("2026-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NotNil(t, row.CurrBalance)
	assert.Equal(t, "400", row.CurrBalance.String())
	require.NotNil(t, row.PrevBalance)
	assert.Equal(t, "600", row.PrevBalance.String())
	require.NotNil(t, row.Utilization)
	assert.Equal(t, "80.0", row.Utilization.StringFixed(1))
	require.NotNil(t, row.Payoff)
	assert.Equal(t, "60.0", row.Payoff.StringFixed(1))
	require.NotNil(t, row.BalanceDelta)
	assert.Equal(t, "-200.00", row.BalanceDelta.StringFixed(2))
}

func TestAccountService_DebtProgressSkipsNonAdjacentMonths(t *testing.T) {
	svc, _, _ := newAccountServiceFixture()
	account, err := svc.Add("owner-p1", "Car loan", domain.AccountTypeLoan, nil, nil, decPtr("20000"))
	require.NoError(t, err)

	// Previous snapshot is two months back; it must still be found.
	require.NoError(t, svc.UpsertSnapshot(account.ID, "2025-11", dec("18000"), dec("300"), false))
	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("17500"), dec("300"), false))

	rows, err := svc.DebtProgress("2026-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].PrevBalance)
	assert.Equal(t, "18000", rows[0].PrevBalance.String())
}

func TestAccountService_DebtProgressMissingSnapshotStaysNull(t *testing.T) {
	svc, _, _ := newAccountServiceFixture()
	_, err := svc.Add("owner-p2", "Mastercard", domain.AccountTypeCreditCard, nil, decPtr("2000"), nil)
	require.NoError(t, err)

	rows, err := svc.DebtProgress("2026-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.CurrBalance)
	assert.Nil(t, row.Utilization)
	assert.Nil(t, row.Payoff)
	assert.Nil(t, row.BalanceDelta)
}

func TestAccountService_UtilizationNeedsPositiveLimit(t *testing.T) {
	svc, _, _ := newAccountServiceFixture()
	account, err := svc.Add("owner-p1", "Loan", domain.AccountTypeLoan, nil, nil, decPtr("1000"))
	require.NoError(t, err)
	require.NoError(t, svc.UpsertSnapshot(account.ID, "2026-01", dec("400"), dec("50"), false))

	rows, err := svc.DebtProgress("2026-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// No credit limit: utilization stays null, payoff still derives.
	assert.Nil(t, rows[0].Utilization)
	require.NotNil(t, rows[0].Payoff)
	assert.Equal(t, "60.0", rows[0].Payoff.StringFixed(1))
}
