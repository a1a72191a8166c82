package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/testutil"
)

func newSetupServiceFixture() (*SetupService, *testutil.MockCategoryRepository, *testutil.MockBillRepository, *testutil.MockAccountRepository, *testutil.MockTransactionRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	billRepo := testutil.NewMockBillRepository(ownerRepo)
	accountRepo := testutil.NewMockAccountRepository(ownerRepo)
	transactionRepo := testutil.NewMockTransactionRepository(ownerRepo, categoryRepo)
	svc := NewSetupService(categoryRepo, billRepo, accountRepo, transactionRepo)
	return svc, categoryRepo, billRepo, accountRepo, transactionRepo
}

func TestSetupService_FirstRunOnEmptyLedger(t *testing.T) {
	svc, _, _, _, _ := newSetupServiceFixture()

	firstRun, err := svc.FirstRun()

	require.NoError(t, err)
	assert.True(t, firstRun)
}

func TestSetupService_AnyAggregateEndsFirstRun(t *testing.T) {
	t.Run("category", func(t *testing.T) {
		svc, categoryRepo, _, _, _ := newSetupServiceFixture()
		categoryRepo.AddCategory("cat-groceries", "Groceries")

		firstRun, err := svc.FirstRun()

		require.NoError(t, err)
		assert.False(t, firstRun)
	})

	t.Run("bill", func(t *testing.T) {
		svc, _, billRepo, _, _ := newSetupServiceFixture()
		_, err := billRepo.Create(&domain.Bill{ID: "bill-rent", OwnerID: "owner-shared", Name: "Rent", Active: true})
		require.NoError(t, err)

		firstRun, err := svc.FirstRun()

		require.NoError(t, err)
		assert.False(t, firstRun)
	})

	t.Run("account", func(t *testing.T) {
		svc, _, _, accountRepo, _ := newSetupServiceFixture()
		_, err := accountRepo.Create(&domain.Account{ID: "acct-visa", OwnerID: "owner-shared", Name: "Visa", Type: domain.AccountTypeCreditCard, Active: true})
		require.NoError(t, err)

		firstRun, err := svc.FirstRun()

		require.NoError(t, err)
		assert.False(t, firstRun)
	})

	t.Run("deleted transaction", func(t *testing.T) {
		svc, _, _, _, transactionRepo := newSetupServiceFixture()
		_, err := transactionRepo.Create(&domain.Transaction{
			ID: "txn-1", TxnDate: "2026-01-10", OwnerID: "owner-shared",
			CategoryID: "cat-groceries", Amount: dec("4.50"),
		})
		require.NoError(t, err)
		require.NoError(t, transactionRepo.SoftDelete("txn-1"))

		firstRun, err := svc.FirstRun()

		require.NoError(t, err)
		assert.False(t, firstRun)
	})
}
