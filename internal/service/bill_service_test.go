package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/testutil"
)

func newBillServiceFixture() (*BillService, *testutil.MockBillRepository, *testutil.MockClosingRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	billRepo := testutil.NewMockBillRepository(ownerRepo)
	closingRepo := testutil.NewMockClosingRepository()
	svc := NewBillService(billRepo, ownerRepo, NewConfirmationGate(closingRepo))
	return svc, billRepo, closingRepo
}

func TestBillService_AddValidatesDueDay(t *testing.T) {
	svc, _, _ := newBillServiceFixture()

	day := 32
	_, err := svc.Add("owner-shared", "Rent", &day, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDueDay)

	day = 0
	_, err = svc.Add("owner-shared", "Rent", &day, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDueDay)

	day = 1
	_, err = svc.Add("owner-shared", "Rent", &day, nil)
	assert.NoError(t, err)
}

func TestBillService_BillsDueMaterializesOnce(t *testing.T) {
	svc, billRepo, _ := newBillServiceFixture()
	_, err := svc.Add("owner-shared", "Rent", nil, decPtr("1200"))
	require.NoError(t, err)
	_, err = svc.Add("owner-p1", "Phone", nil, nil)
	require.NoError(t, err)

	due, err := svc.BillsDue("2026-01")
	require.NoError(t, err)
	require.Len(t, due, 2)

	// A second call must not create duplicate payment rows.
	due, err = svc.BillsDue("2026-01")
	require.NoError(t, err)
	assert.Len(t, due, 2)
	assert.Len(t, billRepo.Payments, 2)
}

func TestBillService_BillsDueOrdering(t *testing.T) {
	svc, _, _ := newBillServiceFixture()
	d15, d5 := 15, 5
	_, err := svc.Add("owner-shared", "Internet", &d15, nil)
	require.NoError(t, err)
	_, err = svc.Add("owner-p1", "Phone", &d5, nil)
	require.NoError(t, err)
	_, err = svc.Add("owner-shared", "Water", nil, nil)
	require.NoError(t, err)

	due, err := svc.BillsDue("2026-01")
	require.NoError(t, err)
	require.Len(t, due, 3)

	// Due day ascending, undated bills last.
	assert.Equal(t, "Phone", due[0].Bill)
	assert.Equal(t, "Internet", due[1].Bill)
	assert.Equal(t, "Water", due[2].Bill)
}

func TestBillService_SetPaidGatedOnClosedMonth(t *testing.T) {
	svc, billRepo, closingRepo := newBillServiceFixture()
	bill, err := svc.Add("owner-shared", "Rent", nil, nil)
	require.NoError(t, err)
	_, err = svc.BillsDue("2026-01")
	require.NoError(t, err)
	closingRepo.CloseMonth("2026-01")

	update := &domain.BillPaymentUpdate{Paid: true, PaidAmount: decPtr("1200")}
	err = svc.SetPaid(bill.ID, "2026-01", update, false)
	require.ErrorIs(t, err, domain.ErrConfirmationRequired)

	due, err := billRepo.DueForMonth("2026-01")
	require.NoError(t, err)
	require.False(t, due[0].Paid)

	require.NoError(t, svc.SetPaid(bill.ID, "2026-01", update, true))
	due, err = billRepo.DueForMonth("2026-01")
	require.NoError(t, err)
	assert.True(t, due[0].Paid)
	assert.Equal(t, "1200", due[0].PaidAmount.String())
}

func TestBillService_RetiredBillSkippedByMaterialization(t *testing.T) {
	svc, billRepo, _ := newBillServiceFixture()
	bill, err := svc.Add("owner-shared", "Gym", nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(bill.ID, false))

	due, err := svc.BillsDue("2026-01")
	require.NoError(t, err)
	assert.Empty(t, due)
	assert.Empty(t, billRepo.Payments)
}
