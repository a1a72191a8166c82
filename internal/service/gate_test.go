package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafin/casafin-backend/internal/testutil"
)

func TestConfirmationGate_OpenMonthPassesThrough(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionAddTransaction, false, "2026-02")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationGate_ClosedMonthRequiresConfirmation(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionAddTransaction, false, "2026-01")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Authorize(ActionAddTransaction, true, "2026-01")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationGate_ConfirmationIsSingleUse(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionUpsertBudget, false, "2026-01")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = gate.Authorize(ActionUpsertBudget, true, "2026-01")
	require.NoError(t, err)
	require.True(t, ok)

	// Second confirmed write without a fresh proposal re-arms instead.
	ok, err = gate.Authorize(ActionUpsertBudget, true, "2026-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationGate_ConfirmWithoutProposalIsDenied(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionBillPayment, true, "2026-01")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationGate_KindsAreIndependent(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionAddTransaction, false, "2026-01")
	require.NoError(t, err)
	require.False(t, ok)

	// The transaction proposal must not satisfy a budget confirmation.
	ok, err = gate.Authorize(ActionUpsertBudget, true, "2026-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationGate_Cancel(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	requires, err := gate.Propose(ActionUpsertSnapshot, "2026-01")
	require.NoError(t, err)
	require.True(t, requires)

	gate.Cancel(ActionUpsertSnapshot, "2026-01")

	assert.False(t, gate.Confirm(ActionUpsertSnapshot, "2026-01"))
}

func TestConfirmationGate_BatchKeyIgnoresMonthOrder(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	closingRepo.CloseMonth("2026-01")
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionImport, false, "2026-02", "2026-01", "2026-02")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = gate.Authorize(ActionImport, true, "2026-01", "2026-02")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationGate_StatusRecheckedEveryProposal(t *testing.T) {
	closingRepo := testutil.NewMockClosingRepository()
	gate := NewConfirmationGate(closingRepo)

	ok, err := gate.Authorize(ActionAddTransaction, false, "2026-03")
	require.NoError(t, err)
	require.True(t, ok)

	closingRepo.CloseMonth("2026-03")

	ok, err = gate.Authorize(ActionAddTransaction, false, "2026-03")
	require.NoError(t, err)
	assert.False(t, ok)
}
