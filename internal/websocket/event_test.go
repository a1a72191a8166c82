package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     "txn-1",
		"amount": "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"month": "2026-01",
	}

	evt := NewEvent(EventTypeClosed, EntityTypeMonth, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "month.closed", decoded["type"])
	assert.Equal(t, "month", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": "x"}

	t.Run("TransactionCreated", func(t *testing.T) {
		evt := TransactionCreated(payload)
		assert.Equal(t, "transaction.created", evt.Type)
		assert.Equal(t, EntityTypeTransaction, evt.Entity)
	})

	t.Run("TransactionDeleted", func(t *testing.T) {
		evt := TransactionDeleted(payload)
		assert.Equal(t, "transaction.deleted", evt.Type)
	})

	t.Run("TransactionBatchCreated", func(t *testing.T) {
		evt := TransactionBatchCreated(payload)
		assert.Equal(t, "transaction.batch_created", evt.Type)
	})

	t.Run("BudgetUpdated", func(t *testing.T) {
		evt := BudgetUpdated(payload)
		assert.Equal(t, "budget.updated", evt.Type)
		assert.Equal(t, EntityTypeBudget, evt.Entity)
	})

	t.Run("BillPaymentPaid", func(t *testing.T) {
		evt := BillPaymentPaid(payload)
		assert.Equal(t, "bill_payment.paid", evt.Type)
	})

	t.Run("SnapshotUpdated", func(t *testing.T) {
		evt := SnapshotUpdated(payload)
		assert.Equal(t, "snapshot.updated", evt.Type)
	})

	t.Run("MonthClosed", func(t *testing.T) {
		evt := MonthClosed(payload)
		assert.Equal(t, "month.closed", evt.Type)
	})

	t.Run("CategoryUpdated", func(t *testing.T) {
		evt := CategoryUpdated(payload)
		assert.Equal(t, "category.updated", evt.Type)
	})

	t.Run("IncomeCreated", func(t *testing.T) {
		evt := IncomeCreated(payload)
		assert.Equal(t, "income.created", evt.Type)
	})
}
