package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeClosed  EventType = "closed"
	EventTypePaid    EventType = "paid"
	EventTypeBatch   EventType = "batch_created"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeBudget      EntityType = "budget"
	EntityTypeBillPayment EntityType = "bill_payment"
	EntityTypeSnapshot    EntityType = "snapshot"
	EntityTypeMonth       EntityType = "month"
	EntityTypeCategory    EntityType = "category"
	EntityTypeIncome      EntityType = "income"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// TransactionBatchCreated creates a transaction.batch_created event
func TransactionBatchCreated(payload interface{}) Event {
	return NewEvent(EventTypeBatch, EntityTypeTransaction, payload)
}

// BudgetUpdated creates a budget.updated event
func BudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBudget, payload)
}

// BillPaymentPaid creates a bill_payment.paid event
func BillPaymentPaid(payload interface{}) Event {
	return NewEvent(EventTypePaid, EntityTypeBillPayment, payload)
}

// SnapshotUpdated creates a snapshot.updated event
func SnapshotUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSnapshot, payload)
}

// MonthClosed creates a month.closed event
func MonthClosed(payload interface{}) Event {
	return NewEvent(EventTypeClosed, EntityTypeMonth, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// IncomeCreated creates an income.created event
func IncomeCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeIncome, payload)
}
