package events

import (
	"encoding/json"
	"time"
)

// Event types published on the expense lifecycle.
const (
	TypeExpenseCreated       = "expense.created"
	TypeExpenseStatusChanged = "expense.status_changed"
	TypeExpenseDeleted       = "expense.deleted"
)

// ExpenseEvent is a lightweight notification that a record changed.
// Consumers interested in the full record read the document store.
type ExpenseEvent struct {
	Type      string    `json:"type"`
	ExpenseID string    `json:"expense_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(eventType, expenseID string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      eventType,
		ExpenseID: expenseID,
		Timestamp: time.Now(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
