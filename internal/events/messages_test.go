package events

import (
	"context"
	"testing"
	"time"
)

func TestExpenseEventJSON(t *testing.T) {
	msg := NewExpenseEvent(TypeExpenseCreated, "abc-123")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Type != TypeExpenseCreated {
		t.Fatalf("type = %q", back.Type)
	}
	if back.ExpenseID != "abc-123" {
		t.Fatalf("expense id = %q", back.ExpenseID)
	}
	if time.Since(back.Timestamp) > time.Minute {
		t.Fatalf("timestamp not recent: %v", back.Timestamp)
	}
}

func TestExpenseEventFromJSONRejectsJunk(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error")
	}
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	if err := p.PublishExpenseEvent(context.Background(), TypeExpenseDeleted, "1"); err != nil {
		t.Fatalf("nil publisher publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nil publisher close: %v", err)
	}
}
