// Package services holds the two core components: the ExpenseService
// owning the persisted collection, and the DraftService reconciling the
// transient entry form.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patrickhernande1993/novo-lar/internal/core"
	"github.com/patrickhernande1993/novo-lar/internal/docstore"
	"github.com/patrickhernande1993/novo-lar/internal/events"
)

// ExpenseService is the single source of truth for the expense
// collection. Every successful mutation writes the full collection
// through to the document store before returning; lifecycle events are
// published afterwards and never fail the operation.
type ExpenseService struct {
	mu        sync.Mutex
	docs      docstore.Documents
	publisher *events.Publisher
	items     []core.Expense

	now   func() time.Time
	newID func() string
}

func NewExpenseService(docs docstore.Documents, publisher *events.Publisher) *ExpenseService {
	return &ExpenseService{
		docs:      docs,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Load reads the persisted document into memory. A missing or
// unparsable document falls back to the seed set; load never fails.
func (s *ExpenseService) Load(ctx context.Context) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.docs.Read(ctx)
	if err == nil {
		var items []core.Expense
		err = json.Unmarshal(doc, &items)
		if err == nil {
			s.items = items
			slog.InfoContext(ctx, "Expense collection loaded",
				"count", len(items))
			return s.snapshotLocked()
		}
	}

	slog.WarnContext(ctx, "Stored document unusable, falling back to seed data",
		"reason", err)
	s.items = core.SeedExpenses(s.now())
	if err := s.persistLocked(ctx); err != nil {
		// First-run persistence is best effort; the next mutation
		// writes the collection anyway.
		slog.WarnContext(ctx, "Failed to persist seed data", "error", err)
	}
	return s.snapshotLocked()
}

// Create validates the draft, assigns identity and prepends the new
// record so the collection stays newest-first by insertion.
func (s *ExpenseService) Create(ctx context.Context, draft core.Draft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("invalid draft: %w", err)
	}

	s.mu.Lock()
	exp := core.Expense{
		ID:           s.newID(),
		Description:  draft.Description,
		Amount:       draft.Amount,
		DueDate:      draft.DueDate,
		Status:       draft.Status,
		ReceiptImage: draft.ReceiptImage,
		CreatedAt:    core.Timestamp{Time: s.now()},
	}
	prev := s.items
	s.items = append([]core.Expense{exp}, s.items...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		s.mu.Unlock()
		return core.Expense{}, err
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Expense created",
		"id", exp.ID,
		"description", exp.Description,
		"amount_cents", exp.Amount.Cents,
		"due_date", exp.DueDate.String(),
		"status", string(exp.Status))

	s.publish(ctx, events.TypeExpenseCreated, exp.ID)
	return exp, nil
}

// ToggleStatus flips PAID and PENDING for the matching record. An
// unknown id is a no-op, not an error.
func (s *ExpenseService) ToggleStatus(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Toggle on unknown expense ignored", "id", id)
		return nil
	}
	prevStatus := s.items[idx].Status
	s.items[idx].Status = prevStatus.Toggled()
	if err := s.persistLocked(ctx); err != nil {
		s.items[idx].Status = prevStatus
		s.mu.Unlock()
		return err
	}
	newStatus := s.items[idx].Status
	s.mu.Unlock()

	slog.InfoContext(ctx, "Expense status toggled",
		"id", id,
		"status", string(newStatus))

	s.publish(ctx, events.TypeExpenseStatusChanged, id)
	return nil
}

// Delete removes the matching record. Deletion is explicit and
// irreversible; interactive confirmation is the caller's concern. An
// unknown id is a no-op.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Delete on unknown expense ignored", "id", id)
		return nil
	}
	prev := s.items
	s.items = append(append([]core.Expense{}, s.items[:idx]...), s.items[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Expense deleted", "id", id)

	s.publish(ctx, events.TypeExpenseDeleted, id)
	return nil
}

// List returns a copy of the collection in insertion order (newest
// first).
func (s *ExpenseService) List(_ context.Context) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Totals sums amounts grouped by payment status. Pure; no side effects.
func (s *ExpenseService) Totals(_ context.Context) core.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t core.Totals
	for _, e := range s.items {
		switch e.Status {
		case core.StatusPaid:
			t.Paid = t.Paid.Add(e.Amount)
		case core.StatusPending:
			t.Pending = t.Pending.Add(e.Amount)
		}
	}
	return t
}

// Close releases the document store and the event publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.docs != nil {
		if err := s.docs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("docstore: %w", err))
		}
	}
	if err := s.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}

func (s *ExpenseService) indexLocked(id string) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *ExpenseService) snapshotLocked() []core.Expense {
	return append([]core.Expense(nil), s.items...)
}

func (s *ExpenseService) persistLocked(ctx context.Context) error {
	doc, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	if err := s.docs.Write(ctx, doc); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, eventType, id string) {
	if err := s.publisher.PublishExpenseEvent(ctx, eventType, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", eventType,
			"id", id,
			"error", err)
	}
}
