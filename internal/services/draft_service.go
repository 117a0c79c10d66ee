package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/patrickhernande1993/novo-lar/internal/analyzer"
	"github.com/patrickhernande1993/novo-lar/internal/core"
	"github.com/patrickhernande1993/novo-lar/internal/receipt"
)

// ManualFillNotice is surfaced on the draft after a failed analysis.
const ManualFillNotice = "Não foi possível ler o comprovante. Preencha os campos manualmente."

// DraftService reconciles the transient entry form: field updates, the
// auto-description rule, the attach-and-analyze flow and submission.
//
// An attachment revision counter guards the asynchronous analyzer
// merge: each Attach (and each reset) bumps the revision, and an
// analysis result is merged only while its revision is still current.
// A superseded result is discarded, never merged over newer edits.
type DraftService struct {
	mu       sync.Mutex
	expenses *ExpenseService
	analyzer analyzer.Analyzer
	timeout  time.Duration
	now      func() time.Time

	draft      core.Draft
	attachment receipt.Attachment
	rev        uint64
	analyzing  bool
	notice     string
}

// NewDraftService creates the reconciler. The analyzer may be nil when
// receipt analysis is not configured; attachments then stay manual.
func NewDraftService(expenses *ExpenseService, an analyzer.Analyzer, timeout time.Duration) *DraftService {
	s := &DraftService{
		expenses: expenses,
		analyzer: an,
		timeout:  timeout,
		now:      time.Now,
	}
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return s
}

// Current returns a snapshot of the draft.
func (s *DraftService) Current() core.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Analyzing reports whether an analysis is in flight for the current
// attachment.
func (s *DraftService) Analyzing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzing
}

// LastNotice returns the non-fatal notice from the last failed
// analysis, or "" when none is pending.
func (s *DraftService) LastNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// SetDueDate updates the due date and applies the auto-description
// rule: while the description is empty or still the generated pattern,
// it is regenerated for the new date; once the user typed a custom
// description it is never overwritten.
func (s *DraftService) SetDueDate(d core.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.DueDate = d
	if strings.TrimSpace(s.draft.Description) == "" || core.IsGeneratedDescription(s.draft.Description) {
		s.draft.Description = core.MonthlyInstallmentDescription(d)
	}
}

func (s *DraftService) SetDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Description = description
}

func (s *DraftService) SetAmount(amount core.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Amount = amount
}

func (s *DraftService) SetStatus(status core.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Status = status
}

// Attach encodes the uploaded file and stores the attachment on the
// draft immediately, so the preview is available before (and
// regardless of) any analysis. It returns the attachment revision to
// pass to Analyze. An encoding failure leaves the draft untouched.
func (s *DraftService) Attach(filename string, data []byte) (uint64, error) {
	att, err := receipt.Encode(filename, data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ReceiptImage = att.DataURI
	s.attachment = att
	s.rev++
	s.notice = ""
	return s.rev, nil
}

// RemoveAttachment clears the attachment from the draft and retires
// any in-flight analysis for it.
func (s *DraftService) RemoveAttachment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ReceiptImage = ""
	s.attachment = receipt.Attachment{}
	s.rev++
}

// Analyze runs the analyzer for the attachment revision returned by
// Attach and merges the extracted fields into the draft. The
// attachment itself is always preserved. A failed analysis keeps the
// draft as it was and records a non-fatal notice; the error is not
// propagated. A result arriving after the attachment changed is
// discarded.
func (s *DraftService) Analyze(ctx context.Context, rev uint64) {
	s.mu.Lock()
	if s.analyzer == nil || rev != s.rev || s.attachment.IsZero() {
		s.mu.Unlock()
		return
	}
	att := s.attachment
	s.analyzing = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ext, err := s.analyzer.Analyze(ctx, att)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false

	if rev != s.rev {
		slog.DebugContext(ctx, "Discarding stale analysis result",
			"rev", rev, "current_rev", s.rev)
		return
	}

	if err != nil {
		slog.WarnContext(ctx, "Receipt analysis failed", "error", err)
		s.notice = ManualFillNotice
		return
	}

	s.draft.Amount = ext.Amount
	s.draft.DueDate = ext.DueDate
	s.draft.Status = ext.Status
	if ext.Description != "" {
		s.draft.Description = ext.Description
	}
	s.notice = ""
}

// Submit converts the draft into a stored expense and resets the form.
// On a validation error the draft is kept so the user can correct it.
func (s *DraftService) Submit(ctx context.Context) (core.Expense, error) {
	s.mu.Lock()
	draft := s.draft
	s.mu.Unlock()

	exp, err := s.expenses.Create(ctx, draft)
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return exp, nil
}

// Cancel discards the draft without touching the collection.
func (s *DraftService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *DraftService) resetLocked() {
	s.draft = core.NewDraft(s.now())
	s.attachment = receipt.Attachment{}
	s.rev++
	s.analyzing = false
	s.notice = ""
}
