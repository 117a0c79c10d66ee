package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

type (
	// Status marks an expense as paid or still pending.
	Status string

	// Date is a timezone-naive calendar day (UTC midnight internally).
	Date struct {
		time.Time
	}

	// Timestamp is a creation instant, serialized as Unix milliseconds.
	Timestamp struct {
		time.Time
	}

	// Expense is a persisted installment record. ID and CreatedAt are
	// assigned once at creation and never change afterwards.
	Expense struct {
		ID           string    `json:"id"`
		Description  string    `json:"description"`
		Amount       Money     `json:"amount"`
		DueDate      Date      `json:"dueDate"`
		Status       Status    `json:"status"`
		ReceiptImage string    `json:"receiptImage,omitempty"`
		CreatedAt    Timestamp `json:"createdAt"`
	}

	// Draft is the in-progress entry form: an Expense minus identity.
	Draft struct {
		Description  string `json:"description"`
		Amount       Money  `json:"amount"`
		DueDate      Date   `json:"dueDate"`
		Status       Status `json:"status"`
		ReceiptImage string `json:"receiptImage,omitempty"`
	}

	// Extraction is the best-effort partial record an analyzer reads
	// from a receipt. Status already carries the isPaid mapping.
	Extraction struct {
		Amount      Money
		DueDate     Date
		Description string
		Status      Status
	}

	// Totals groups the collection's amounts by payment status.
	Totals struct {
		Paid    Money
		Pending Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyID          = errors.New("empty id")
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusPaid:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
}

// Toggled flips PAID to PENDING and anything else to PAID.
func (s Status) Toggled() Status {
	if s == StatusPaid {
		return StatusPending
	}
	return StatusPaid
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unmarshal date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	// The original document format stored Date.now() output, so the
	// value may arrive as an integer or a float.
	ms, err := strconv.ParseFloat(strings.Trim(string(b), `"`), 64)
	if err != nil {
		return fmt.Errorf("unmarshal timestamp: %w", err)
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if err := validateFields(e.Description, e.Amount, e.DueDate, e.Status); err != nil {
		return err
	}
	return nil
}

func (d Draft) Validate() error {
	return validateFields(d.Description, d.Amount, d.DueDate, d.Status)
}

func validateFields(description string, amount Money, dueDate Date, status Status) error {
	if len(strings.TrimSpace(description)) == 0 {
		return ErrEmptyDescription
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if err := dueDate.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	return nil
}

// NewDraft returns a fresh entry form: due today, canonical description
// for the current month, zero amount, pending, no attachment.
func NewDraft(now time.Time) Draft {
	today := Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	return Draft{
		Description: MonthlyInstallmentDescription(today),
		Amount:      Money{},
		DueDate:     today,
		Status:      StatusPending,
	}
}
