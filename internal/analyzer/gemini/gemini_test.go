package gemini

import (
	"testing"

	"github.com/patrickhernande1993/novo-lar/internal/core"
)

func TestParseExtraction(t *testing.T) {
	ext, err := parseExtraction([]byte(`{"amount": 99.9, "date": "2025-10-05", "description": "Condomínio", "isPaid": true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Amount.Cents != 9990 {
		t.Fatalf("amount cents = %d", ext.Amount.Cents)
	}
	if ext.DueDate.String() != "2025-10-05" {
		t.Fatalf("due date = %s", ext.DueDate)
	}
	if ext.Description != "Condomínio" {
		t.Fatalf("description = %q", ext.Description)
	}
	if ext.Status != core.StatusPaid {
		t.Fatalf("status = %s", ext.Status)
	}
}

func TestParseExtractionUnpaidDefaultsToPending(t *testing.T) {
	ext, err := parseExtraction([]byte(`{"amount": 1250, "date": "2025-09-10", "description": "Parcela Mensal 09/2025"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Status != core.StatusPending {
		t.Fatalf("status = %s", ext.Status)
	}
	if ext.Amount.Cents != 125000 {
		t.Fatalf("amount cents = %d", ext.Amount.Cents)
	}
}

func TestParseExtractionRejectsMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"date": "2025-10-05", "description": "x"}`,            // missing amount
		`{"amount": 10, "description": "x"}`,                    // missing date
		`{"amount": 10, "date": "2025-10-05"}`,                  // missing description
		`{"amount": -5, "date": "2025-10-05", "description": "x"}`, // negative amount
		`{"amount": 10, "date": "05/10/2025", "description": "x"}`, // wrong date format
	}
	for _, tc := range cases {
		if _, err := parseExtraction([]byte(tc)); err == nil {
			t.Fatalf("%s: expected error", tc)
		}
	}
}
