package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true}, // zero is a valid draft amount
		{"0.01", 1, true},
		{"99.9", 9990, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero should be valid, got %v", err)
	}
	if err := (Money{Cents: 125000}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestMoneyDecimal(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{9990, "99.90"},
		{125000, "1250.00"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Decimal(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 9990})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "99.90" {
		t.Fatalf("expected 99.90, got %s", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("99.9"), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Cents != 9990 {
		t.Fatalf("expected 9990 cents, got %d", m.Cents)
	}
	if err := json.Unmarshal([]byte(`"12,34"`), &m); err != nil {
		t.Fatalf("unmarshal quoted: %v", err)
	}
	if m.Cents != 1234 {
		t.Fatalf("expected 1234 cents, got %d", m.Cents)
	}
	if err := json.Unmarshal([]byte(`"not-a-number"`), &m); err == nil {
		t.Fatal("expected error for junk amount")
	}
}
