package core

import "testing"

func TestMonthlyInstallmentDescription(t *testing.T) {
	cases := []struct {
		d    Date
		want string
	}{
		{NewDate(2025, 9, 10), "Parcela Mensal 09/2025"},
		{NewDate(2025, 10, 5), "Parcela Mensal 10/2025"},
		{NewDate(2026, 1, 31), "Parcela Mensal 01/2026"},
	}
	for _, tc := range cases {
		if got := MonthlyInstallmentDescription(tc.d); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.d, tc.want, got)
		}
	}
}

func TestIsGeneratedDescription(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"Parcela Mensal 09/2025", true},
		{"  Parcela Mensal 10/2025", true},
		{"Parcela Mensal", true},
		{"Condomínio", false},
		{"parcela mensal 09/2025", false}, // customization, case differs
	}
	for _, tc := range cases {
		if got := IsGeneratedDescription(tc.in); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
