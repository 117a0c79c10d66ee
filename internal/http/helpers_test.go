package http

import "testing"

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{2500, "R$ 25,00"},
		{125000, "R$ 1.250,00"},
		{100000000, "R$ 1.000.000,00"},
		{-15075, "-R$ 150,75"},
	}
	for _, tc := range cases {
		if got := formatBRL(tc.cents); got != tc.want {
			t.Errorf("formatBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Conta de Luz  ", "Conta de Luz"},
		{"a\x00b\x1fc", "abc"},
		{"linha1\nlinha2", "linha1\nlinha2"},
	}
	for _, tc := range cases {
		if got := sanitizeInput(tc.in); got != tc.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
