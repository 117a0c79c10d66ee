package core

import (
	"fmt"
	"strings"
)

// generatedPrefix marks descriptions produced by the monthly-installment
// rule. A description keeping this prefix is still considered generated
// and may be regenerated when the due date changes; anything else is a
// user customization and must be left alone.
const generatedPrefix = "Parcela Mensal"

// MonthlyInstallmentDescription builds the canonical description for a
// due date, e.g. "Parcela Mensal 09/2025".
func MonthlyInstallmentDescription(d Date) string {
	return fmt.Sprintf("%s %02d/%04d", generatedPrefix, d.Month(), d.Year())
}

// IsGeneratedDescription reports whether the description follows the
// canonical generated pattern.
func IsGeneratedDescription(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), generatedPrefix)
}
