package http

import (
	"fmt"
	"strconv"
	"strings"
)

// formatBRL formats cents as a Brazilian Real currency string,
// e.g. "R$ 1.250,00".
func formatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	reais := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	lead := len(reais) % 3
	if lead > 0 {
		grouped.WriteString(reais[:lead])
	}
	for i := lead; i < len(reais); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteString(reais[i : i+3])
	}

	s := "R$ " + grouped.String() + "," + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
