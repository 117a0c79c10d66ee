package core

import "time"

// SeedExpenses is the fixed first-run dataset, returned whenever the
// persisted document is missing or unreadable so the list is never
// empty on a fresh install. Contents match the original seed records.
func SeedExpenses(now time.Time) []Expense {
	return []Expense{
		{
			ID:          "1",
			Description: "Parcela Mensal 09/2025",
			Amount:      Money{Cents: 125000},
			DueDate:     NewDate(2025, 9, 10),
			Status:      StatusPaid,
			CreatedAt:   Timestamp{Time: now.Add(-10000000 * time.Millisecond)},
		},
		{
			ID:          "2",
			Description: "Manutenção Ar Condicionado",
			Amount:      Money{Cents: 25000},
			DueDate:     NewDate(2025, 9, 15),
			Status:      StatusPending,
			CreatedAt:   Timestamp{Time: now},
		},
	}
}
