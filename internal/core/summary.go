package core

// Summary holds the aggregate totals for a filtered transaction set.
type Summary struct {
	TotalIncome  Money
	TotalExpense Money
	NetBalance   Money // may be negative
	HasData      bool  // true when either total is above zero
}

// Summarize reduces txs into income/expense totals and a net balance.
// Accumulation is integer cents, so financial totals never drift.
// Empty input yields all-zero totals and HasData=false.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpense)
	s.HasData = s.TotalIncome.Cents > 0 || s.TotalExpense.Cents > 0
	return s
}
