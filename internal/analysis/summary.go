// Package analysis derives spending patterns, recommendations and goal
// forecasts from a persona ledger. Everything here is a pure computation
// over domain values; nothing mutates the ledger.
package analysis

import (
	"time"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// Summary aggregates a ledger window into the headline figures.
type Summary struct {
	Income             float64
	Expenses           float64
	ExpensesByCategory map[string]float64
	CategoryOrder      []string // first-seen expense category order, keeps prompts stable
	NetCashflow        float64
	SavingsRate        float64
}

// Summarize filters transactions to [start, end] inclusive (date-only
// comparison) and totals income and expenses. Transfers count toward
// neither. The savings rate is zero when there is no income.
func Summarize(txs []domain.Transaction, start, end time.Time) Summary {
	s := Summary{ExpensesByCategory: make(map[string]float64)}

	for _, tx := range txs {
		if !domain.WithinDates(tx.Date, start, end) {
			continue
		}
		switch tx.Kind {
		case domain.KindIncome:
			s.Income += tx.Amount
		case domain.KindExpense:
			s.Expenses += tx.Amount
			if _, seen := s.ExpensesByCategory[tx.Category]; !seen {
				s.CategoryOrder = append(s.CategoryOrder, tx.Category)
			}
			s.ExpensesByCategory[tx.Category] += tx.Amount
		}
	}

	s.NetCashflow = s.Income - s.Expenses
	if s.Income > 0 {
		s.SavingsRate = s.NetCashflow / s.Income
	}
	return s
}
