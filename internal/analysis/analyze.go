package analysis

import (
	"time"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// DefaultLookbackMonths is the pattern-analysis window requested by the
// orchestrator.
const DefaultLookbackMonths = 6

// Analyze runs the full local pipeline: trailing-month overview, spending
// patterns, recommendations and goal forecast.
func Analyze(data *domain.FinancialData, now time.Time) (*domain.Analysis, error) {
	summary := Summarize(data.Transactions, now.AddDate(0, -1, 0), now)
	patterns := AnalyzePatterns(data, DefaultLookbackMonths)

	recommendations, err := Recommend(data, patterns, now)
	if err != nil {
		return nil, err
	}

	return &domain.Analysis{
		UserID:       data.Persona.Name,
		AnalysisDate: domain.FormatDate(now),
		MonthlyOverview: domain.MonthlyOverview{
			TotalIncome:           summary.Income,
			TotalExpenses:         summary.Expenses,
			SavingsRate:           summary.SavingsRate,
			DiscretionarySpending: summary.ExpensesByCategory["Entertainment"],
		},
		SpendingPatterns: patterns,
		Recommendations:  recommendations,
		Forecast:         Forecast(data, now),
	}, nil
}

// Merge overlays an oracle-produced partial analysis onto the local one.
// Non-empty oracle fields win; recommendations fall back to the local list
// when the oracle produced none.
func Merge(local, oracle *domain.Analysis) *domain.Analysis {
	if oracle == nil {
		return local
	}

	merged := *local
	if oracle.UserID != "" {
		merged.UserID = oracle.UserID
	}
	if oracle.AnalysisDate != "" {
		merged.AnalysisDate = oracle.AnalysisDate
	}
	if oracle.MonthlyOverview != (domain.MonthlyOverview{}) {
		merged.MonthlyOverview = oracle.MonthlyOverview
	}
	if len(oracle.SpendingPatterns) > 0 {
		merged.SpendingPatterns = oracle.SpendingPatterns
	}
	if len(oracle.Recommendations) > 0 {
		merged.Recommendations = oracle.Recommendations
	}
	if oracle.Forecast != (domain.Forecast{}) {
		merged.Forecast = oracle.Forecast
	}
	return &merged
}
