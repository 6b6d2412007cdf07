package analysis

import (
	"math"
	"time"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// monthsToGoalSentinel stands in for "never at this rate" when the trailing
// cashflow is not positive.
const monthsToGoalSentinel = 999

// Forecast projects progress toward the mortgage-savings goal from the
// trailing three months of cashflow. Without that goal or a Save Pot it
// returns the zero forecast rather than an error.
func Forecast(data *domain.FinancialData, now time.Time) domain.Forecast {
	goal := data.GoalByID(MortgageGoalID)
	if goal == nil {
		return domain.Forecast{}
	}
	savePot := data.AccountByKind(domain.AccountSavePot)
	if savePot == nil {
		return domain.Forecast{}
	}

	summary := Summarize(data.Transactions, now.AddDate(0, -3, 0), now)
	monthlyCashflow := summary.NetCashflow / 3

	remaining := goal.TargetAmount - savePot.Balance
	monthsToGoal := monthsToGoalSentinel
	if monthlyCashflow > 0 {
		monthsToGoal = int(math.Ceil(remaining / monthlyCashflow))
	}

	monthsToTarget := monthsUntil(goal.TargetDate, now)
	projected := savePot.Balance + monthlyCashflow*float64(monthsToTarget)

	// Confidence is capped at 1 but deliberately not floored at 0: a deeply
	// negative trailing cashflow shows up as negative confidence.
	return domain.Forecast{
		MonthsToGoal:     monthsToGoal,
		ProjectedSavings: projected,
		Confidence:       math.Min(1, projected/goal.TargetAmount),
	}
}
