package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// Rule constants for the recommendation engine.
const (
	// SavingsTargetPercentage is the share of income the engine steers
	// toward savings.
	SavingsTargetPercentage = 0.20
	// EmergencyFundMin is declared alongside the other thresholds but is
	// not consulted by any rule.
	EmergencyFundMin = 10000.0
	// PlayPotPercentage caps discretionary allocation at this share of income.
	PlayPotPercentage = 0.10
	// MinCheckingBalance is the floor the checking account must keep after
	// a savings allocation.
	MinCheckingBalance = 5000.0
)

// MortgageGoalID tags the goal the savings-allocation rule and the
// forecaster key off.
const MortgageGoalID = "MORTGAGE_SAVINGS"

// thirtyDayMonth approximates a month when counting toward a target date.
const thirtyDayMonth = 30 * 24 * time.Hour

// ErrMissingAccount is returned when the persona lacks one of the three
// required accounts. This is the engine's only hard failure.
var ErrMissingAccount = errors.New("required account not found")

// schoolFeeMonths are the months of year term fees typically land in.
var schoolFeeMonths = [3]int{1, 5, 9}

// Recommend evaluates the rule set against the trailing calendar month and
// returns zero or more recommendations in rule order.
func Recommend(data *domain.FinancialData, patterns []domain.SpendingPattern, now time.Time) ([]domain.Recommendation, error) {
	summary := Summarize(data.Transactions, now.AddDate(0, -1, 0), now)

	checking := data.AccountByKind(domain.AccountChecking)
	savePot := data.AccountByKind(domain.AccountSavePot)
	playPot := data.AccountByKind(domain.AccountPlayPot)
	if checking == nil || savePot == nil || playPot == nil {
		return nil, fmt.Errorf("recommend: %w", ErrMissingAccount)
	}

	var recs []domain.Recommendation
	today := domain.FormatDate(now)
	actualSavings := summary.Income - summary.Expenses
	mortgageGoal := data.GoalByID(MortgageGoalID)

	if actualSavings > 0 {
		// Rule 1: savings allocation. 80% of spare cash, bounded by the
		// checking floor, raised to the mortgage goal's monthly requirement
		// when the balance can carry it.
		savingsAllocation := math.Min(actualSavings*0.8, checking.Balance-MinCheckingBalance)

		if mortgageGoal != nil {
			monthsToTarget := monthsUntil(mortgageGoal.TargetDate, now)
			if monthsToTarget > 0 {
				monthlyNeeded := (mortgageGoal.TargetAmount - mortgageGoal.CurrentAmount) / float64(monthsToTarget)
				if savingsAllocation < monthlyNeeded && checking.Balance > MinCheckingBalance+monthlyNeeded {
					savingsAllocation = monthlyNeeded
				}
			}
		}

		savingsAllocation = math.Max(savingsAllocation, 0)
		if savingsAllocation > 0 {
			recs = append(recs, domain.Recommendation{
				ID:          fmt.Sprintf("REC_SAVE_%d", now.UnixMilli()),
				Date:        today,
				Kind:        domain.RecSavingsAllocation,
				Description: fmt.Sprintf("Transfer %.2f AED to Save Pot", savingsAllocation),
				Amount:      savingsAllocation,
				Reason:      "Optimal savings allocation based on current income, expenses, and goals",
			})
		}

		// Rule 2: play pot allocation from whatever the savings rule left.
		leftover := actualSavings - savingsAllocation
		playAllocation := math.Min(leftover*0.5, summary.Income*PlayPotPercentage)
		if playAllocation > 0 {
			recs = append(recs, domain.Recommendation{
				ID:          fmt.Sprintf("REC_PLAY_%d", now.UnixMilli()),
				Date:        today,
				Kind:        domain.RecSavingsAllocation,
				Description: fmt.Sprintf("Transfer %.2f AED to Play Pot", playAllocation),
				Amount:      playAllocation,
				Reason:      "Allocation for discretionary spending based on your recent financial performance",
			})
		}
	}

	// Rule 3: alert on rising, highly variable, non-essential categories.
	for _, pattern := range patterns {
		if pattern.Trend == domain.TrendIncreasing &&
			pattern.Importance != domain.ImportanceEssential &&
			pattern.Variability > 0.3 {
			recs = append(recs, domain.Recommendation{
				ID:          fmt.Sprintf("REC_ALERT_%d_%s", now.UnixMilli(), strings.ReplaceAll(pattern.Category, " ", "")),
				Date:        today,
				Kind:        domain.RecSpendingAlert,
				Description: fmt.Sprintf("Your %s spending is trending upward", pattern.Category),
				Reason:      fmt.Sprintf("%s spending has increased and is showing high variability. Consider reviewing these expenses.", pattern.Category),
			})
		}
	}

	// Rule 4: term fees land on fixed months; nudge when the next one is
	// at most two months out.
	if feePattern := findPattern(patterns, "School Fees"); feePattern != nil {
		monthsToNextFee := monthsToNextFeeMonth(int(now.Month()))
		if monthsToNextFee <= 2 {
			recs = append(recs, domain.Recommendation{
				ID:          fmt.Sprintf("REC_PREP_%d", now.UnixMilli()),
				Date:        today,
				Kind:        domain.RecGoalAdjustment,
				Description: "Prepare for upcoming school fees",
				Amount:      feePattern.AverageMonthly,
				Reason: fmt.Sprintf("School fees of approximately %.2f AED will be due in %d months. Consider setting aside funds now.",
					feePattern.AverageMonthly, monthsToNextFee),
			})
		}
	}

	return recs, nil
}

// monthsUntil counts 30-day months from now to the target date, rounded up.
func monthsUntil(targetDate string, now time.Time) int {
	target, err := domain.ParseDate(targetDate)
	if err != nil {
		return 0
	}
	return int(math.Ceil(float64(target.Sub(now)) / float64(thirtyDayMonth)))
}

// monthsToNextFeeMonth finds the distance to the nearest fee month strictly
// after the current one, wrapping to January when the year is out of them.
func monthsToNextFeeMonth(currentMonth int) int {
	for _, m := range schoolFeeMonths {
		if m > currentMonth {
			return m - currentMonth
		}
	}
	return 12 - currentMonth + schoolFeeMonths[0]
}

func findPattern(patterns []domain.SpendingPattern, category string) *domain.SpendingPattern {
	for i := range patterns {
		if patterns[i].Category == category {
			return &patterns[i]
		}
	}
	return nil
}
