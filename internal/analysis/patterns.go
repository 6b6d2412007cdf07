package analysis

import (
	"math"

	"github.com/wealthsim/persona-finance/internal/domain"
)

var essentialCategories = map[string]bool{
	"Housing":   true,
	"Groceries": true,
	"Utilities": true,
}

var discretionaryCategories = map[string]bool{
	"Entertainment": true,
	"Self-care":     true,
	"Dining":        true,
}

// AnalyzePatterns derives a SpendingPattern per expense category.
// lookbackMonths is accepted for interface stability but the whole history
// is analyzed; callers relying on a true window should filter first.
// Categories with fewer than two transactions are skipped.
func AnalyzePatterns(data *domain.FinancialData, lookbackMonths int) []domain.SpendingPattern {
	_ = lookbackMonths

	var order []string
	byCategory := make(map[string][]domain.Transaction)
	for _, tx := range data.Transactions {
		if tx.Kind != domain.KindExpense {
			continue
		}
		if _, seen := byCategory[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		byCategory[tx.Category] = append(byCategory[tx.Category], tx)
	}

	var patterns []domain.SpendingPattern
	for _, category := range order {
		txs := byCategory[category]
		if len(txs) < 2 {
			continue
		}

		var bucketOrder []string
		buckets := make(map[string]float64)
		for _, tx := range txs {
			key := domain.MonthKey(tx.Date)
			if _, seen := buckets[key]; !seen {
				bucketOrder = append(bucketOrder, key)
			}
			buckets[key] += tx.Amount
		}

		values := make([]float64, 0, len(bucketOrder))
		for _, key := range bucketOrder {
			values = append(values, buckets[key])
		}

		mean := meanOf(values)
		variability := 0.0
		if mean > 0 {
			variability = math.Min(stddevOf(values, mean)/mean, 1)
		}

		patterns = append(patterns, domain.SpendingPattern{
			Category:       category,
			AverageMonthly: mean,
			Trend:          classifyTrend(values),
			Variability:    variability,
			Importance:     classifyImportance(category),
		})
	}

	return patterns
}

// classifyTrend fits an ordinary least-squares slope over the monthly sums
// and compares it to 5% of the mean. Fewer than three buckets is stable.
func classifyTrend(values []float64) domain.Trend {
	if len(values) < 3 {
		return domain.TrendStable
	}

	n := float64(len(values))
	xMean := (n - 1) / 2
	yMean := meanOf(values)

	var numerator, denominator float64
	for i, y := range values {
		dx := float64(i) - xMean
		numerator += dx * (y - yMean)
		denominator += dx * dx
	}

	slope := 0.0
	if denominator != 0 {
		slope = numerator / denominator
	}

	switch {
	case slope > 0.05*yMean:
		return domain.TrendIncreasing
	case slope < -0.05*yMean:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func classifyImportance(category string) domain.Importance {
	switch {
	case essentialCategories[category]:
		return domain.ImportanceEssential
	case discretionaryCategories[category]:
		return domain.ImportanceDiscretionary
	default:
		return domain.ImportanceVariable
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddevOf is the population standard deviation around the given mean.
func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
