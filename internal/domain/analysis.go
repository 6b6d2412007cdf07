package domain

// Trend classifies the direction of a category's monthly spend.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Importance tags how negotiable a spending category is.
type Importance string

const (
	ImportanceEssential     Importance = "essential"
	ImportanceVariable      Importance = "variable"
	ImportanceDiscretionary Importance = "discretionary"
)

// SpendingPattern is derived per expense category and recomputed on every
// analysis call; it is never persisted.
type SpendingPattern struct {
	Category       string     `json:"category"`
	AverageMonthly float64    `json:"average_monthly"`
	Trend          Trend      `json:"trend"`
	Variability    float64    `json:"variability"` // coefficient of variation, capped at 1
	Importance     Importance `json:"importance"`
}

// RecommendationKind is the action class of a recommendation.
type RecommendationKind string

const (
	RecSavingsAllocation RecommendationKind = "savings_allocation"
	RecSpendingAlert     RecommendationKind = "spending_alert"
	RecGoalAdjustment    RecommendationKind = "goal_adjustment"
)

// Recommendation is an actionable suggestion produced by the rule engine or
// the advisory oracle. Implemented flips to true exactly once, by the
// execution layer.
type Recommendation struct {
	ID          string             `json:"recommendation_id"`
	Date        string             `json:"date"`
	Kind        RecommendationKind `json:"type"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount,omitempty"`
	Reason      string             `json:"reason"`
	Implemented bool               `json:"implemented"`
}

// MonthlyOverview summarizes the trailing month.
type MonthlyOverview struct {
	TotalIncome           float64 `json:"total_income"`
	TotalExpenses         float64 `json:"total_expenses"`
	SavingsRate           float64 `json:"savings_rate"`
	DiscretionarySpending float64 `json:"discretionary_spending"`
}

// Forecast projects progress toward the persona's savings goal.
type Forecast struct {
	MonthsToGoal     int     `json:"months_to_goal"`
	ProjectedSavings float64 `json:"projected_savings"`
	Confidence       float64 `json:"confidence"`
}

// Analysis is the orchestrator's full output. Ephemeral: recomputed per
// request.
type Analysis struct {
	UserID           string            `json:"user_id"`
	AnalysisDate     string            `json:"analysis_date"`
	MonthlyOverview  MonthlyOverview   `json:"monthly_overview"`
	SpendingPatterns []SpendingPattern `json:"spending_patterns"`
	Recommendations  []Recommendation  `json:"recommendations"`
	Forecast         Forecast          `json:"forecast"`
}
