// Package oracle adapts an external LLM into the advisory collaborator the
// analysis engine may optionally consult. Every failure mode - network,
// non-2xx, malformed output - is absorbed here and converted to an empty or
// partial result; callers fall back to local analysis and never see a parse
// error.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// DefaultModelName is the model consulted for analysis and recommendations.
const DefaultModelName = "gemini-2.0-flash"

// DefaultTimeout bounds every oracle consultation so the synchronous local
// path is never blocked by a slow endpoint.
const DefaultTimeout = 30 * time.Second

// Client wraps the genai client. The zero construction performs no network
// calls; errors surface on first use.
type Client struct {
	genai *genai.Client
	model string
	log   zerolog.Logger
}

// NewClient builds an oracle client. The API key is read from the
// environment by the underlying SDK (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewClient(ctx context.Context, log zerolog.Logger) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("oracle.NewClient: create genai client: %w", err)
	}
	return &Client{genai: gc, model: DefaultModelName, log: log}, nil
}

// Snapshot is the compact aggregation sent to the model instead of the raw
// ledger: small enough for a prompt, rich enough for pattern commentary.
type Snapshot struct {
	Persona            domain.Persona     `json:"persona"`
	Accounts           []domain.Account   `json:"accounts"`
	IncomeByMonth      map[string]float64 `json:"income_by_month"`
	ExpensesByMonth    map[string]float64 `json:"expenses_by_month"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	SavingsRate        float64            `json:"savings_rate"`
	TransactionCount   int                `json:"transaction_count"`
}

// BuildSnapshot aggregates a ledger into the prompt-sized form.
func BuildSnapshot(data *domain.FinancialData) Snapshot {
	s := Snapshot{
		Persona:            data.Persona,
		Accounts:           data.Accounts,
		IncomeByMonth:      make(map[string]float64),
		ExpensesByMonth:    make(map[string]float64),
		ExpensesByCategory: make(map[string]float64),
		TransactionCount:   len(data.Transactions),
	}

	for _, tx := range data.Transactions {
		key := domain.MonthKey(tx.Date)
		switch tx.Kind {
		case domain.KindIncome:
			s.IncomeByMonth[key] += tx.Amount
		case domain.KindExpense:
			s.ExpensesByMonth[key] += tx.Amount
			s.ExpensesByCategory[tx.Category] += tx.Amount
		}
	}

	var totalIncome, totalExpenses float64
	for _, v := range s.IncomeByMonth {
		totalIncome += v
	}
	for _, v := range s.ExpensesByMonth {
		totalExpenses += v
	}
	if totalIncome > 0 {
		s.SavingsRate = (totalIncome - totalExpenses) / totalIncome
	}
	return s
}

const analysisSystemPrompt = "You are an expert financial analysis AI that analyzes financial data and generates actionable insights. " +
	"Your analysis should focus on spending patterns, trends, and actionable intelligence. " +
	"Your response MUST be valid JSON matching the AIFinancialAnalysis schema: " +
	`{"user_id": string, "analysis_date": "YYYY-MM-DD", ` +
	`"monthly_overview": {"total_income": number, "total_expenses": number, "savings_rate": number, "discretionary_spending": number}, ` +
	`"spending_patterns": [{"category": string, "average_monthly": number, "trend": "increasing"|"decreasing"|"stable", "variability": number, "importance": "essential"|"variable"|"discretionary"}], ` +
	`"recommendations": [{"recommendation_id": string, "date": string, "type": "savings_allocation"|"spending_alert"|"goal_adjustment", "description": string, "amount": number, "reason": string, "implemented": false}], ` +
	`"forecast": {"months_to_goal": number, "projected_savings": number, "confidence": number}}. ` +
	"DO NOT include any text outside the JSON structure. Only return the JSON object."

// AskForAnalysis sends the snapshot to the model and returns whatever
// partial analysis could be recovered. A nil result with nil error means
// the oracle produced nothing usable; the caller keeps its local analysis.
func (c *Client) AskForAnalysis(ctx context.Context, snapshot Snapshot) (*domain.Analysis, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("AskForAnalysis: marshal snapshot: %w", err)
	}

	raw, err := c.generate(ctx, analysisSystemPrompt,
		"Analyze this financial data and provide insights as JSON: "+string(payload))
	if err != nil {
		return nil, fmt.Errorf("AskForAnalysis: %w", err)
	}

	var result domain.Analysis
	if err := decodeModelJSON(raw, &result); err != nil {
		c.log.Warn().Err(err).Msg("Oracle analysis output not parseable, discarding")
		return nil, nil
	}
	return &result, nil
}

const recommendationSystemPrompt = "You are an AI financial advisor that analyzes financial data and generates actionable recommendations. " +
	"Focus on optimizing savings toward goals while maintaining a balance for discretionary spending. " +
	"Your response MUST be a valid JSON array of objects with fields: " +
	`recommendation_id (string), date ("YYYY-MM-DD"), type ("savings_allocation"|"spending_alert"|"goal_adjustment"), ` +
	"description (string), amount (number, for allocations), reason (string), implemented (always false). " +
	"For savings_allocation recommendations, calculate specific amounts to transfer based on the financial data. " +
	"DO NOT include any text outside the JSON structure. Only return the JSON array."

// AskForRecommendations asks the model for a recommendation list. It
// degrades to an empty slice on any failure. categoryOrder fixes the order
// expense lines appear in so the prompt is stable across calls.
func (c *Client) AskForRecommendations(ctx context.Context, income float64, expensesByCategory map[string]float64,
	categoryOrder []string, goalAmount, currentSavings float64, targetDate, extraContext string) []domain.Recommendation {

	expenseLines := formatExpenseLines(expensesByCategory, categoryOrder)

	prompt := fmt.Sprintf(`Here is my current financial situation:
- Monthly Income: %.2f AED
- Monthly Expenses:
%s- Savings Goal: %.2f AED
- Current Savings: %.2f AED
- Target Date: %s

Please provide specific recommendations for:
1. How much to allocate to my Save Pot (long-term savings)
2. How much to allocate to my Play Pot (discretionary spending)
3. Any spending categories I should adjust
4. How to prepare for any upcoming large expenses

Remember to return ONLY a JSON array with no explanatory text.`,
		income, expenseLines, goalAmount, currentSavings, targetDate)

	if extraContext != "" {
		prompt += "\n\n" + extraContext
	}

	raw, err := c.generate(ctx, recommendationSystemPrompt, prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("Oracle recommendation call failed")
		return nil
	}

	var recs []domain.Recommendation
	if err := decodeModelJSON(raw, &recs); err != nil {
		c.log.Warn().Err(err).Msg("Oracle recommendation output not parseable, discarding")
		return nil
	}

	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = "REC_AI_" + uuid.NewString()
		}
		recs[i].Implemented = false
	}
	return recs
}

// formatExpenseLines renders the per-category bullet list, following the
// given category order first and any stragglers alphabetically.
func formatExpenseLines(expensesByCategory map[string]float64, categoryOrder []string) string {
	var b strings.Builder
	listed := make(map[string]bool, len(categoryOrder))

	for _, category := range categoryOrder {
		if amount, ok := expensesByCategory[category]; ok && !listed[category] {
			listed[category] = true
			fmt.Fprintf(&b, "  - %s: %.2f AED\n", category, amount)
		}
	}

	var rest []string
	for category := range expensesByCategory {
		if !listed[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	for _, category := range rest {
		fmt.Fprintf(&b, "  - %s: %.2f AED\n", category, expensesByCategory[category])
	}
	return b.String()
}

// generate performs one model call and returns the raw text.
func (c *Client) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemPrompt + "\n\n" + userPrompt},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return raw, nil
}
