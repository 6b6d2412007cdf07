package oracle

import (
	"context"
	"fmt"
	"time"
)

// InterestRates is the headline rate set for the user's market.
type InterestRates struct {
	Mortgage     float64 `json:"mortgage"`
	Savings      float64 `json:"savings"`
	PersonalLoan float64 `json:"personalLoan"`
}

// MarketTrends describes the broad direction of the local economy.
type MarketTrends struct {
	Housing   string  `json:"housing"`
	Stocks    string  `json:"stocks"`
	Inflation float64 `json:"inflation"`
}

// EconomicIndicators are the macro figures a prompt may cite.
type EconomicIndicators struct {
	GDPGrowth             float64 `json:"gdpGrowth"`
	UnemploymentRate      float64 `json:"unemploymentRate"`
	ConsumerSpendingTrend string  `json:"consumerSpendingTrend"`
}

// NewsItem is one headline with its judged relevance to the user's goals.
type NewsItem struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Impact    string `json:"impact"`
	Relevance int    `json:"relevance"`
}

// MarketData enriches recommendation prompts. Local analysis never depends
// on it; absence or failure must not change analysis results.
type MarketData struct {
	InterestRates      InterestRates      `json:"interestRates"`
	MarketTrends       MarketTrends       `json:"marketTrends"`
	EconomicIndicators EconomicIndicators `json:"economicIndicators"`
	FinancialNews      []NewsItem         `json:"financialNews"`
	Updated            string             `json:"updated"`
}

const marketSystemPrompt = "You are a financial data assistant with access to current information. " +
	"Use your knowledge to provide the most up-to-date financial data related to the user's request. " +
	"Format your response as JSON: " +
	`{"interestRates": {"mortgage": number, "savings": number, "personalLoan": number}, ` +
	`"marketTrends": {"housing": string, "stocks": string, "inflation": number}, ` +
	`"economicIndicators": {"gdpGrowth": number, "unemploymentRate": number, "consumerSpendingTrend": string}, ` +
	`"financialNews": [{"headline": string, "summary": string, "impact": string, "relevance": number}], ` +
	`"updated": string}. Return only JSON data with no additional text.`

// MarketContext asks the model for current market conditions. The fallback
// shape (zero rates, "unknown" trends) is returned on any failure so
// callers can render it without nil checks.
func (c *Client) MarketContext(ctx context.Context, country, goals, timeframe string) (*MarketData, error) {
	prompt := fmt.Sprintf(`I need current financial information for %s relevant to these financial goals: %s. I'm planning %s ahead.

Please provide:
1. Current interest rates (mortgage, savings accounts, personal loans)
2. Market trends (housing market, stock market, inflation rate)
3. Economic indicators (GDP growth, unemployment, consumer spending)
4. Recent financial news that might impact my financial decisions`,
		country, goals, timeframe)

	raw, err := c.generate(ctx, marketSystemPrompt, prompt)
	if err != nil {
		return FallbackMarketData(), fmt.Errorf("MarketContext: %w", err)
	}

	var data MarketData
	if err := decodeModelJSON(raw, &data); err != nil {
		c.log.Warn().Err(err).Msg("Market context output not parseable, using fallback")
		return FallbackMarketData(), nil
	}

	if data.Updated == "" {
		data.Updated = time.Now().Format(time.RFC3339)
	}
	return &data, nil
}

// PromptContext renders market data into the extra-context block appended
// to recommendation prompts.
func (m *MarketData) PromptContext() string {
	s := fmt.Sprintf(`Current market conditions to consider:
- Current mortgage interest rate: %.2f%%
- Savings account interest rate: %.2f%%
- Housing market trend: %s
- Inflation rate: %.2f%%

Economic outlook:
- GDP growth: %.2f%%
- Consumer spending trend: %s
`,
		m.InterestRates.Mortgage, m.InterestRates.Savings, m.MarketTrends.Housing, m.MarketTrends.Inflation,
		m.EconomicIndicators.GDPGrowth, m.EconomicIndicators.ConsumerSpendingTrend)

	if len(m.FinancialNews) > 0 {
		s += "\nRecent financial news:\n"
		for _, n := range m.FinancialNews {
			s += fmt.Sprintf("- %s: %s (Impact: %s)\n", n.Headline, n.Summary, n.Impact)
		}
	}

	s += "\nConsider these current economic conditions when making recommendations."
	return s
}

// FallbackMarketData is the shape served when no model is configured or the
// call fails: zero rates and "unknown" trends.
func FallbackMarketData() *MarketData {
	return &MarketData{
		MarketTrends:       MarketTrends{Housing: "unknown", Stocks: "unknown"},
		EconomicIndicators: EconomicIndicators{ConsumerSpendingTrend: "unknown"},
		FinancialNews:      []NewsItem{},
		Updated:            time.Now().Format(time.RFC3339),
	}
}
