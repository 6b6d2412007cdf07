package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthsim/persona-finance/internal/analysis"
	"github.com/wealthsim/persona-finance/internal/api/middleware"
	"github.com/wealthsim/persona-finance/internal/domain"
	"github.com/wealthsim/persona-finance/internal/oracle"
	"github.com/wealthsim/persona-finance/internal/session"
)

// OracleHandler serves the model-backed endpoints. Every response degrades
// to a usable fallback when the model is unavailable.
type OracleHandler struct {
	store  *session.Store
	client *oracle.Client
	log    zerolog.Logger
}

// NewOracleHandler creates the oracle endpoint handler; client may be nil.
func NewOracleHandler(store *session.Store, client *oracle.Client, log zerolog.Logger) *OracleHandler {
	return &OracleHandler{store: store, client: client, log: log}
}

// Recommendations handles GET /api/recommendations/ai
//
// Query parameters: persona (default fatima), months, market=false to skip
// market context enrichment. Serves a canned fallback recommendation when
// the model produces nothing.
func (h *OracleHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	personaID := r.URL.Query().Get("persona")
	if personaID == "" {
		personaID = "fatima"
	}

	sess, err := h.store.Get(personaID, monthsParam(r))
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}

	data := sess.Snapshot()
	now := time.Now()
	summary := analysis.Summarize(data.Transactions, now.AddDate(0, -1, 0), now)

	if len(data.Persona.Goals) == 0 {
		middleware.WriteError(w, http.StatusInternalServerError, "Persona has no financial goals")
		return
	}
	goal := data.Persona.Goals[0]

	var currentSavings float64
	if pot := data.AccountByKind(domain.AccountSavePot); pot != nil {
		currentSavings = pot.Balance
	}

	if h.client == nil {
		h.writeFallback(w, now)
		return
	}

	ctx := r.Context()
	extraContext := ""
	if r.URL.Query().Get("market") != "false" {
		goals := make([]string, 0, len(data.Persona.Goals))
		for _, g := range data.Persona.Goals {
			goals = append(goals, strings.ToLower(g.Description))
		}
		md, err := h.client.MarketContext(ctx, "United Arab Emirates", strings.Join(goals, ","), "12 months")
		if err != nil {
			h.log.Warn().Err(err).Msg("Market context unavailable, prompting without it")
		}
		extraContext = md.PromptContext()
	}

	recs := h.client.AskForRecommendations(ctx, summary.Income, summary.ExpensesByCategory,
		summary.CategoryOrder, goal.TargetAmount, currentSavings, goal.TargetDate, extraContext)
	if len(recs) == 0 {
		h.writeFallback(w, now)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"recommendations": recs,
		"summary": map[string]interface{}{
			"income":         summary.Income,
			"expenses":       summary.ExpensesByCategory,
			"totalExpenses":  summary.Expenses,
			"goal":           goal,
			"currentSavings": currentSavings,
		},
	})
}

func (h *OracleHandler) writeFallback(w http.ResponseWriter, now time.Time) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": false,
		"message": "Failed to generate AI recommendations. Using fallback recommendations.",
		"recommendations": []domain.Recommendation{{
			ID:          fmt.Sprintf("REC_FALLBACK_%d", now.UnixMilli()),
			Date:        domain.FormatDate(now),
			Kind:        domain.RecSavingsAllocation,
			Description: "Transfer 5000 AED to Save Pot",
			Amount:      5000,
			Reason:      "Fallback recommendation to continue saving toward your mortgage goal",
			Implemented: false,
		}},
	})
}

// MarketContext handles GET /api/market-context
func (h *OracleHandler) MarketContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	country := q.Get("country")
	if country == "" {
		country = "United Arab Emirates"
	}
	timeframe := q.Get("timeframe")
	if timeframe == "" {
		timeframe = "12 months"
	}

	if h.client == nil {
		middleware.WriteJSON(w, http.StatusOK, oracle.FallbackMarketData())
		return
	}

	md, err := h.client.MarketContext(r.Context(), country, q.Get("goals"), timeframe)
	if err != nil {
		h.log.Warn().Err(err).Msg("Market context call failed, serving fallback")
	}
	middleware.WriteJSON(w, http.StatusOK, md)
}
