// Package handlers implements the HTTP endpoints for the persona ledgers,
// their analysis, and the recommendation actions.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthsim/persona-finance/internal/analysis"
	"github.com/wealthsim/persona-finance/internal/api/middleware"
	"github.com/wealthsim/persona-finance/internal/oracle"
	"github.com/wealthsim/persona-finance/internal/session"
	"github.com/wealthsim/persona-finance/internal/simulate"
)

// PersonasHandler serves the per-persona endpoints. The oracle client is
// nil when no API key is configured; every endpoint then answers from
// local analysis alone.
type PersonasHandler struct {
	store  *session.Store
	exec   *session.Executor
	oracle *oracle.Client
	log    zerolog.Logger
}

// NewPersonasHandler creates the persona endpoint handler.
func NewPersonasHandler(store *session.Store, exec *session.Executor, oracleClient *oracle.Client, log zerolog.Logger) *PersonasHandler {
	return &PersonasHandler{
		store:  store,
		exec:   exec,
		oracle: oracleClient,
		log:    log,
	}
}

// monthsParam reads the months query parameter, defaulting when absent or
// unparseable.
func monthsParam(r *http.Request) int {
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil || months <= 0 {
		return simulate.DefaultMonths
	}
	return months
}

// Data handles GET /api/personas/{id}/data
func (h *PersonasHandler) Data(w http.ResponseWriter, r *http.Request, personaID string) {
	sess, err := h.store.Get(personaID, monthsParam(r))
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

// Analysis handles GET /api/personas/{id}/analysis
//
// With oracle=true the local analysis is sent to the model and the reply
// merged over it; any oracle failure falls back to the local result. The
// response names its source so clients can tell the difference.
func (h *PersonasHandler) Analysis(w http.ResponseWriter, r *http.Request, personaID string) {
	sess, err := h.store.Get(personaID, monthsParam(r))
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}

	data := sess.Snapshot()
	result, err := analysis.Analyze(data, time.Now())
	if err != nil {
		h.log.Error().Err(err).Str("persona", personaID).Msg("Local analysis failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	source := "local"
	if r.URL.Query().Get("oracle") == "true" && h.oracle != nil {
		ctx, cancel := context.WithTimeout(r.Context(), oracle.DefaultTimeout)
		defer cancel()

		remote, err := h.oracle.AskForAnalysis(ctx, oracle.BuildSnapshot(data))
		switch {
		case err != nil:
			h.log.Warn().Err(err).Str("persona", personaID).Msg("Oracle analysis failed, serving local result")
			source = "local_fallback"
		case remote == nil:
			source = "local_fallback"
		default:
			result = analysis.Merge(result, remote)
			source = "oracle+local"
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"source":   source,
		"analysis": result,
	})
}

// actionRequest is the body for POST /api/personas/{id}/actions.
type actionRequest struct {
	Action           string `json:"action"`
	RecommendationID string `json:"recommendationId"`
	Months           int    `json:"months"`
}

// Actions handles POST /api/personas/{id}/actions
func (h *PersonasHandler) Actions(w http.ResponseWriter, r *http.Request, personaID string) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Months <= 0 {
		req.Months = simulate.DefaultMonths
	}

	sess, err := h.store.Get(personaID, req.Months)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}

	switch req.Action {
	case "implement_recommendation":
		h.implementRecommendation(w, sess, req.RecommendationID)

	case "reset_simulation":
		h.store.Reset(personaID)
		if _, err := h.store.Get(personaID, req.Months); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, "Failed to reset simulation")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Simulation reset successfully",
		})

	case "get_current_state":
		data := sess.Snapshot()
		result, err := analysis.Analyze(data, time.Now())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, "Analysis failed")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Current financial state retrieved",
			"data": map[string]interface{}{
				"financialData":              data,
				"analysis":                   result,
				"implementedRecommendations": sess.Implemented(),
			},
		})

	default:
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No action taken",
		})
	}
}

func (h *PersonasHandler) implementRecommendation(w http.ResponseWriter, sess *session.Session, recommendationID string) {
	if recommendationID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "recommendationId is required")
		return
	}

	result, err := analysis.Analyze(sess.Snapshot(), time.Now())
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	res, err := h.exec.Implement(sess, result.Recommendations, recommendationID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrRecommendationNotFound):
			middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Recommendation with ID %s not found", recommendationID))
		case errors.Is(err, session.ErrAlreadyImplemented):
			middleware.WriteError(w, http.StatusBadRequest, "This recommendation has already been implemented")
		case errors.Is(err, session.ErrUnknownTarget):
			middleware.WriteError(w, http.StatusBadRequest, "Unknown target account for allocation")
		case errors.Is(err, session.ErrInsufficientFunds):
			middleware.WriteError(w, http.StatusBadRequest, "Insufficient funds in source account")
		default:
			middleware.WriteError(w, http.StatusInternalServerError, "Account not found")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": res.Message,
		"data":    res,
	})
}

// autoActionRequest is the body for POST /api/personas/{id}/auto-actions.
type autoActionRequest struct {
	AutoExecuteMode string `json:"autoExecuteMode"`
	Months          int    `json:"months"`
}

// AutoActions handles POST /api/personas/{id}/auto-actions
func (h *PersonasHandler) AutoActions(w http.ResponseWriter, r *http.Request, personaID string) {
	var req autoActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AutoExecuteMode == "" {
		req.AutoExecuteMode = string(session.ModeDryRun)
	}
	if req.Months <= 0 {
		req.Months = simulate.DefaultMonths
	}

	mode, err := session.ParseAutoMode(req.AutoExecuteMode)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid autoExecuteMode. Supported values are: full_auto, semi_auto, dry_run")
		return
	}

	sess, err := h.store.Get(personaID, req.Months)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}

	result, err := analysis.Analyze(sess.Snapshot(), time.Now())
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	run := h.exec.AutoRun(sess, result.Recommendations, mode)

	remaining := make([]interface{}, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		if !sess.IsImplemented(rec.ID) {
			remaining = append(remaining, rec)
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"mode":    run.Mode,
		"message": fmt.Sprintf("%s mode complete. %d recommendations processed.", strings.ReplaceAll(string(mode), "_", " "), len(run.Implemented)),
		"data": map[string]interface{}{
			"implementedRecommendations": run.Implemented,
			"logs":                       run.Logs,
			"financialData":              sess.Snapshot(),
			"remainingRecommendations":   remaining,
		},
	})
}
