package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// AutoMode selects how aggressively AutoRun executes recommendations.
type AutoMode string

const (
	ModeDryRun   AutoMode = "dry_run"
	ModeSemiAuto AutoMode = "semi_auto"
	ModeFullAuto AutoMode = "full_auto"
)

// ParseAutoMode validates a client-supplied mode string.
func ParseAutoMode(s string) (AutoMode, error) {
	switch AutoMode(s) {
	case ModeDryRun, ModeSemiAuto, ModeFullAuto:
		return AutoMode(s), nil
	}
	return "", fmt.Errorf("session: invalid auto mode %q, supported values are: full_auto, semi_auto, dry_run", s)
}

var (
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrAlreadyImplemented     = errors.New("recommendation already implemented")
	ErrUnknownTarget          = errors.New("unknown target account for allocation")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInsufficientFunds      = errors.New("insufficient funds in source account")
)

// Executor applies recommendations to a session: it moves money between the
// checking account and the pots, advances linked goals, and records the
// resulting transfer transactions.
type Executor struct {
	log zerolog.Logger
	now func() time.Time
}

// NewExecutor returns an executor logging through the given logger.
func NewExecutor(log zerolog.Logger) *Executor {
	return &Executor{log: log, now: time.Now}
}

// Priority ranks a recommendation for auto-execution ordering. Save Pot
// allocations and goal adjustments run before everything else.
func Priority(rec domain.Recommendation) int {
	switch rec.Kind {
	case domain.RecSavingsAllocation:
		if strings.Contains(strings.ToLower(rec.Description), "save pot") {
			return 100
		}
		return 80
	case domain.RecGoalAdjustment:
		return 90
	case domain.RecSpendingAlert:
		return 60
	default:
		return 50
	}
}

// ImplementResult reports a single executed recommendation. Transaction is
// nil when the recommendation was acknowledged without moving money.
type ImplementResult struct {
	Recommendation domain.Recommendation `json:"recommendation"`
	Transaction    *domain.Transaction   `json:"transaction,omitempty"`
	Message        string                `json:"message"`
}

// Implement executes one recommendation by id against the session. Savings
// allocations transfer money; every other kind is only marked implemented.
// The recommendation must come from the supplied slice, which is the
// analysis output for the session's current ledger.
func (e *Executor) Implement(sess *Session, recs []domain.Recommendation, recommendationID string) (*ImplementResult, error) {
	var rec *domain.Recommendation
	for i := range recs {
		if recs[i].ID == recommendationID {
			rec = &recs[i]
			break
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("implement %s: %w", recommendationID, ErrRecommendationNotFound)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.isImplementedLocked(recommendationID) {
		return nil, fmt.Errorf("implement %s: %w", recommendationID, ErrAlreadyImplemented)
	}

	if rec.Kind != domain.RecSavingsAllocation {
		rec.Implemented = true
		sess.implemented = append(sess.implemented, *rec)
		e.log.Info().
			Str("persona", sess.personaID).
			Str("recommendation_id", rec.ID).
			Str("kind", string(rec.Kind)).
			Msg("recommendation acknowledged")
		return &ImplementResult{
			Recommendation: *rec,
			Message:        fmt.Sprintf("Acknowledged recommendation: %s", rec.Description),
		}, nil
	}

	tx, target, err := e.transferLocked(sess, rec, rec.Description, "Transfer", fmt.Sprintf("T%d", e.now().UnixMilli()))
	if err != nil {
		return nil, fmt.Errorf("implement %s: %w", recommendationID, err)
	}

	rec.Implemented = true
	sess.implemented = append(sess.implemented, *rec)
	e.log.Info().
		Str("persona", sess.personaID).
		Str("recommendation_id", rec.ID).
		Float64("amount", rec.Amount).
		Str("target", string(target.Kind)).
		Msg("recommendation implemented")
	return &ImplementResult{
		Recommendation: *rec,
		Transaction:    tx,
		Message:        fmt.Sprintf("Successfully transferred %.2f AED from Checking to %s", rec.Amount, target.Kind),
	}, nil
}

// AutoResult reports one AutoRun pass.
type AutoResult struct {
	Mode        AutoMode                `json:"mode"`
	Implemented []domain.Recommendation `json:"implementedRecommendations"`
	Logs        []string                `json:"logs"`
}

// AutoRun processes the pending recommendations in priority order under the
// given mode. Already-implemented ids are skipped up front. The result's
// Logs narrate every decision so dry runs are a faithful preview.
func (e *Executor) AutoRun(sess *Session, recs []domain.Recommendation, mode AutoMode) AutoResult {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	pending := make([]domain.Recommendation, 0, len(recs))
	for _, r := range recs {
		if !sess.isImplementedLocked(r.ID) {
			pending = append(pending, r)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return Priority(pending[i]) > Priority(pending[j])
	})

	res := AutoResult{Mode: mode, Implemented: []domain.Recommendation{}, Logs: []string{}}

	switch mode {
	case ModeDryRun:
		for _, rec := range pending {
			eligible := rec.Kind == domain.RecSavingsAllocation || rec.Kind == domain.RecGoalAdjustment
			if eligible {
				res.Logs = append(res.Logs, fmt.Sprintf("[DRY RUN] Would implement: %s", rec.Description))
			} else {
				res.Logs = append(res.Logs, fmt.Sprintf("[DRY RUN] Would NOT implement: %s", rec.Description))
			}
			if rec.Kind == domain.RecSavingsAllocation {
				res.Logs = append(res.Logs, fmt.Sprintf("[DRY RUN] Would transfer %.2f AED", rec.Amount))
			}
		}

	case ModeSemiAuto:
		for _, rec := range pending {
			if rec.Kind != domain.RecSavingsAllocation || Priority(rec) < 90 {
				res.Logs = append(res.Logs, fmt.Sprintf("Requires user approval: %s", rec.Description))
				continue
			}
			e.autoTransfer(sess, rec, "[SEMI-AUTO] ", "Semi-auto implemented", &res)
		}

	case ModeFullAuto:
		for _, rec := range pending {
			switch rec.Kind {
			case domain.RecSavingsAllocation:
				e.autoTransfer(sess, rec, "[AUTO] ", "Auto-implemented", &res)
			case domain.RecGoalAdjustment:
				rec.Implemented = true
				sess.implemented = append(sess.implemented, rec)
				res.Implemented = append(res.Implemented, rec)
				res.Logs = append(res.Logs, fmt.Sprintf("Auto-acknowledged: %s", rec.Description))
			default:
				res.Logs = append(res.Logs, fmt.Sprintf("Skipped recommendation: %s (not eligible for auto-implementation)", rec.Description))
			}
		}
	}

	e.log.Info().
		Str("persona", sess.personaID).
		Str("mode", string(mode)).
		Int("implemented", len(res.Implemented)).
		Msg("auto-execution pass complete")
	return res
}

// autoTransfer executes one savings allocation during an AutoRun pass,
// recording the outcome in res. Failures skip the recommendation instead of
// aborting the pass.
func (e *Executor) autoTransfer(sess *Session, rec domain.Recommendation, descPrefix, logVerb string, res *AutoResult) {
	id := fmt.Sprintf("T%d_AUTO_%d", e.now().UnixMilli(), len(res.Implemented))
	tx, target, err := e.transferLocked(sess, &rec, descPrefix+rec.Description, "Auto Transfer", id)
	if err != nil {
		reason := "account not found"
		switch {
		case errors.Is(err, ErrUnknownTarget):
			reason = "unknown target account"
		case errors.Is(err, ErrInsufficientFunds):
			reason = "insufficient funds"
		}
		res.Logs = append(res.Logs, fmt.Sprintf("Skipped recommendation: %s (%s)", rec.Description, reason))
		return
	}

	rec.Implemented = true
	sess.implemented = append(sess.implemented, rec)
	res.Implemented = append(res.Implemented, rec)
	res.Logs = append(res.Logs, fmt.Sprintf("%s: %s - Transferred %.2f AED from Checking to %s",
		logVerb, rec.Description, tx.Amount, target.Kind))
}

// transferLocked moves rec.Amount from the checking account to the pot the
// description names. The target is resolved purely from the description
// text, so recommendation phrasing is part of the contract. Callers hold
// the session mutex.
func (e *Executor) transferLocked(sess *Session, rec *domain.Recommendation, description, category, txID string) (*domain.Transaction, *domain.Account, error) {
	desc := strings.ToLower(rec.Description)
	var targetKind domain.AccountKind
	switch {
	case strings.Contains(desc, "save pot"):
		targetKind = domain.AccountSavePot
	case strings.Contains(desc, "play pot"):
		targetKind = domain.AccountPlayPot
	default:
		return nil, nil, ErrUnknownTarget
	}

	source := sess.data.AccountByKind(domain.AccountChecking)
	target := sess.data.AccountByKind(targetKind)
	if source == nil || target == nil {
		return nil, nil, ErrAccountNotFound
	}
	if source.Balance < rec.Amount {
		return nil, nil, ErrInsufficientFunds
	}

	source.Balance -= rec.Amount
	target.Balance += rec.Amount

	if target.Kind == domain.AccountSavePot && target.LinkedGoal != "" {
		if goal := sess.data.GoalByID(target.LinkedGoal); goal != nil {
			goal.CurrentAmount += rec.Amount
		}
	}

	tx := domain.Transaction{
		ID:           txID,
		Date:         domain.DateOnly(e.now()),
		AccountID:    source.ID,
		Kind:         domain.KindTransfer,
		Amount:       rec.Amount,
		Category:     category,
		Description:  description,
		BalanceAfter: source.Balance,
		AIGenerated:  true,
		TransferTo:   target.ID,
	}
	sess.data.Transactions = append(sess.data.Transactions, tx)
	return &tx, target, nil
}
