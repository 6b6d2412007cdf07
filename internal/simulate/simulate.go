// Package simulate generates synthetic persona ledgers: a configurable
// income model plus expense generators, posted month by month against a
// checking account with running balances.
package simulate

import (
	"fmt"
	"sort"
	"time"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// quarter-end months for bonus draws.
var bonusMonths = map[time.Month]bool{
	time.March:     true,
	time.June:      true,
	time.September: true,
	time.December:  true,
}

// Run simulates numMonths of activity for the configured persona and
// returns the ledger with the three accounts. A non-positive month count
// yields an empty ledger, never an error.
func Run(cfg PersonaConfig, numMonths int) *domain.FinancialData {
	return RunAt(cfg, numMonths, time.Now())
}

// RunAt is Run with an explicit "now", which anchors the simulation window.
func RunAt(cfg PersonaConfig, numMonths int, now time.Time) *domain.FinancialData {
	var txs []domain.Transaction
	idCounter := 1

	monthStart := windowStart(cfg.Window, numMonths, now)
	for month := 0; month < numMonths; month++ {
		txs = append(txs, simulateMonth(&cfg, monthStart, &idCounter)...)
		monthStart = monthStart.AddDate(0, 1, 0)
	}

	// Stable sort keeps same-day posts in insertion order, then the running
	// balance is derived in ledger order so a replay reproduces it exactly.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})

	checking := cfg.StartChecking
	for i := range txs {
		switch txs[i].Kind {
		case domain.KindIncome:
			checking += txs[i].Amount
		case domain.KindExpense:
			checking -= txs[i].Amount
		}
		txs[i].BalanceAfter = checking
	}

	return &domain.FinancialData{
		Persona: cfg.Persona,
		Accounts: []domain.Account{
			{ID: cfg.CheckingID, Kind: domain.AccountChecking, Currency: cfg.Currency, Balance: checking},
			{ID: cfg.SavePotID, Kind: domain.AccountSavePot, Currency: cfg.Currency, Balance: cfg.StartSavePot, LinkedGoal: cfg.LinkedGoal},
			{ID: cfg.PlayPotID, Kind: domain.AccountPlayPot, Currency: cfg.Currency, Balance: cfg.StartPlayPot},
		},
		Transactions: txs,
	}
}

// windowStart anchors the first simulated month.
func windowStart(mode WindowMode, numMonths int, now time.Time) time.Time {
	if mode == WindowTrailing {
		return domain.MonthStart(now).AddDate(0, -(numMonths - 1), 0)
	}
	return time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
}

// simulateMonth produces one month of unposted transactions (balances are
// assigned after the global sort).
func simulateMonth(cfg *PersonaConfig, monthStart time.Time, idCounter *int) []domain.Transaction {
	var txs []domain.Transaction
	daysInMonth := domain.DaysInMonth(monthStart)

	nextID := func() string {
		id := fmt.Sprintf("T%04d", *idCounter)
		*idCounter++
		return id
	}

	monthIncome := 0.0

	if s := cfg.Salary; s != nil {
		txs = append(txs, domain.Transaction{
			ID:          nextID(),
			Date:        onDay(monthStart, s.Day),
			AccountID:   cfg.CheckingID,
			Kind:        domain.KindIncome,
			Amount:      s.Amount,
			Category:    "Salary",
			Description: s.Description,
		})
		monthIncome += s.Amount

		if s.BonusChance > 0 && bonusMonths[monthStart.Month()] && chance(s.BonusChance) {
			bonus := Amount(s.BonusBase, s.BonusVariation)
			txs = append(txs, domain.Transaction{
				ID:          nextID(),
				Date:        onDay(monthStart, 28),
				AccountID:   cfg.CheckingID,
				Kind:        domain.KindIncome,
				Amount:      bonus,
				Category:    "Bonus",
				Description: s.BonusDescription,
			})
			monthIncome += bonus
		}
	}

	if f := cfg.Freelance; f != nil {
		numProjects := intBetween(f.MinProjects, f.MaxProjects)
		for i := 0; i < numProjects; i++ {
			value := Amount(f.BaseRate, f.ValueVariation)
			txs = append(txs, domain.Transaction{
				ID:          fmt.Sprintf("P%02d%d_%d", monthStart.Year()%100, int(monthStart.Month()), i+1),
				Date:        onDay(monthStart, intBetween(1, daysInMonth)),
				AccountID:   cfg.CheckingID,
				Kind:        domain.KindIncome,
				Amount:      value,
				Category:    "Freelance",
				Description: "Project Payment: " + pick(f.Descriptions),
			})
			monthIncome += value
		}

		if f.SupplementaryChance > 0 && chance(f.SupplementaryChance) {
			txs = append(txs, domain.Transaction{
				ID:          nextID(),
				Date:        onDay(monthStart, f.SupplementaryDay),
				AccountID:   cfg.CheckingID,
				Kind:        domain.KindIncome,
				Amount:      f.SupplementaryAmount,
				Category:    f.SupplementaryCategory,
				Description: f.SupplementaryDescription,
			})
			monthIncome += f.SupplementaryAmount
		}
	}

	for _, r := range cfg.Recurring {
		if len(r.Months) > 0 && !containsMonth(r.Months, int(monthStart.Month())) {
			continue
		}
		if r.Chance > 0 && !chance(r.Chance) {
			continue
		}
		amount := r.Base
		if r.Variation > 0 {
			amount = Amount(r.Base, r.Variation)
		}
		txs = append(txs, domain.Transaction{
			ID:          nextID(),
			Date:        onDay(monthStart, r.Day),
			AccountID:   cfg.CheckingID,
			Kind:        domain.KindExpense,
			Amount:      amount,
			Category:    r.Category,
			Description: r.Description,
		})
	}

	if g := cfg.Groceries; g != nil {
		for week := 0; week < 4; week++ {
			txs = append(txs, domain.Transaction{
				ID:          nextID(),
				Date:        domain.AddDays(monthStart, week*7+intBetween(1, 6)),
				AccountID:   cfg.CheckingID,
				Kind:        domain.KindExpense,
				Amount:      Amount(g.Base, g.Variation),
				Category:    "Groceries",
				Description: "Weekly Groceries",
			})
		}
	}

	if s := cfg.Seasonal; s != nil {
		if tx, ok := seasonalExpense(s, cfg.CheckingID, monthStart); ok {
			txs = append(txs, tx)
		}
	}

	// Discretionary bursts scale with the month's income for personas whose
	// lifestyle tracks earnings, clamped to [0.5, 2.0] of baseline.
	multiplier := 1.0
	if cfg.Freelance != nil {
		baseline := cfg.Freelance.BaseRate * 1.5
		if baseline > 0 {
			multiplier = clamp(monthIncome/baseline, 0.5, 2.0)
		}
	}

	for _, d := range cfg.Discretionary {
		base := d.MonthlyBase
		if d.ScaleWithIncome {
			base *= multiplier
		}
		for i := 0; i < d.PerMonth; i++ {
			txs = append(txs, domain.Transaction{
				ID:          nextID(),
				Date:        domain.AddDays(monthStart, intBetween(0, daysInMonth-1)),
				AccountID:   cfg.CheckingID,
				Kind:        domain.KindExpense,
				Amount:      Amount(base/float64(d.PerMonth), d.Variation),
				Category:    d.Category,
				Description: pick(d.Descriptions),
			})
		}
	}

	return txs
}

// seasonalExpense draws at most one large seasonal expense for the month.
func seasonalExpense(s *SeasonalSpec, accountID string, monthStart time.Time) (domain.Transaction, bool) {
	profile, season := s.seasonOf(int(monthStart.Month()))
	if !chance(profile.Chance) {
		return domain.Transaction{}, false
	}

	choice := profile.Secondary
	if chance(1 - profile.Threshold) {
		choice = profile.Primary
	}

	return domain.Transaction{
		ID:          fmt.Sprintf("S%c%03d", season[0]-'a'+'A', intBetween(0, 999)),
		Date:        onDay(monthStart, 15+intBetween(0, 9)),
		AccountID:   accountID,
		Kind:        domain.KindExpense,
		Amount:      Amount(s.Base, s.Variation),
		Category:    choice.Category,
		Description: choice.Description,
	}, true
}

func onDay(monthStart time.Time, day int) time.Time {
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, monthStart.Location())
}

func containsMonth(months []int, month int) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
