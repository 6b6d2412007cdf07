package simulate

import (
	"github.com/wealthsim/persona-finance/internal/domain"
)

// DefaultMonths is the ledger length simulated when a request does not ask
// for a specific window.
const DefaultMonths = 12

// SteadySalaried is the working-parent persona: fixed salary, rare quarterly
// bonus, childcare and term school fees on top of the usual household spend.
func SteadySalaried() PersonaConfig {
	return PersonaConfig{
		Persona: domain.Persona{
			Name:        "Fatima",
			Description: "Mid-level marketing executive, 34, working mother with husband and two kids in Downtown Dubai. Wants to save for a mortgage but has fluctuating childcare and school fee expenses.",
			Goals: []domain.FinancialGoal{{
				ID:            "MORTGAGE_SAVINGS",
				Description:   "Save for future mortgage",
				TargetAmount:  200000,
				TargetDate:    "2027-12-31",
				CurrentAmount: 35000,
			}},
		},
		Window:        WindowCalendarYear,
		Currency:      "AED",
		CheckingID:    "ACC_CHECKING_FATM",
		SavePotID:     "ACC_SAVEPOT_FATM",
		PlayPotID:     "ACC_PLAYPOT_FATM",
		StartChecking: 15000,
		StartSavePot:  35000,
		StartPlayPot:  1000,
		LinkedGoal:    "MORTGAGE_SAVINGS",
		Salary: &SalarySpec{
			Amount:           25000,
			Day:              1,
			Description:      "Monthly Salary",
			BonusChance:      0.15,
			BonusBase:        5000,
			BonusVariation:   30,
			BonusDescription: "Performance Bonus",
		},
		Recurring: []RecurringExpense{
			{Category: "Housing", Description: "Rent/Mortgage Payment", Base: 5000, Day: 2},
			{Category: "Childcare", Description: "Monthly Childcare Fees", Base: 3600, Variation: 10, Day: 5},
			{Category: "School Fees", Description: "Term Fee", Base: 8000, Day: 10, Months: []int{1, 5, 9}},
			{Category: "Utilities", Description: "Utilities Bill", Base: 600, Variation: 10, Day: 15},
		},
		Groceries: &GrocerySpec{Base: 1200, Variation: 15},
		Discretionary: []DiscretionarySpec{
			{Category: "Entertainment", Descriptions: []string{"Family Outing/Fun"}, MonthlyBase: 300, Variation: 50, PerMonth: 3},
			{Category: "Self-care", Descriptions: []string{"Personal Treat"}, MonthlyBase: 150, Variation: 40, PerMonth: 1},
		},
	}
}

// FreelanceVariable is the freelance-designer persona: 0-3 project payments
// a month with wild amounts, a small passive income stream, and social
// spending that tracks how good the month was.
func FreelanceVariable() PersonaConfig {
	return PersonaConfig{
		Persona: domain.Persona{
			Name:        "Omar",
			Description: "Freelance graphic designer, 28, living in Dubai Marina. Has unpredictable project-based income and wants to buy property in the next 3 years.",
			Goals: []domain.FinancialGoal{{
				ID:            "PROPERTY_PURCHASE",
				Description:   "Save for property down payment",
				TargetAmount:  300000,
				TargetDate:    "2028-04-23",
				CurrentAmount: 20000,
			}},
		},
		Window:        WindowCalendarYear,
		Currency:      "AED",
		CheckingID:    "ACC_CHECKING_OMAR",
		SavePotID:     "ACC_SAVEPOT_OMAR",
		PlayPotID:     "ACC_PLAYPOT_OMAR",
		StartChecking: 8000,
		StartSavePot:  20000,
		StartPlayPot:  2000,
		LinkedGoal:    "PROPERTY_PURCHASE",
		Freelance: &FreelanceSpec{
			BaseRate:       10000,
			MinProjects:    0,
			MaxProjects:    3,
			ValueVariation: 50,
			Descriptions: []string{
				"Logo Design", "Website Redesign", "Branding Package", "UI/UX Work", "Illustration Project",
			},
			SupplementaryAmount:      2000,
			SupplementaryDay:         1,
			SupplementaryChance:      0.9,
			SupplementaryCategory:    "Passive Income",
			SupplementaryDescription: "Asset Library Sales",
		},
		Recurring: []RecurringExpense{
			{Category: "Housing", Description: "Dubai Marina Apartment Rent", Base: 6000, Day: 5},
			{Category: "Utilities", Description: "DEWA Bill & Internet", Base: 800, Variation: 15, Day: 10},
			{Category: "Subscriptions", Description: "Adobe Creative Cloud, Stock Photos, etc.", Base: 400, Day: 15},
			{Category: "Professional", Description: "Equipment, Courses & Networking", Base: 1000, Variation: 70, Day: 20, Chance: 0.4},
		},
		Groceries: &GrocerySpec{Base: 800, Variation: 20},
		Discretionary: []DiscretionarySpec{
			{
				Category:        "Entertainment",
				Descriptions:    []string{"Dinner at Marina Restaurant", "Nightclub", "Weekend Brunch", "Beach Club"},
				MonthlyBase:     1500,
				Variation:       60,
				PerMonth:        4,
				ScaleWithIncome: true,
			},
		},
	}
}

// HighIncomeSeasonal is the executive persona: large fixed salary, frequent
// bonuses, seasonal luxury expenses and a heavy discretionary tail. Its
// window trails up to the current month so analysis always sees fresh data.
func HighIncomeSeasonal() PersonaConfig {
	return PersonaConfig{
		Persona: domain.Persona{
			Name:        "Reem",
			Description: "Executive in DIFC, 45, high-income earner, single, with fluctuating luxury lifestyle spending. Wants a smart savings tool that helps balance indulgence with long-term planning.",
			Goals: []domain.FinancialGoal{{
				ID:            "RETIREMENT_FUND",
				Description:   "Build retirement fund while maintaining lifestyle",
				TargetAmount:  5000000,
				TargetDate:    "2040-01-01",
				CurrentAmount: 200000,
			}},
		},
		Window:        WindowTrailing,
		Currency:      "AED",
		CheckingID:    "ACC_CHECKING_REEM",
		SavePotID:     "ACC_SAVEPOT_REEM",
		PlayPotID:     "ACC_PLAYPOT_REEM",
		StartChecking: 50000,
		StartSavePot:  200000,
		StartPlayPot:  30000,
		LinkedGoal:    "RETIREMENT_FUND",
		Salary: &SalarySpec{
			Amount:           65000,
			Day:              1,
			Description:      "Monthly Executive Salary",
			BonusChance:      0.30,
			BonusBase:        20000,
			BonusVariation:   40,
			BonusDescription: "Executive Performance Bonus",
		},
		Seasonal: &SeasonalSpec{
			Base:      25000,
			Variation: 50,
			Winter: SeasonProfile{
				Chance:    0.9,
				Threshold: 0.5,
				Primary:   SeasonalChoice{Category: "Travel", Description: "Winter Holiday to Europe"},
				Secondary: SeasonalChoice{Category: "Shopping", Description: "Winter Fashion Shopping"},
			},
			Spring: SeasonProfile{
				Chance:    0.6,
				Threshold: 0.6,
				Primary:   SeasonalChoice{Category: "Fashion", Description: "Spring Collection Shopping"},
				Secondary: SeasonalChoice{Category: "Events", Description: "Charity Gala Event"},
			},
			Summer: SeasonProfile{
				Chance:    0.7,
				Threshold: 0.4,
				Primary:   SeasonalChoice{Category: "Travel", Description: "Summer Vacation"},
				Secondary: SeasonalChoice{Category: "Entertainment", Description: "Summer Entertainment"},
			},
			Fall: SeasonProfile{
				Chance:    0.7,
				Threshold: 0.5,
				Primary:   SeasonalChoice{Category: "Fashion", Description: "Fall Collection Shopping"},
				Secondary: SeasonalChoice{Category: "Events", Description: "Art Exhibition & Events"},
			},
		},
		Recurring: []RecurringExpense{
			{Category: "Housing", Description: "DIFC Luxury Apartment", Base: 15000, Day: 2},
			{Category: "Investments", Description: "Portfolio Investment Contribution", Base: 15000, Variation: 40, Day: 5, Chance: 0.7},
			{Category: "Utilities", Description: "Utilities & Services", Base: 2000, Variation: 15, Day: 10},
		},
		Discretionary: []DiscretionarySpec{
			{Category: "Dining", Descriptions: []string{"Fine Dining"}, MonthlyBase: 4000, Variation: 30, PerMonth: 6},
			{Category: "Shopping", Descriptions: []string{"Luxury Shopping"}, MonthlyBase: 10000, Variation: 60, PerMonth: 3},
			{Category: "Wellness", Descriptions: []string{"Spa & Wellness Services"}, MonthlyBase: 5000, Variation: 30, PerMonth: 2},
		},
	}
}

// Presets maps persona ids to their configurations.
func Presets() map[string]PersonaConfig {
	return map[string]PersonaConfig{
		"fatima": SteadySalaried(),
		"omar":   FreelanceVariable(),
		"reem":   HighIncomeSeasonal(),
	}
}
