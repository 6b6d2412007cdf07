package simulate

import (
	"github.com/wealthsim/persona-finance/internal/domain"
)

// WindowMode controls how the simulated month range is anchored.
type WindowMode string

const (
	// WindowCalendarYear starts on January 1st of last year and runs forward
	// for the requested number of months.
	WindowCalendarYear WindowMode = "calendar_year"
	// WindowTrailing ends at the current month inclusive and runs backward
	// for the requested number of months.
	WindowTrailing WindowMode = "trailing"
)

// SalarySpec is a fixed salary landing on a fixed day of month, with an
// optional quarterly bonus drawn at quarter-end months (Mar/Jun/Sep/Dec).
type SalarySpec struct {
	Amount           float64 `yaml:"amount"`
	Day              int     `yaml:"day"`
	Description      string  `yaml:"description"`
	BonusChance      float64 `yaml:"bonus_chance"`
	BonusBase        float64 `yaml:"bonus_base"`
	BonusVariation   float64 `yaml:"bonus_variation"`
	BonusDescription string  `yaml:"bonus_description"`
}

// FreelanceSpec models project-based income: 0..N payments per month with
// heavily varied amounts on random in-month dates, plus an optional
// probabilistic supplementary income.
type FreelanceSpec struct {
	BaseRate       float64  `yaml:"base_rate"`
	MinProjects    int      `yaml:"min_projects"`
	MaxProjects    int      `yaml:"max_projects"`
	ValueVariation float64  `yaml:"value_variation"`
	Descriptions   []string `yaml:"descriptions"`

	SupplementaryAmount      float64 `yaml:"supplementary_amount"`
	SupplementaryDay         int     `yaml:"supplementary_day"`
	SupplementaryChance      float64 `yaml:"supplementary_chance"`
	SupplementaryCategory    string  `yaml:"supplementary_category"`
	SupplementaryDescription string  `yaml:"supplementary_description"`
}

// SeasonalChoice is one of the two expense flavors a season can produce.
type SeasonalChoice struct {
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// SeasonProfile configures one calendar season: how likely a seasonal
// expense is that month, and a biased coin flip between two flavors.
// Primary is chosen when the draw exceeds Threshold.
type SeasonProfile struct {
	Chance    float64        `yaml:"chance"`
	Threshold float64        `yaml:"threshold"`
	Primary   SeasonalChoice `yaml:"primary"`
	Secondary SeasonalChoice `yaml:"secondary"`
}

// SeasonalSpec keys large one-off expenses by calendar season.
type SeasonalSpec struct {
	Base      float64       `yaml:"base"`
	Variation float64       `yaml:"variation"`
	Winter    SeasonProfile `yaml:"winter"` // Jan-Mar
	Spring    SeasonProfile `yaml:"spring"` // Apr-Jun
	Summer    SeasonProfile `yaml:"summer"` // Jul-Sep
	Fall      SeasonProfile `yaml:"fall"`   // Oct-Dec
}

// RecurringExpense posts on a fixed day of month. Variation 0 means a fixed
// amount; Chance 0 means always; Months empty means every month.
type RecurringExpense struct {
	Category    string  `yaml:"category"`
	Description string  `yaml:"description"`
	Base        float64 `yaml:"base"`
	Variation   float64 `yaml:"variation"`
	Day         int     `yaml:"day"`
	Chance      float64 `yaml:"chance"`
	Months      []int   `yaml:"months"`
}

// GrocerySpec posts four weekly shops per month at a random day offset
// within each week.
type GrocerySpec struct {
	Base      float64 `yaml:"base"`
	Variation float64 `yaml:"variation"`
}

// DiscretionarySpec is a burst of small spends spread randomly across the
// month. MonthlyBase is split evenly across PerMonth transactions before the
// variation band applies. ScaleWithIncome applies the freelancer income
// multiplier to the base.
type DiscretionarySpec struct {
	Category        string   `yaml:"category"`
	Descriptions    []string `yaml:"descriptions"`
	MonthlyBase     float64  `yaml:"monthly_base"`
	Variation       float64  `yaml:"variation"`
	PerMonth        int      `yaml:"per_month"`
	ScaleWithIncome bool     `yaml:"scale_with_income"`
}

// PersonaConfig is everything a simulation run needs: the static persona
// block, account scaffolding, an income model (exactly one of Salary or
// Freelance; Seasonal rides on top of Salary) and the expense generators.
type PersonaConfig struct {
	Persona  domain.Persona `yaml:"persona"`
	Window   WindowMode     `yaml:"window"`
	Currency string         `yaml:"currency"`

	CheckingID string `yaml:"checking_id"`
	SavePotID  string `yaml:"save_pot_id"`
	PlayPotID  string `yaml:"play_pot_id"`

	StartChecking float64 `yaml:"start_checking"`
	StartSavePot  float64 `yaml:"start_save_pot"`
	StartPlayPot  float64 `yaml:"start_play_pot"`
	LinkedGoal    string  `yaml:"linked_goal"`

	Salary    *SalarySpec    `yaml:"salary,omitempty"`
	Freelance *FreelanceSpec `yaml:"freelance,omitempty"`
	Seasonal  *SeasonalSpec  `yaml:"seasonal,omitempty"`

	Recurring     []RecurringExpense  `yaml:"recurring"`
	Groceries     *GrocerySpec        `yaml:"groceries,omitempty"`
	Discretionary []DiscretionarySpec `yaml:"discretionary"`
}

// seasonOf maps a month (time.Month) to its season profile.
func (s *SeasonalSpec) seasonOf(month int) (SeasonProfile, string) {
	switch {
	case month <= 3:
		return s.Winter, "winter"
	case month <= 6:
		return s.Spring, "spring"
	case month <= 9:
		return s.Summer, "summer"
	default:
		return s.Fall, "fall"
	}
}
