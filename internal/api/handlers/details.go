package handlers

import (
	"fmt"
	"net/http"

	"github.com/wealthsim/persona-finance/internal/api/middleware"
)

// UserDetails is the static profile shown on the persona dashboard.
type UserDetails struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Occupation        string  `json:"occupation"`
	MonthlySalary     float64 `json:"monthlySalary"`
	Age               int     `json:"age"`
	Address           string  `json:"address"`
	JoinDate          string  `json:"joinDate"`
	PreferredLanguage string  `json:"preferredLanguage"`
	AccountType       string  `json:"accountType"`
}

var personaDetails = map[string]UserDetails{
	"fatima": {
		ID:                "USR001",
		Name:              "Fatima Ahmed",
		Email:             "fatima.ahmed@example.com",
		Phone:             "+971 50 123 4567",
		Occupation:        "Software Engineer",
		MonthlySalary:     18000,
		Age:               28,
		Address:           "Downtown Dubai, UAE",
		JoinDate:          "2022-03-15",
		PreferredLanguage: "Arabic",
		AccountType:       "Platinum",
	},
	"omar": {
		ID:                "USR002",
		Name:              "Omar Khan",
		Email:             "omar.khan@example.com",
		Phone:             "+971 55 987 6543",
		Occupation:        "Marketing Manager",
		MonthlySalary:     22000,
		Age:               34,
		Address:           "Jumeirah, Dubai, UAE",
		JoinDate:          "2021-09-10",
		PreferredLanguage: "English",
		AccountType:       "Gold",
	},
	"reem": {
		ID:                "USR003",
		Name:              "Reem Al Hashmi",
		Email:             "reem.alhashmi@example.com",
		Phone:             "+971 52 456 7890",
		Occupation:        "Financial Analyst",
		MonthlySalary:     25000,
		Age:               32,
		Address:           "Abu Dhabi, UAE",
		JoinDate:          "2023-01-20",
		PreferredLanguage: "Arabic",
		AccountType:       "Diamond",
	},
}

// Details handles GET /api/personas/{id}/details
func (h *PersonasHandler) Details(w http.ResponseWriter, r *http.Request, personaID string) {
	details, ok := personaDetails[personaID]
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown persona: %s", personaID))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, details)
}
