package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wealthsim/persona-finance/internal/domain"
	"github.com/wealthsim/persona-finance/internal/session"
)

func testHandler() *PersonasHandler {
	store := session.NewStore(map[string]session.SimulatorFunc{
		"fatima": func(months int) *domain.FinancialData {
			date := func(s string) domain.Transaction {
				d, _ := domain.ParseDate(s)
				return domain.Transaction{Date: d}
			}
			income := date("2025-06-01")
			income.Kind = domain.KindIncome
			income.Amount = 18000
			income.Category = "Salary"
			expense := date("2025-06-05")
			expense.Kind = domain.KindExpense
			expense.Amount = 6500
			expense.Category = "Housing"

			return &domain.FinancialData{
				Persona: domain.Persona{Name: "Fatima Ahmed"},
				Accounts: []domain.Account{
					{ID: "ACC_CHECKING_FATM", Kind: domain.AccountChecking, Balance: 20000},
					{ID: "ACC_SAVEPOT_FATM", Kind: domain.AccountSavePot, Balance: 50000},
					{ID: "ACC_PLAYPOT_FATM", Kind: domain.AccountPlayPot, Balance: 2000},
				},
				Transactions: []domain.Transaction{income, expense},
			}
		},
	})
	exec := session.NewExecutor(zerolog.Nop())
	return NewPersonasHandler(store, exec, nil, zerolog.Nop())
}

func TestData(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Data(rec, httptest.NewRequest(http.MethodGet, "/api/personas/fatima/data?months=12", nil), "fatima")

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var data domain.FinancialData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("Response is not financial data: %v", err)
	}
	if data.Persona.Name != "Fatima Ahmed" {
		t.Errorf("Persona = %q, want Fatima Ahmed", data.Persona.Name)
	}
	if len(data.Accounts) != 3 {
		t.Errorf("Accounts = %d, want 3", len(data.Accounts))
	}
}

func TestData_UnknownPersona(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Data(rec, httptest.NewRequest(http.MethodGet, "/api/personas/nobody/data", nil), "nobody")

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestAnalysis_LocalSource(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Analysis(rec, httptest.NewRequest(http.MethodGet, "/api/personas/fatima/analysis", nil), "fatima")

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var body struct {
		Success  bool            `json:"success"`
		Source   string          `json:"source"`
		Analysis domain.Analysis `json:"analysis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Source != "local" {
		t.Errorf("source = %q, want local without an oracle", body.Source)
	}
	if body.Analysis.UserID != "Fatima Ahmed" {
		t.Errorf("Analysis user = %q", body.Analysis.UserID)
	}
}

func TestAnalysis_OracleFallsBackWithoutClient(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Analysis(rec, httptest.NewRequest(http.MethodGet, "/api/personas/fatima/analysis?oracle=true", nil), "fatima")

	var body struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if body.Source != "local" {
		t.Errorf("source = %q, want local when no oracle client is configured", body.Source)
	}
}

func TestActions_Reset(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/personas/fatima/actions",
		strings.NewReader(`{"action": "reset_simulation"}`))

	h.Actions(rec, req, "fatima")

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "reset successfully") {
		t.Errorf("Body = %s", rec.Body.String())
	}
}

func TestActions_UnknownAction(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/personas/fatima/actions",
		strings.NewReader(`{"action": "do_magic"}`))

	h.Actions(rec, req, "fatima")

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if body.Success || body.Message != "No action taken" {
		t.Errorf("Body = %+v, want no action taken", body)
	}
}

func TestActions_ImplementUnknownRecommendation(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/personas/fatima/actions",
		strings.NewReader(`{"action": "implement_recommendation", "recommendationId": "REC_MISSING"}`))

	h.Actions(rec, req, "fatima")

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestAutoActions_InvalidMode(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/personas/fatima/auto-actions",
		strings.NewReader(`{"autoExecuteMode": "turbo"}`))

	h.AutoActions(rec, req, "fatima")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestAutoActions_DryRunDefault(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/personas/fatima/auto-actions",
		strings.NewReader(`{}`))

	h.AutoActions(rec, req, "fatima")

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Mode    string `json:"mode"`
		Message string `json:"message"`
		Data    struct {
			Implemented []domain.Recommendation `json:"implementedRecommendations"`
			Logs        []string                `json:"logs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if body.Mode != "dry_run" {
		t.Errorf("mode = %q, want dry_run by default", body.Mode)
	}
	if len(body.Data.Implemented) != 0 {
		t.Errorf("Dry run implemented %d recommendations", len(body.Data.Implemented))
	}
	if !strings.Contains(body.Message, "dry run mode complete") {
		t.Errorf("Message = %q", body.Message)
	}
}

func TestDetails(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Details(rec, httptest.NewRequest(http.MethodGet, "/api/personas/omar/details", nil), "omar")

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var details UserDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if details.ID != "USR002" || details.Name != "Omar Khan" {
		t.Errorf("Details = %+v", details)
	}
}

func TestDetails_Unknown(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	h.Details(rec, httptest.NewRequest(http.MethodGet, "/api/personas/nobody/details", nil), "nobody")

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}
