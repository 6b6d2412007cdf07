package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{
		ID:           "T0001",
		Date:         time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC),
		AccountID:    "ACC_CHECKING_FATM",
		Kind:         KindIncome,
		Amount:       18000,
		Category:     "Salary",
		Description:  "Monthly Salary",
		BalanceAfter: 33000,
	}

	raw, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	s := string(raw)

	if !strings.Contains(s, `"date":"2025-06-25"`) {
		t.Errorf("Date not serialized day-precision: %s", s)
	}
	if !strings.Contains(s, `"type":"income"`) {
		t.Errorf("Kind not serialized under type: %s", s)
	}
	if strings.Contains(s, `"transfer_to"`) {
		t.Errorf("Empty transfer_to should be omitted: %s", s)
	}

	var back Transaction
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !back.Date.Equal(tx.Date) {
		t.Errorf("Date round trip = %s, want %s", back.Date, tx.Date)
	}
	if back.Amount != 18000 || back.Kind != KindIncome {
		t.Errorf("Round trip mismatch: %+v", back)
	}
}

func TestTransactionUnmarshal_BadDate(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"transaction_id":"T1","date":"June 25th"}`), &tx)
	if err == nil {
		t.Error("Expected an error for a non-ISO date")
	}
}

func TestFinancialDataClone(t *testing.T) {
	data := &FinancialData{
		Persona: Persona{
			Name:  "Test",
			Goals: []FinancialGoal{{ID: "G1", TargetAmount: 1000}},
		},
		Accounts: []Account{
			{ID: "A1", Kind: AccountChecking, Balance: 500},
		},
		Transactions: []Transaction{
			{ID: "T1", Amount: 100},
		},
	}

	clone := data.Clone()
	clone.Accounts[0].Balance = -1
	clone.Persona.Goals[0].CurrentAmount = 999
	clone.Transactions[0].Amount = -1

	if data.Accounts[0].Balance != 500 {
		t.Error("Clone shares account storage with the original")
	}
	if data.Persona.Goals[0].CurrentAmount != 0 {
		t.Error("Clone shares goal storage with the original")
	}
	if data.Transactions[0].Amount != 100 {
		t.Error("Clone shares transaction storage with the original")
	}
}

func TestAccountByKind(t *testing.T) {
	data := &FinancialData{
		Accounts: []Account{
			{ID: "A1", Kind: AccountChecking},
			{ID: "A2", Kind: AccountSavePot},
		},
	}

	if got := data.AccountByKind(AccountSavePot); got == nil || got.ID != "A2" {
		t.Errorf("AccountByKind(Save Pot) = %v, want A2", got)
	}
	if got := data.AccountByKind(AccountPlayPot); got != nil {
		t.Errorf("AccountByKind(Play Pot) = %v, want nil", got)
	}
}
