package domain

import (
	"encoding/json"
	"time"
)

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpense  TransactionKind = "expense"
	KindTransfer TransactionKind = "transfer"
)

// Transaction is one posted ledger entry. Amounts are always non-negative;
// the kind decides the sign when replaying balances. BalanceAfter is the
// owning account's running balance immediately after posting.
type Transaction struct {
	ID           string
	Date         time.Time
	AccountID    string
	Kind         TransactionKind
	Amount       float64
	Category     string
	Description  string
	BalanceAfter float64
	AIGenerated  bool
	TransferTo   string
}

// transactionJSON is the wire shape: dates are day-precision YYYY-MM-DD
// strings and the kind is serialized under "type".
type transactionJSON struct {
	ID           string          `json:"transaction_id"`
	Date         string          `json:"date"`
	AccountID    string          `json:"account_id"`
	Kind         TransactionKind `json:"type"`
	Amount       float64         `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	BalanceAfter float64         `json:"balance_after"`
	AIGenerated  bool            `json:"ai_generated,omitempty"`
	TransferTo   string          `json:"transfer_to,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:           t.ID,
		Date:         FormatDate(t.Date),
		AccountID:    t.AccountID,
		Kind:         t.Kind,
		Amount:       t.Amount,
		Category:     t.Category,
		Description:  t.Description,
		BalanceAfter: t.BalanceAfter,
		AIGenerated:  t.AIGenerated,
		TransferTo:   t.TransferTo,
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w transactionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	date, err := ParseDate(w.Date)
	if err != nil {
		return err
	}
	*t = Transaction{
		ID:           w.ID,
		Date:         date,
		AccountID:    w.AccountID,
		Kind:         w.Kind,
		Amount:       w.Amount,
		Category:     w.Category,
		Description:  w.Description,
		BalanceAfter: w.BalanceAfter,
		AIGenerated:  w.AIGenerated,
		TransferTo:   w.TransferTo,
	}
	return nil
}

// AccountKind distinguishes the checking account from the two pots.
type AccountKind string

const (
	AccountChecking AccountKind = "Checking"
	AccountSavePot  AccountKind = "Save Pot"
	AccountPlayPot  AccountKind = "Play Pot"
)

// Account holds a balance. Balances change only by posting a transaction
// that references the account.
type Account struct {
	ID         string      `json:"account_id"`
	Kind       AccountKind `json:"type"`
	Currency   string      `json:"currency"`
	Balance    float64     `json:"balance"`
	LinkedGoal string      `json:"linked_goal,omitempty"`
}

// FinancialGoal is a savings target. CurrentAmount advances only when a
// Save Pot transfer is executed.
type FinancialGoal struct {
	ID            string  `json:"goal_id"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"target_amount"`
	TargetDate    string  `json:"target_date"`
	CurrentAmount float64 `json:"current_amount"`
}

// Persona is the static profile a simulation is seeded from.
type Persona struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Goals       []FinancialGoal `json:"goals"`
}

// FinancialData is the aggregate root for one persona: profile, accounts and
// the full transaction ledger in non-decreasing date order.
type FinancialData struct {
	Persona      Persona       `json:"persona"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// AccountByKind returns the first account of the given kind, or nil.
func (d *FinancialData) AccountByKind(kind AccountKind) *Account {
	for i := range d.Accounts {
		if d.Accounts[i].Kind == kind {
			return &d.Accounts[i]
		}
	}
	return nil
}

// AccountByID returns the account with the given ID, or nil.
func (d *FinancialData) AccountByID(id string) *Account {
	for i := range d.Accounts {
		if d.Accounts[i].ID == id {
			return &d.Accounts[i]
		}
	}
	return nil
}

// GoalByID returns the goal with the given ID, or nil.
func (d *FinancialData) GoalByID(id string) *FinancialGoal {
	for i := range d.Persona.Goals {
		if d.Persona.Goals[i].ID == id {
			return &d.Persona.Goals[i]
		}
	}
	return nil
}

// Clone returns a deep copy so session-owned state is never handed out by
// reference.
func (d *FinancialData) Clone() *FinancialData {
	out := &FinancialData{Persona: d.Persona}
	out.Persona.Goals = append([]FinancialGoal(nil), d.Persona.Goals...)
	out.Accounts = append([]Account(nil), d.Accounts...)
	out.Transactions = append([]Transaction(nil), d.Transactions...)
	return out
}
