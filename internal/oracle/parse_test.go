package oracle

import (
	"testing"

	"github.com/wealthsim/persona-finance/internal/domain"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain object untouched",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "json fence stripped",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence stripped",
			raw:  "```\n[1, 2]\n```",
			want: `[1, 2]`,
		},
		{
			name: "leading prose dropped",
			raw:  `Here is the analysis you asked for: {"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "trailing prose dropped",
			raw:  `[{"a": 1}] I hope this helps!`,
			want: `[{"a": 1}]`,
		},
		{
			name: "array preferred when it comes first",
			raw:  `[{"a": 1}, {"b": 2}]`,
			want: `[{"a": 1}, {"b": 2}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeModelJSON(t *testing.T) {
	raw := "```json\n" +
		`[{"recommendation_id": "REC_AI_1", "type": "savings_allocation", "description": "Transfer 2000.00 AED to Save Pot", "amount": 2000, "implemented": false}]` +
		"\n```"

	var recs []domain.Recommendation
	if err := decodeModelJSON(raw, &recs); err != nil {
		t.Fatalf("decodeModelJSON() error = %v", err)
	}

	if len(recs) != 1 {
		t.Fatalf("Decoded %d recommendations, want 1", len(recs))
	}
	if recs[0].ID != "REC_AI_1" {
		t.Errorf("ID = %q, want REC_AI_1", recs[0].ID)
	}
	if recs[0].Kind != domain.RecSavingsAllocation {
		t.Errorf("Kind = %q, want savings_allocation", recs[0].Kind)
	}
	if recs[0].Amount != 2000 {
		t.Errorf("Amount = %.2f, want 2000", recs[0].Amount)
	}
}

func TestDecodeModelJSON_RepairsNearJSON(t *testing.T) {
	// Trailing comma and a missing closing bracket, the kind of damage
	// truncated model output shows.
	raw := `[{"recommendation_id": "REC_AI_1", "type": "spending_alert", "description": "Watch dining",}`

	var recs []domain.Recommendation
	if err := decodeModelJSON(raw, &recs); err != nil {
		t.Fatalf("decodeModelJSON() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "REC_AI_1" {
		t.Errorf("Decoded %v, want the repaired recommendation", recs)
	}
}

func TestDecodeModelJSON_Irrecoverable(t *testing.T) {
	var out map[string]interface{}
	if err := decodeModelJSON("I cannot answer that question.", &out); err == nil {
		t.Error("Expected an error for output with no JSON at all")
	}
}
