package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"divvy/internal/models"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, summary string) (string, error) {
	return f.text, f.err
}

func testBalances() []models.Balance {
	return []models.Balance{
		{Name: "Alice", Net: models.FromCents(2000)},
		{Name: "Bob", Net: models.FromCents(-500)},
		{Name: "Charlie", Net: models.FromCents(-1500)},
	}
}

func testTransfers() []models.Transfer {
	return []models.Transfer{
		{From: "Charlie", To: "Alice", Amount: models.FromCents(1500)},
		{From: "Bob", To: "Alice", Amount: models.FromCents(500)},
	}
}

func TestFallback(t *testing.T) {
	t.Run("no transfers", func(t *testing.T) {
		got := Fallback(nil, nil)
		if got != "Everyone is settled up. No payments are needed." {
			t.Errorf("Fallback = %q", got)
		}
	})

	t.Run("narrates every payment", func(t *testing.T) {
		got := Fallback(testBalances(), testTransfers())

		for _, want := range []string{
			"2 payment(s) are needed",
			"1. Charlie pays 15.00 to Alice",
			"Charlie is now fully settled",
			"Alice is still owed 5.00",
			"2. Bob pays 5.00 to Alice",
			"Bob is now fully settled",
			"Alice is now fully repaid",
			"After these payments every balance is zero.",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Fallback missing %q in:\n%s", want, got)
			}
		}
	})
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name         string
		gen          Generator
		wantFallback bool
		want         string
	}{
		{
			name:         "nil generator uses fallback",
			gen:          nil,
			wantFallback: true,
		},
		{
			name:         "generator error uses fallback",
			gen:          &fakeGenerator{err: errors.New("service unavailable")},
			wantFallback: true,
		},
		{
			name:         "empty generator output uses fallback",
			gen:          &fakeGenerator{text: "  \n"},
			wantFallback: true,
		},
		{
			name: "generator output passes through",
			gen:  &fakeGenerator{text: "Charlie and Bob each pay Alice back."},
			want: "Charlie and Bob each pay Alice back.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.gen)
			got := e.Explain(context.Background(), "summary", testBalances(), testTransfers())
			if tt.wantFallback {
				if want := Fallback(testBalances(), testTransfers()); got != want {
					t.Errorf("Explain = %q, want fallback %q", got, want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Explain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	people := []models.Person{{Name: "Alice"}, {Name: "Bob"}}
	totals := []models.Total{
		{Name: "Alice", Spent: models.FromCents(1000)},
		{Name: "Bob", Spent: models.FromCents(0)},
	}
	balances := []models.Balance{
		{Name: "Alice", Net: models.FromCents(500)},
		{Name: "Bob", Net: models.FromCents(-500)},
	}
	expenses := []models.Expense{{
		Description:  "Dinner",
		Amount:       models.FromCents(1000),
		Payer:        "Alice",
		Participants: []string{"Alice", "Bob"},
	}}
	transfers := []models.Transfer{{From: "Bob", To: "Alice", Amount: models.FromCents(500)}}

	got := Summarize(people, totals, balances, expenses, transfers)
	for _, want := range []string{
		"Group members: Alice, Bob",
		"- Alice paid 10.00",
		"- Bob: -5.00",
		"- Dinner: 10.00 paid by Alice, split between Alice, Bob",
		"- Bob pays 5.00 to Alice",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summarize missing %q in:\n%s", want, got)
		}
	}

	// Identical input must yield identical output.
	if again := Summarize(people, totals, balances, expenses, transfers); again != got {
		t.Error("Summarize is not deterministic")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil, nil, nil, nil)
	for _, want := range []string{"(none)", "none needed, everyone is settled"} {
		if !strings.Contains(got, want) {
			t.Errorf("Summarize missing %q in:\n%s", want, got)
		}
	}
}
