package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"divvy/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "divvy.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	people := []models.Person{{Name: "Alice"}, {Name: "Bob"}, {Name: "Charlie"}}
	expenses := []models.Expense{
		{
			ID: "e1", Description: "Dinner", Amount: models.FromCents(1000),
			Payer: "Alice", Participants: []string{"Alice", "Bob", "Charlie"},
			CreatedAt: 1700000000,
		},
		{
			ID: "e2", Description: "Taxi", Amount: models.FromCents(600),
			Payer: "Bob", Participants: []string{"Bob", "Alice"},
			CreatedAt: 1700000100,
		},
	}

	if err := store.Save(ctx, people, expenses); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	gotPeople, gotExpenses, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(gotPeople) != len(people) {
		t.Fatalf("loaded %d people, want %d", len(gotPeople), len(people))
	}
	for i, p := range people {
		if gotPeople[i].Name != p.Name {
			t.Errorf("person %d = %q, want %q (order must survive)", i, gotPeople[i].Name, p.Name)
		}
	}

	if len(gotExpenses) != len(expenses) {
		t.Fatalf("loaded %d expenses, want %d", len(gotExpenses), len(expenses))
	}
	for i, want := range expenses {
		got := gotExpenses[i]
		if got.ID != want.ID || got.Description != want.Description ||
			got.Amount != want.Amount || got.Payer != want.Payer || got.CreatedAt != want.CreatedAt {
			t.Errorf("expense %d = %+v, want %+v", i, got, want)
		}
		if len(got.Participants) != len(want.Participants) {
			t.Fatalf("expense %d has %d participants, want %d", i, len(got.Participants), len(want.Participants))
		}
		for j, name := range want.Participants {
			if got.Participants[j] != name {
				t.Errorf("expense %d participant %d = %q, want %q", i, j, got.Participants[j], name)
			}
		}
	}
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []models.Person{{Name: "Alice"}, {Name: "Bob"}}
	firstExpenses := []models.Expense{{
		ID: "e1", Description: "Dinner", Amount: models.FromCents(1000),
		Payer: "Alice", Participants: []string{"Alice", "Bob"},
	}}
	if err := store.Save(ctx, first, firstExpenses); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := []models.Person{{Name: "Charlie"}}
	if err := store.Save(ctx, second, nil); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	people, expenses, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(people) != 1 || people[0].Name != "Charlie" {
		t.Errorf("people = %v, want [Charlie]", people)
	}
	if len(expenses) != 0 {
		t.Errorf("expenses = %v, want none", expenses)
	}
}

func TestSQLiteStoreLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	people, expenses, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on fresh database failed: %v", err)
	}
	if len(people) != 0 || len(expenses) != 0 {
		t.Errorf("fresh database returned people=%v expenses=%v", people, expenses)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "divvy.db")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	people := []models.Person{{Name: "Alice"}}
	if err := store.Save(ctx, people, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	gotPeople, _, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	if len(gotPeople) != 1 || gotPeople[0].Name != "Alice" {
		t.Errorf("people after reopen = %v, want [Alice]", gotPeople)
	}
}
