// Package ledger owns the people roster, the expense history, and the
// derived net-balance vector.
//
// Every mutation validates its input completely before touching any state,
// and edits/removals trigger a full balance rebuild from the surviving
// expense history rather than an incremental reversal. That keeps the
// balance vector exactly consistent with the history no matter how many
// edits occurred, at the cost of O(expenses) work per mutation — cheap for
// the group sizes this serves.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"divvy/internal/calculator"
	"divvy/internal/models"
)

// Ledger is the single owner of all person and expense records. Reads
// return copies, so no caller ever holds an alias into ledger state.
// All operations are safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	people   []models.Person
	index    map[string]int // identity key -> position in people
	expenses []models.Expense
	balances map[string]int64 // identity key -> net cents
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		index:    make(map[string]int),
		balances: make(map[string]int64),
	}
}

// AddPerson appends a person with a zero balance. Re-adding an existing
// name (case-insensitively) is a no-op, not an error.
func (l *Ledger) AddPerson(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addPersonLocked(name)
}

func (l *Ledger) addPersonLocked(name string) error {
	display := strings.TrimSpace(name)
	if display == "" {
		return models.ErrEmptyName
	}
	key := models.Key(display)
	if _, ok := l.index[key]; ok {
		return nil
	}
	l.index[key] = len(l.people)
	l.people = append(l.people, models.Person{Name: display})
	l.balances[key] = 0
	return nil
}

// ImportPeople adds every non-blank name in order. Blank entries are
// skipped and duplicates are no-ops.
func (l *Ledger) ImportPeople(names []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if err := l.addPersonLocked(name); err != nil {
			return err
		}
	}
	return nil
}

// AddExpense records a new expense: the payer is credited the full amount
// and each participant is debited their allocated share. The payer is
// always included in the participant set even if the caller omitted them.
// Validation completes before any state changes.
func (l *Ledger) AddExpense(description string, amount models.Money, payer string, participants []string) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	description = strings.TrimSpace(description)
	if !amount.IsPositive() {
		return models.Expense{}, fmt.Errorf("%w: amount must be positive", models.ErrInvalidAmount)
	}
	if description == "" {
		return models.Expense{}, models.ErrEmptyDescription
	}
	payerIdx, ok := l.index[models.Key(payer)]
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: %q", models.ErrUnknownPerson, payer)
	}

	members, err := l.resolveParticipantsLocked(participants)
	if err != nil {
		return models.Expense{}, err
	}
	if len(members) == 0 {
		return models.Expense{}, models.ErrNoParticipants
	}
	members = ensureMember(members, l.people[payerIdx].Name)

	exp := models.Expense{
		ID:           uuid.New().String(),
		Description:  description,
		Amount:       amount,
		Payer:        l.people[payerIdx].Name,
		Participants: members,
		CreatedAt:    time.Now().Unix(),
	}
	l.expenses = append(l.expenses, exp)
	l.applyLocked(exp)
	return exp, nil
}

// RemoveExpense deletes the expense with the given id and rebuilds all
// balances. It reports whether the id existed.
func (l *Ledger) RemoveExpense(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			l.recalculateLocked()
			return true
		}
	}
	return false
}

// RemovePerson deletes a person and cascades: every expense they paid or
// participated in is removed entirely, then all balances are rebuilt.
// It reports whether the person existed.
func (l *Ledger) RemovePerson(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := models.Key(name)
	idx, ok := l.index[key]
	if !ok {
		return false
	}

	display := l.people[idx].Name
	l.people = append(l.people[:idx], l.people[idx+1:]...)
	delete(l.index, key)
	delete(l.balances, key)
	for i, p := range l.people {
		l.index[models.Key(p.Name)] = i
	}

	kept := l.expenses[:0]
	for _, e := range l.expenses {
		if !e.Touches(display) {
			kept = append(kept, e)
		}
	}
	l.expenses = kept

	l.recalculateLocked()
	return true
}

// UpdateExpenseParticipants replaces an expense's participant list and
// rebuilds all balances. The expense's payer is re-added if the new list
// omits them. The boolean reports whether the id existed; an unknown
// participant yields (true, ErrUnknownPerson) and changes nothing.
func (l *Ledger) UpdateExpenseParticipants(id string, participants []string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.expenses {
		if e.ID != id {
			continue
		}
		members, err := l.resolveParticipantsLocked(participants)
		if err != nil {
			return true, err
		}
		members = ensureMember(members, e.Payer)
		l.expenses[i] = e.WithParticipants(members)
		l.recalculateLocked()
		return true, nil
	}
	return false, nil
}

// GetPeople returns the ordered person list.
func (l *Ledger) GetPeople() []models.Person {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Person(nil), l.people...)
}

// GetExpenses returns a copy of the expense history in insertion order.
func (l *Ledger) GetExpenses() []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.copyExpensesLocked()
}

// GetNetBalances returns each person's net position in roster order.
// The balances always sum to exactly zero.
func (l *Ledger) GetNetBalances() []models.Balance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.netBalancesLocked()
}

// GetTotalsSpent returns the amount each person has paid, in roster
// order, with zero for people who never paid.
func (l *Ledger) GetTotalsSpent() []models.Total {
	l.mu.RLock()
	defer l.mu.RUnlock()

	spent := make(map[string]int64, len(l.people))
	for _, e := range l.expenses {
		spent[models.Key(e.Payer)] += e.Amount.Cents
	}
	totals := make([]models.Total, len(l.people))
	for i, p := range l.people {
		totals[i] = models.Total{Name: p.Name, Spent: models.FromCents(spent[models.Key(p.Name)])}
	}
	return totals
}

// SettleUp runs the settlement solver over the current balances. The
// result is recomputed fresh on every call; nothing is cached.
func (l *Ledger) SettleUp() []models.Transfer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculator.Settle(l.netBalancesLocked())
}

// Clear resets the ledger to its initial empty state.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.people = nil
	l.expenses = nil
	l.index = make(map[string]int)
	l.balances = make(map[string]int64)
}

// Snapshot returns copies of the roster and the expense history for
// persistence.
func (l *Ledger) Snapshot() ([]models.Person, []models.Expense) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Person(nil), l.people...), l.copyExpensesLocked()
}

// Restore replaces all state with a previously saved snapshot and rebuilds
// the balances by replaying the expense history. Expenses referencing
// people missing from the roster are rejected.
func (l *Ledger) Restore(people []models.Person, expenses []models.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.people = nil
	l.expenses = nil
	l.index = make(map[string]int)
	l.balances = make(map[string]int64)

	for _, p := range people {
		if err := l.addPersonLocked(p.Name); err != nil {
			return fmt.Errorf("restore person %q: %w", p.Name, err)
		}
	}
	for _, e := range expenses {
		if _, ok := l.index[models.Key(e.Payer)]; !ok {
			return fmt.Errorf("restore expense %s: %w: payer %q", e.ID, models.ErrUnknownPerson, e.Payer)
		}
		for _, p := range e.Participants {
			if _, ok := l.index[models.Key(p)]; !ok {
				return fmt.Errorf("restore expense %s: %w: participant %q", e.ID, models.ErrUnknownPerson, p)
			}
		}
		l.expenses = append(l.expenses, e.WithParticipants(e.Participants))
	}

	l.recalculateLocked()
	return nil
}

// recalculateLocked resets every balance to zero and replays the full
// expense history through the allocator. Balance state can therefore never
// diverge from the history, regardless of how many edits preceded it.
func (l *Ledger) recalculateLocked() {
	for key := range l.balances {
		l.balances[key] = 0
	}
	for _, e := range l.expenses {
		l.applyLocked(e)
	}
}

// applyLocked credits the payer with the full amount and debits each
// participant by their allocated share.
func (l *Ledger) applyLocked(e models.Expense) {
	l.balances[models.Key(e.Payer)] += e.Amount.Cents
	for name, share := range calculator.Allocate(e.Amount, e.Participants) {
		l.balances[models.Key(name)] -= share.Cents
	}
}

func (l *Ledger) netBalancesLocked() []models.Balance {
	balances := make([]models.Balance, len(l.people))
	for i, p := range l.people {
		balances[i] = models.Balance{Name: p.Name, Net: models.FromCents(l.balances[models.Key(p.Name)])}
	}
	return balances
}

func (l *Ledger) copyExpensesLocked() []models.Expense {
	expenses := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		expenses[i] = e.WithParticipants(e.Participants)
	}
	return expenses
}

// resolveParticipantsLocked deduplicates the list case-insensitively in
// first-seen order, canonicalizes each name to its roster casing, and
// rejects unknown people. Blank entries are skipped.
func (l *Ledger) resolveParticipantsLocked(participants []string) ([]string, error) {
	seen := make(map[string]bool, len(participants))
	resolved := make([]string, 0, len(participants))
	for _, name := range participants {
		if strings.TrimSpace(name) == "" {
			continue
		}
		key := models.Key(name)
		if seen[key] {
			continue
		}
		idx, ok := l.index[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownPerson, name)
		}
		seen[key] = true
		resolved = append(resolved, l.people[idx].Name)
	}
	return resolved, nil
}

// ensureMember appends name if the list does not already contain it
// (case-insensitively).
func ensureMember(members []string, name string) []string {
	key := models.Key(name)
	for _, m := range members {
		if models.Key(m) == key {
			return members
		}
	}
	return append(members, name)
}
