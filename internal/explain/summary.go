// Package explain turns ledger state into prose. A deterministic textual
// summary is handed to an external text-generation service; if that
// service is unavailable or returns nothing, a fully algorithmic fallback
// explanation is produced instead.
package explain

import (
	"fmt"
	"strings"

	"divvy/internal/models"
)

// Summarize renders a deterministic plain-text snapshot of the ledger:
// people, totals spent, net balances, expenses, and the settlement
// transfers. The output is stable for identical input, so it can be used
// as a prompt and in tests.
func Summarize(people []models.Person, totals []models.Total, balances []models.Balance, expenses []models.Expense, transfers []models.Transfer) string {
	var b strings.Builder

	b.WriteString("Group members: ")
	if len(people) == 0 {
		b.WriteString("(none)")
	}
	for i, p := range people {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteString("\n\nTotal spent per person:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "- %s paid %s\n", t.Name, t.Spent)
	}

	b.WriteString("\nNet balances (positive = is owed, negative = owes):\n")
	for _, bal := range balances {
		fmt.Fprintf(&b, "- %s: %s\n", bal.Name, bal.Net)
	}

	b.WriteString("\nExpenses:\n")
	if len(expenses) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, e := range expenses {
		fmt.Fprintf(&b, "- %s: %s paid by %s, split between %s\n",
			e.Description, e.Amount, e.Payer, strings.Join(e.Participants, ", "))
	}

	b.WriteString("\nSuggested settlement payments:\n")
	if len(transfers) == 0 {
		b.WriteString("- none needed, everyone is settled\n")
	}
	for _, t := range transfers {
		fmt.Fprintf(&b, "- %s pays %s to %s\n", t.From, t.Amount, t.To)
	}

	return b.String()
}

// Fallback builds a step-by-step explanation of the settlement without any
// external service: it walks the transfer list and narrates each payment's
// effect on the remaining debt and credit.
func Fallback(balances []models.Balance, transfers []models.Transfer) string {
	if len(transfers) == 0 {
		return "Everyone is settled up. No payments are needed."
	}

	remaining := make(map[string]int64, len(balances))
	for _, b := range balances {
		remaining[b.Name] = b.Net.Cents
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To settle all balances, %d payment(s) are needed:\n", len(transfers))
	for i, t := range transfers {
		remaining[t.From] += t.Amount.Cents
		remaining[t.To] -= t.Amount.Cents

		fmt.Fprintf(&b, "%d. %s pays %s to %s", i+1, t.From, t.Amount, t.To)

		if owed := remaining[t.From]; owed == 0 {
			fmt.Fprintf(&b, "; %s is now fully settled", t.From)
		} else {
			fmt.Fprintf(&b, "; %s still owes %s", t.From, models.FromCents(owed).Abs())
		}
		if due := remaining[t.To]; due == 0 {
			fmt.Fprintf(&b, "; %s is now fully repaid.\n", t.To)
		} else {
			fmt.Fprintf(&b, "; %s is still owed %s.\n", t.To, models.FromCents(due))
		}
	}
	b.WriteString("After these payments every balance is zero.")
	return b.String()
}
