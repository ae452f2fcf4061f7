package calculator

import (
	"sort"

	"divvy/internal/models"
)

// queued is one remaining creditor or debtor magnitude during settlement.
type queued struct {
	name  string
	cents int64
}

// Settle computes the transfers that bring every balance to zero using
// greedy largest-creditor / largest-debtor matching.
//
// Both queues are sorted descending by magnitude exactly once (stable, so
// equal magnitudes keep the incoming balance order) and then consumed with
// a two-pointer pass: the heads are matched, the smaller magnitude is paid
// in full, and a queue advances only when its head is exhausted. Leftovers
// are not re-sorted. Zero-amount transfers are never emitted, and the loop
// terminates as soon as either queue empties even if the balances do not
// sum to zero.
func Settle(balances []models.Balance) []models.Transfer {
	var creditors, debtors []queued
	for _, b := range balances {
		switch {
		case b.Net.IsPositive():
			creditors = append(creditors, queued{name: b.Name, cents: b.Net.Cents})
		case b.Net.IsNegative():
			debtors = append(debtors, queued{name: b.Name, cents: -b.Net.Cents})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].cents > creditors[j].cents })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].cents > debtors[j].cents })

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := debtor.cents
		if creditor.cents < amount {
			amount = creditor.cents
		}
		if amount > 0 {
			transfers = append(transfers, models.Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: models.FromCents(amount),
			})
		}

		debtor.cents -= amount
		creditor.cents -= amount
		if debtor.cents == 0 {
			i++
		}
		if creditor.cents == 0 {
			j++
		}
	}

	return transfers
}
