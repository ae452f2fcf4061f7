// Package calculator provides the pure split and settlement functions.
// Both operate on snapshots passed in by the caller and keep no state.
package calculator

import "divvy/internal/models"

// Allocate splits amount among participants in exact cents.
//
// Each participant receives the base share (cents / count); the remainder
// cents are awarded one each to the earliest-listed participants, so the
// participant order is significant and must be the expense's stored order.
// The returned shares always sum exactly to amount.
func Allocate(amount models.Money, participants []string) map[string]models.Money {
	n := int64(len(participants))
	if n == 0 {
		return nil
	}

	base := amount.Cents / n
	remainder := amount.Cents % n

	shares := make(map[string]models.Money, n)
	for i, p := range participants {
		cents := base
		// Remainder is < count by construction; the modulo keeps the
		// distribution bounded if that ever stops holding.
		if int64(i) < remainder%n {
			cents++
		}
		shares[p] = models.FromCents(cents)
	}

	// Any residual from an unexpected rounding path is folded into the
	// first participant so the exact-sum invariant holds unconditionally.
	var sum int64
	for _, s := range shares {
		sum += s.Cents
	}
	if diff := amount.Cents - sum; diff != 0 {
		first := participants[0]
		shares[first] = models.FromCents(shares[first].Cents + diff)
	}

	return shares
}
