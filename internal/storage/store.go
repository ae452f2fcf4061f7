// Package storage provides abstractions for session snapshot persistence.
package storage

import (
	"context"

	"divvy/internal/models"
)

// Store persists whole-session snapshots of the ledger: the person roster
// and the expense history. Balances are derived state and are never
// stored; they are rebuilt by replaying the restored history.
//
// The abstraction allows swapping backends without changing the server.
type Store interface {
	// Save atomically replaces the stored snapshot.
	Save(ctx context.Context, people []models.Person, expenses []models.Expense) error

	// Load returns the stored snapshot. An empty database yields empty
	// slices, not an error.
	Load(ctx context.Context) ([]models.Person, []models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
