// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"divvy/internal/models"
	"divvy/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates
// the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, people []models.Person, expenses []models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expense_participants", "expenses", "people"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, p := range people {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO people (position, name) VALUES (?, ?)",
			i, p.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i, e := range expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, position, description, amount_cents, payer, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, i, e.Description, e.Amount.Cents, e.Payer, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		for j, name := range e.Participants {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, position, name) VALUES (?, ?, ?)",
				e.ID, j, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load reads the stored snapshot, preserving roster and participant order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Person, []models.Expense, error) {
	var people []models.Person
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM people ORDER BY position")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, models.Person{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	var expenses []models.Expense
	expRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount_cents, payer, created_at FROM expenses ORDER BY position")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var e models.Expense
		var cents int64
		if err := expRows.Scan(&e.ID, &e.Description, &cents, &e.Payer, &e.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = models.FromCents(cents)
		expenses = append(expenses, e)
	}
	if err := expRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		partRows, err := s.db.QueryContext(ctx,
			"SELECT name FROM expense_participants WHERE expense_id = ? ORDER BY position",
			expenses[i].ID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get participants: %w", err)
		}
		for partRows.Next() {
			var name string
			if err := partRows.Scan(&name); err != nil {
				partRows.Close()
				return nil, nil, fmt.Errorf("failed to scan participant: %w", err)
			}
			expenses[i].Participants = append(expenses[i].Participants, name)
		}
		if err := partRows.Err(); err != nil {
			partRows.Close()
			return nil, nil, fmt.Errorf("failed to iterate participants: %w", err)
		}
		partRows.Close()
	}

	return people, expenses, nil
}
