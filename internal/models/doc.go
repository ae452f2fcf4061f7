// Package models defines the core domain types for divvy.
//
// # Models
//
//   - Money: exact currency amount in integer cents
//   - Person: group member, identified case-insensitively by display name
//   - Expense: a payment made by one person on behalf of a participant set
//   - Balance: derived net position of one person
//   - Total: amount a person has paid across all expenses
//   - Transfer: a directed settlement payment
//
// # Design principles
//
//  1. No binary floating-point in any balance path: Money is integer cents,
//     decimal conversion happens only at the parsing and formatting edges.
//  2. People are identified by name strings; identity is case-insensitive
//     while the original casing is preserved for display.
//  3. Validation failures are sentinel errors; a missing person or expense
//     is an expected outcome and is reported through boolean results.
package models
