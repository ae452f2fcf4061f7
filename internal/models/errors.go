package models

import "errors"

// Validation errors returned by the ledger for malformed or
// referentially-invalid input. A mutation that returns one of these has
// changed nothing.
//
// A missing person or expense id is not an error; operations report it
// through a boolean result instead.
var (
	ErrEmptyName        = errors.New("empty person name")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownPerson    = errors.New("unknown person")
	ErrNoParticipants   = errors.New("no participants")
)

// IsInvalidArgument reports whether err is one of the validation errors
// above. The HTTP layer uses it to map ledger failures to 400 responses.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrUnknownPerson) ||
		errors.Is(err, ErrNoParticipants)
}
