package models

// Expense represents a single payment made by one person on behalf of a
// set of participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format),
	// generated on creation.
	ID string `json:"id"`

	// Description is a non-empty human-readable label.
	Description string `json:"description"`

	// Amount is the positive expense total, rounded to two decimals.
	Amount Money `json:"amount"`

	// Payer is the display name of the person who paid. The payer is
	// always a member of Participants.
	Payer string `json:"payer"`

	// Participants are the display names splitting this expense,
	// deduplicated case-insensitively in first-seen order. The order is
	// significant: remainder cents during allocation go to the
	// earliest-listed participants.
	Participants []string `json:"participants"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// WithParticipants returns a copy of the expense with the participant
// list replaced. The original is not modified.
func (e Expense) WithParticipants(participants []string) Expense {
	e.Participants = append([]string(nil), participants...)
	return e
}

// Touches reports whether the named person is the payer or a participant
// of this expense.
func (e Expense) Touches(name string) bool {
	key := Key(name)
	if Key(e.Payer) == key {
		return true
	}
	for _, p := range e.Participants {
		if Key(p) == key {
			return true
		}
	}
	return false
}
