package models

import "strings"

// Person represents one group member. The display name is the sole key;
// there is no separate surrogate id.
type Person struct {
	// Name is the display name with its original casing preserved.
	Name string `json:"name"`
}

// Key returns the normalized identity key for a display name. Two names
// that normalize to the same key refer to the same person.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
