package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCents int64
		wantErr   bool
	}{
		{name: "plain amount", input: "12.34", wantCents: 1234},
		{name: "integer amount", input: "30", wantCents: 3000},
		{name: "comma separator", input: "12,34", wantCents: 1234},
		{name: "rounds half away from zero", input: "12.345", wantCents: 1235},
		{name: "negative rounds half away from zero", input: "-12.345", wantCents: -1235},
		{name: "truncates below half", input: "12.344", wantCents: 1234},
		{name: "surrounding whitespace", input: "  5.00 ", wantCents: 500},
		{name: "negative amount preserved", input: "-5", wantCents: -500},
		{name: "zero", input: "0", wantCents: 0},
		{name: "empty string", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got.Cents != tt.wantCents {
				t.Errorf("ParseAmount(%q) = %d cents, want %d", tt.input, got.Cents, tt.wantCents)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{-50, "-0.50"},
		{0, "0.00"},
		{100000, "1000.00"},
	}
	for _, tt := range tests {
		if got := FromCents(tt.cents).String(); got != tt.want {
			t.Errorf("FromCents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(FromCents(1234))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != "12.34" {
		t.Errorf("Marshal = %s, want 12.34", b)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("12.34"), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if fromNumber.Cents != 1234 {
		t.Errorf("Unmarshal number = %d cents, want 1234", fromNumber.Cents)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"12,34"`), &fromString); err != nil {
		t.Fatalf("Unmarshal string failed: %v", err)
	}
	if fromString.Cents != 1234 {
		t.Errorf("Unmarshal string = %d cents, want 1234", fromString.Cents)
	}

	var invalid Money
	if err := json.Unmarshal([]byte("null"), &invalid); err == nil {
		t.Error("Unmarshal null succeeded, want error")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, b := FromCents(1000), FromCents(333)
	if got := a.Add(b).Cents; got != 1333 {
		t.Errorf("Add = %d, want 1333", got)
	}
	if got := a.Sub(b).Cents; got != 667 {
		t.Errorf("Sub = %d, want 667", got)
	}
	if got := FromCents(-250).Abs().Cents; got != 250 {
		t.Errorf("Abs = %d, want 250", got)
	}
	if !FromCents(0).IsZero() || FromCents(1).IsZero() {
		t.Error("IsZero misclassified")
	}
	if !a.IsPositive() || !a.Neg().IsNegative() {
		t.Error("sign predicates misclassified")
	}
}

func TestKey(t *testing.T) {
	if Key("  Alice ") != "alice" || Key("ALICE") != Key("alice") {
		t.Error("Key must trim and lowercase")
	}
}
