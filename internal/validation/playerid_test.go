package validation

import (
	"strings"
	"testing"
)

func TestValidatePlayerID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		valid  bool
		reason Reason
	}{
		{
			name:   "empty string",
			id:     "",
			reason: ReasonRequired,
		},
		{
			name:   "whitespace only",
			id:     "  \t ",
			reason: ReasonRequired,
		},
		{
			name:   "contains letters",
			id:     "1234a67890",
			reason: ReasonDigitsOnly,
		},
		{
			name:   "short with letters reports digits first",
			id:     "12a",
			reason: ReasonDigitsOnly,
		},
		{
			name:   "surrounding spaces",
			id:     " 123456789 ",
			reason: ReasonDigitsOnly,
		},
		{
			name:   "non-ascii digits",
			id:     "١٢٣٤٥٦٧٨٩",
			reason: ReasonDigitsOnly,
		},
		{
			name:   "too short",
			id:     "1234567",
			reason: ReasonLength,
		},
		{
			name:   "too long",
			id:     "1234567890123",
			reason: ReasonLength,
		},
		{
			name:  "lower bound",
			id:    "12345678",
			valid: true,
		},
		{
			name:  "nine digits",
			id:    "123456789",
			valid: true,
		},
		{
			name:  "upper bound",
			id:    "123456789012",
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := ValidatePlayerID(tt.id)
			if valid != tt.valid {
				t.Fatalf("ValidatePlayerID(%q) valid = %v, want %v", tt.id, valid, tt.valid)
			}
			if reason != tt.reason {
				t.Fatalf("ValidatePlayerID(%q) reason = %q, want %q", tt.id, reason, tt.reason)
			}
		})
	}
}

func TestValidatePlayerID_AllLengths(t *testing.T) {
	for n := 1; n <= 20; n++ {
		id := strings.Repeat("7", n)
		valid, reason := ValidatePlayerID(id)

		want := n >= 8 && n <= 12
		if valid != want {
			t.Fatalf("length %d: valid = %v, want %v", n, valid, want)
		}
		if !want && reason != ReasonLength {
			t.Fatalf("length %d: reason = %q, want %q", n, reason, ReasonLength)
		}
	}
}
