// Package validation содержит функции валидации входных данных.
package validation

import (
	"regexp"
	"strings"
)

// Reason описывает причину, по которой Player ID не прошёл проверку.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonRequired   Reason = "ID required."
	ReasonDigitsOnly Reason = "digits only."
	ReasonLength     Reason = "length out of range."
)

const (
	minPlayerIDLength = 8
	maxPlayerIDLength = 12
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidatePlayerID проверяет игровой идентификатор. Правила применяются по порядку,
// возвращается причина первого нарушенного правила.
func ValidatePlayerID(candidate string) (bool, Reason) {
	if strings.TrimSpace(candidate) == "" {
		return false, ReasonRequired
	}

	if !digitsOnly.MatchString(candidate) {
		return false, ReasonDigitsOnly
	}

	// строка состоит только из ASCII-цифр, поэтому длина в байтах равна числу цифр
	if n := len(candidate); n < minPlayerIDLength || n > maxPlayerIDLength {
		return false, ReasonLength
	}

	return true, ReasonNone
}
