package utils

import "unicode"

// ContainsDigits checks if a string contains any numeric digits
func ContainsDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks if a string is a single character repeated 3+ times
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := []rune(s)[0]
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

// IsValidTerm checks if input should be accepted as a search term.
// Rejects empty strings, anything with digits or non-letter characters,
// and degenerate repeated-letter inputs.
func IsValidTerm(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return !IsRepetitive(s)
}
