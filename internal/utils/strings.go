package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeAddress cleans a copy-pasted address: full-width spaces become
// half-width, surrounding space is trimmed, internal runs collapse to one.
func NormalizeAddress(s string) string {
	s = strings.ReplaceAll(s, "　", " ")
	return NormalizeSpace(strings.TrimSpace(s))
}
