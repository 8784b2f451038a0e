package utils

import "strings"

// DigitsOnly strips everything but ASCII digits, e.g. for phone numbers
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
