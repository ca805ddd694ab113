// Package email holds small helpers for working with email addresses.
package email

import (
	"strings"
	"unicode"
)

// GreetingName derives a display name from the local part of an address, for
// salutations when no contact person was provided. "jan.devries@acme.be"
// becomes "Jan". Addresses with an empty or unusable local part fall back to
// "Supplier".
func GreetingName(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Supplier"
	}

	return capitalize(parts[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
