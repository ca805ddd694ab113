package validate

import (
	"regexp"
	"strings"
)

var (
	// Country code, two check digits, then up to 30 alphanumerics.
	ibanStructure = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	// Bank code, country code, location code, optional branch code.
	bicStructure = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// NormalizeIBAN strips whitespace and upper-cases, the canonical stored form.
// Normalization is idempotent: validating before or after it never disagrees.
func NormalizeIBAN(s string) string {
	return stripSpaces(toUpper(s))
}

// ValidIBAN checks structure and the ISO 7064 mod-97 checksum over the
// rearranged string (body + country + check digits, letters mapped to 10..35).
func ValidIBAN(iban string) bool {
	if !ibanStructure.MatchString(iban) {
		return false
	}

	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			rem = (rem*100 + int(r-'A') + 10) % 97
		default:
			return false
		}
	}
	return rem == 1
}

// ValidBIC checks the 8 or 11 character BIC/SWIFT format.
func ValidBIC(bic string) bool {
	return bicStructure.MatchString(bic)
}

func toUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
