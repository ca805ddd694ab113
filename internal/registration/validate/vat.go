package validate

import "regexp"

// vatPatterns holds the per-country VAT formats the form accepts. The country
// prefixes are disjoint, so a number matches at most one pattern.
var vatPatterns = []struct {
	country string
	re      *regexp.Regexp
}{
	{"BE", regexp.MustCompile(`^BE[0-9]{10}$`)},
	{"NL", regexp.MustCompile(`^NL[0-9]{9}B[0-9]{2}$`)},
	{"FR", regexp.MustCompile(`^FR[A-Z0-9]{2}[0-9]{9}$`)},
	{"DE", regexp.MustCompile(`^DE[0-9]{9}$`)},
	{"LU", regexp.MustCompile(`^LU[0-9]{8}$`)},
}

// NormalizeVAT strips internal whitespace and upper-cases the number, so the
// stored form is canonical regardless of how the user typed it.
func NormalizeVAT(s string) string {
	return stripSpaces(toUpper(s))
}

// MatchVAT reports which country pattern a normalized VAT number satisfies.
func MatchVAT(vat string) (country string, ok bool) {
	for _, p := range vatPatterns {
		if p.re.MatchString(vat) {
			return p.country, true
		}
	}
	return "", false
}
