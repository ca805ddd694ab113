// Package validate implements the field-by-field validation and sanitization
// pipeline for supplier submissions. Validation is pure: the same input always
// produces the same result, and no I/O happens here.
package validate

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"supplierintake/internal/registration/models"
)

// Countries accepted on the registration form. Matching is exact and
// case-sensitive; the form presents these as a fixed dropdown.
var allowedCountries = map[string]struct{}{
	"Belgium":     {},
	"Netherlands": {},
	"France":      {},
	"Germany":     {},
	"Luxembourg":  {},
}

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9\s\-]{2,20}$`)
)

// Result carries every accumulated field error plus the sanitized entity.
// Sanitized is only meaningful when Errors is empty; absent optional fields
// stay empty, never defaulted.
type Result struct {
	Errors    []string
	Sanitized models.SupplierRegistration
}

// Valid reports whether the submission passed every rule.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validator applies the intake rules. Safe for concurrent use: the
// sanitization policy is immutable once built.
type Validator struct {
	policy     *bluemonday.Policy
	requireVAT bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithVATOptional relaxes the policy that a VAT number must be supplied.
// Format rules still apply when one is present.
func WithVATOptional() Option {
	return func(v *Validator) {
		v.requireVAT = false
	}
}

// New builds a Validator with the default policy: VAT number required,
// strict HTML sanitization on all free-text fields.
func New(opts ...Option) *Validator {
	v := &Validator{
		policy:     bluemonday.StrictPolicy(),
		requireVAT: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every rule in form order and accumulates errors rather than
// short-circuiting, so the caller can report all problems at once.
func (v *Validator) Validate(req models.SubmissionRequest) Result {
	var res Result

	// Step 1: company information.
	companyName := v.sanitize(req.CompanyName)
	switch {
	case companyName == "":
		res.fail("Company name is required")
	case tooLong(companyName, 255):
		res.fail("Company name must be 255 characters or fewer")
	default:
		res.Sanitized.CompanyName = companyName
	}

	if contact := v.sanitize(req.ContactPerson); contact != "" {
		if tooLong(contact, 255) {
			res.fail("Contact person must be 255 characters or fewer")
		} else {
			res.Sanitized.ContactPerson = contact
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case email == "":
		res.fail("Email is required")
	case !emailPattern.MatchString(email):
		res.fail("Invalid email address")
	default:
		res.Sanitized.Email = email
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		if !phonePattern.MatchString(phone) {
			res.fail("Invalid phone number")
		} else {
			res.Sanitized.Phone = v.sanitize(phone)
		}
	}

	if address := v.sanitize(req.Address); address != "" {
		if tooLong(address, 500) {
			res.fail("Address must be 500 characters or fewer")
		} else {
			res.Sanitized.Address = address
		}
	}

	if city := v.sanitize(req.City); city != "" {
		if tooLong(city, 100) {
			res.fail("City must be 100 characters or fewer")
		} else {
			res.Sanitized.City = city
		}
	}

	if postalCode := strings.TrimSpace(req.PostalCode); postalCode != "" {
		if !postalCodePattern.MatchString(postalCode) {
			res.fail("Invalid postal code")
		} else {
			res.Sanitized.PostalCode = v.sanitize(postalCode)
		}
	}

	if country := strings.TrimSpace(req.Country); country != "" {
		if _, ok := allowedCountries[country]; !ok {
			res.fail("Country must be one of: Belgium, Netherlands, France, Germany, Luxembourg")
		} else {
			res.Sanitized.Country = country
		}
	}

	// Step 2: VAT information.
	vat := NormalizeVAT(req.VATNumber)
	switch {
	case vat == "" && v.requireVAT:
		res.fail("VAT number is required")
	case vat != "":
		if _, ok := MatchVAT(vat); !ok {
			res.fail("Invalid VAT number format")
		} else {
			res.Sanitized.VATNumber = vat
		}
	}

	// Step 3: bank information.
	iban := NormalizeIBAN(req.IBAN)
	switch {
	case iban == "":
		res.fail("IBAN is required")
	case !ValidIBAN(iban):
		res.fail("Invalid IBAN")
	default:
		res.Sanitized.IBAN = iban
	}

	if bic := strings.ToUpper(strings.TrimSpace(req.BIC)); bic != "" {
		if !ValidBIC(bic) {
			res.fail("Invalid BIC/SWIFT code")
		} else {
			res.Sanitized.BIC = bic
		}
	}

	if bankName := v.sanitize(req.BankName); bankName != "" {
		if tooLong(bankName, 255) {
			res.fail("Bank name must be 255 characters or fewer")
		} else {
			res.Sanitized.BankName = bankName
		}
	}

	return res
}

func (r *Result) fail(msg string) {
	r.Errors = append(r.Errors, msg)
}

// sanitize strips all markup, including script/style content, and returns the
// remaining plain text. Escaping back out happens at render time; storing
// plain text keeps values like "AT&T" intact.
func (v *Validator) sanitize(s string) string {
	cleaned := v.policy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// stripSpaces removes every whitespace rune, used for IBAN/VAT normalization.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
