package notify

import (
	"fmt"
	"html/template"
	"strings"

	"supplierintake/internal/registration/models"
	"supplierintake/pkg/email"
)

// Field values arriving here have already been through the sanitizer, and
// html/template escapes again at render time, so user input can never become
// markup in a mailbox.

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Registration received</h2>
  <p>Dear {{.Greeting}},</p>
  <p>Thank you for registering <strong>{{.Reg.CompanyName}}</strong> as a supplier.
  We have recorded your details and our procurement team will review them shortly.</p>
  <table cellpadding="4">
    <tr><td>Company</td><td>{{.Reg.CompanyName}}</td></tr>
    <tr><td>Email</td><td>{{.Reg.Email}}</td></tr>
    {{if .Reg.VATNumber}}<tr><td>VAT number</td><td>{{.Reg.VATNumber}}</td></tr>{{end}}
    <tr><td>IBAN</td><td>{{.Reg.IBAN}}</td></tr>
  </table>
  <p>You do not need to take further action.</p>
</body>
</html>`))

var adminAlertTmpl = template.Must(template.New("adminAlert").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New supplier registration</h2>
  <table cellpadding="4">
    <tr><td>Company</td><td>{{.CompanyName}}</td></tr>
    {{if .ContactPerson}}<tr><td>Contact</td><td>{{.ContactPerson}}</td></tr>{{end}}
    <tr><td>Email</td><td>{{.Email}}</td></tr>
    {{if .Phone}}<tr><td>Phone</td><td>{{.Phone}}</td></tr>{{end}}
    {{if .Country}}<tr><td>Country</td><td>{{.Country}}</td></tr>{{end}}
    {{if .VATNumber}}<tr><td>VAT number</td><td>{{.VATNumber}}</td></tr>{{end}}
    <tr><td>IBAN</td><td>{{.IBAN}}</td></tr>
    {{if .BIC}}<tr><td>BIC</td><td>{{.BIC}}</td></tr>{{end}}
    {{if .BankName}}<tr><td>Bank</td><td>{{.BankName}}</td></tr>{{end}}
  </table>
</body>
</html>`))

func confirmationMessage(reg *models.SupplierRegistration) (Message, error) {
	greeting := reg.ContactPerson
	if greeting == "" {
		greeting = email.GreetingName(reg.Email)
	}

	var body strings.Builder
	data := struct {
		Greeting string
		Reg      *models.SupplierRegistration
	}{greeting, reg}
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}

	return Message{
		To:      []string{reg.Email},
		Subject: "Supplier registration received",
		HTML:    body.String(),
	}, nil
}

func adminAlertMessage(recipients []string, reg *models.SupplierRegistration) (Message, error) {
	var body strings.Builder
	if err := adminAlertTmpl.Execute(&body, reg); err != nil {
		return Message{}, fmt.Errorf("render admin alert: %w", err)
	}

	return Message{
		To:      recipients,
		Subject: fmt.Sprintf("New supplier registration: %s", reg.CompanyName),
		HTML:    body.String(),
	}, nil
}
