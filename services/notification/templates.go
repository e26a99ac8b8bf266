package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"safaricamp/models"
	"safaricamp/services/contact"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("notification").
		Funcs(template.FuncMap{
			"money":    contact.FormatMoney,
			"date":     func(t time.Time) string { return t.Format("Mon, 2 Jan 2006") },
			"datetime": func(t time.Time) string { return t.UTC().Format("2 Jan 2006 15:04 MST") },
			"plural": func(n int, word string) string {
				if n == 1 {
					return word
				}
				return word + "s"
			},
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// Renderer turns a booking record into the admin alert and the guest
// confirmation. It never computes prices: both documents show the record's
// breakdown, so the two emails always agree on the amount.
type Renderer struct {
	Contacts contact.Handles
}

type templateData struct {
	Record       *models.BookingRecord
	SupportEmail string
	WhatsAppURL  string
}

func (r Renderer) data(record *models.BookingRecord) templateData {
	d := templateData{Record: record, SupportEmail: r.Contacts.SupportEmail}
	if r.Contacts.WhatsAppNumber != "" {
		d.WhatsAppURL = r.Contacts.WhatsAppURL()
	}
	return d
}

// RenderAdminNotification renders the operator alert.
func (r Renderer) RenderAdminNotification(record *models.BookingRecord) (string, error) {
	return render("admin.html", r.data(record))
}

// RenderCustomerConfirmation renders the guest's confirmation.
func (r Renderer) RenderCustomerConfirmation(record *models.BookingRecord) (string, error) {
	return render("customer.html", r.data(record))
}

// AdminSubject is the subject line of the operator alert.
func AdminSubject(record *models.BookingRecord) string {
	return fmt.Sprintf("New Booking %s: %s, %s (%d guests)",
		record.ID, record.FullName(), record.Location.Name, record.Pricing.GroupSize)
}

// CustomerSubject is the subject line of the guest confirmation.
func CustomerSubject(record *models.BookingRecord) string {
	return fmt.Sprintf("Your booking request %s at %s", record.ID, record.Location.Name)
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
