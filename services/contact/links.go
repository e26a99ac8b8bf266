// Package contact builds the deep links guests use to reach the camp by
// hand: a pre-filled email draft and a WhatsApp chat.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"safaricamp/models"
)

// Handles are the operator contacts offered to guests.
type Handles struct {
	SupportEmail   string
	CustomEmail    string
	WhatsAppNumber string
}

// Fallback converts the handles into the wire shape returned on failure.
func (h Handles) Fallback() *models.FallbackContacts {
	fb := &models.FallbackContacts{
		WhatsApp: h.WhatsAppURL(),
		Email:    h.SupportEmail,
	}
	if !strings.EqualFold(strings.TrimSpace(h.CustomEmail), strings.TrimSpace(h.SupportEmail)) {
		fb.CustomEmail = h.CustomEmail
	}
	return fb
}

// WhatsAppURL opens a chat with the camp without a pre-filled message.
func (h Handles) WhatsAppURL() string {
	return "https://wa.me/" + digits(h.WhatsAppNumber)
}

// WhatsAppLink opens a chat with text already typed in.
func WhatsAppLink(number, text string) string {
	return "https://wa.me/" + digits(number) + "?text=" + escape(text)
}

// MailtoLink opens an email draft addressed to the camp.
func MailtoLink(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + escape(subject) + "&body=" + escape(body)
}

// escape encodes spaces as %20; mail clients show a literal "+" otherwise.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Subject is the email subject used for a booking.
func Subject(r *models.BookingRecord) string {
	return fmt.Sprintf("Booking Request %s - %s", r.ID, r.Location.Name)
}

// WhatsAppSummary is the short booking message sent over WhatsApp.
func WhatsAppSummary(r *models.BookingRecord) string {
	p := r.Pricing
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I'd like to book %s.\n\n", r.Location.Name)
	fmt.Fprintf(&b, "Booking ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Name: %s\n", r.FullName())
	fmt.Fprintf(&b, "Email: %s\n", r.Email)
	fmt.Fprintf(&b, "Phone: %s\n", r.Phone)
	fmt.Fprintf(&b, "Check-in: %s\n", r.CheckIn)
	fmt.Fprintf(&b, "Check-out: %s\n", r.CheckOut)
	fmt.Fprintf(&b, "Guests: %d\n", p.GroupSize)
	fmt.Fprintf(&b, "Accommodation: %s\n", r.AccommodationType)
	fmt.Fprintf(&b, "Meal plan: %s\n", r.MealPlan)
	fmt.Fprintf(&b, "Total: %s for %d %s", FormatMoney(p.Total), p.Nights, plural(p.Nights, "night"))
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "\n\nSpecial requests: %s", r.SpecialRequests)
	}
	return b.String()
}

// EmailBody is the full itemized booking used in the email draft.
func EmailBody(r *models.BookingRecord) string {
	p := r.Pricing
	var b strings.Builder
	b.WriteString("Hello,\n\nI would like to make the following booking.\n\n")
	fmt.Fprintf(&b, "BOOKING ID: %s\n\n", r.ID)

	b.WriteString("GUEST\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n\n", r.FullName(), r.Email, r.Phone)

	b.WriteString("STAY\n")
	fmt.Fprintf(&b, "Location: %s\n", r.Location.Name)
	if r.Location.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", r.Location.Address)
	}
	fmt.Fprintf(&b, "Check-in: %s\nCheck-out: %s\nNights: %d\n", r.CheckIn, r.CheckOut, p.Nights)
	fmt.Fprintf(&b, "Guests: %d\nAccommodation: %s\nMeal plan: %s\n\n", p.GroupSize, r.AccommodationType, r.MealPlan)

	b.WriteString("PRICE\n")
	b.WriteString(strings.Join(PriceLines(p), "\n"))
	b.WriteString("\n")

	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "\nSPECIAL REQUESTS\n%s\n", r.SpecialRequests)
	}
	b.WriteString("\nThank you.")
	return b.String()
}

// PriceLines itemizes a breakdown as plain text lines.
func PriceLines(p models.PricingBreakdown) []string {
	lines := []string{
		fmt.Sprintf("Base rate for 2 guests: %s x %d %s = %s",
			FormatMoney(p.BaseRateForTwo), p.Nights, plural(p.Nights, "night"), FormatMoney(p.BaseCost)),
	}
	if p.ExtraGuests > 0 {
		lines = append(lines,
			fmt.Sprintf("Additional guests: %d x %s x %d %s = %s",
				p.ExtraGuests, FormatMoney(p.ExtraGuestRate), p.Nights, plural(p.Nights, "night"), FormatMoney(p.ExtraGuestCost)),
			fmt.Sprintf("Group savings: %s", FormatMoney(p.Savings)))
	}
	return append(lines, fmt.Sprintf("Total: %s", FormatMoney(p.Total)))
}

// FormatMoney renders an amount as "$1,234" or "$1,234.50".
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole, frac := cents/100, cents%100

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
