// models/booking_response.go
package models

// EmailStatus summarises notification delivery for the booking form.
type EmailStatus struct {
	AdminEmails      map[string]string `json:"adminEmails"`
	CustomerEmail    string            `json:"customerEmail"`
	TotalAdminEmails int               `json:"totalAdminEmails"`
}

// FallbackContacts are offered whenever the automated path did not complete.
type FallbackContacts struct {
	WhatsApp    string `json:"whatsapp"`
	Email       string `json:"email"`
	CustomEmail string `json:"customEmail,omitempty"`
}

// BookingResponse is returned by the booking endpoint.
// On success it carries the reference and per-channel status; on failure it
// carries the contacts the guest can use to finish the booking by hand.
type BookingResponse struct {
	Success      bool              `json:"success"`
	Code         string            `json:"code,omitempty"` // Machine-readable failure reason
	Message      string            `json:"message"`
	BookingID    string            `json:"bookingId,omitempty"`
	Duplicate    bool              `json:"duplicate,omitempty"`
	EmailStatus  *EmailStatus      `json:"emailStatus,omitempty"`
	Pricing      *PricingBreakdown `json:"pricing,omitempty"`
	WhatsAppLink string            `json:"whatsappLink,omitempty"`
	Fallback     *FallbackContacts `json:"fallback,omitempty"`
}

// NewEmailStatus converts a dispatch result into the response summary.
func NewEmailStatus(r DispatchResult) *EmailStatus {
	return &EmailStatus{
		AdminEmails:      r.AdminStatuses(),
		CustomerEmail:    r.Customer.StatusText(),
		TotalAdminEmails: r.AdminAttempted(),
	}
}

// SkippedEmailStatus reports a submission that sent nothing, such as a
// replay of a booking that was already dispatched.
func SkippedEmailStatus() *EmailStatus {
	return &EmailStatus{
		AdminEmails:   map[string]string{},
		CustomerEmail: StatusSkipped,
	}
}
