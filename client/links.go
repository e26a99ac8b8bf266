package client

import (
	"fmt"

	"safaricamp/services/contact"
)

// MailtoLink opens an email draft to the camp with the full itemized booking.
func (o *Orchestrator) MailtoLink() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.fallbackReady(); err != nil {
		return "", err
	}
	to := o.handles.SupportEmail
	if o.response != nil && o.response.Fallback != nil && o.response.Fallback.Email != "" {
		to = o.response.Fallback.Email
	}
	return contact.MailtoLink(to, contact.Subject(o.record), contact.EmailBody(o.record)), nil
}

// WhatsAppLink opens a chat with the camp pre-filled with the booking summary.
// It is offered after a success as well, for guests who want a quick reply.
func (o *Orchestrator) WhatsAppLink() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.fallbackReady(); err != nil {
		return "", err
	}
	return contact.WhatsAppLink(o.handles.WhatsAppNumber, contact.WhatsAppSummary(o.record)), nil
}

func (o *Orchestrator) fallbackReady() error {
	if o.record == nil {
		return ErrNoBooking
	}
	if o.state != StateFailed && o.state != StateSucceeded {
		return fmt.Errorf("%w: fallback requested while %s", ErrInvalidTransition, o.state)
	}
	return nil
}
