package models

// Delivery statuses reported per recipient.
const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Notification audiences. Each audience is sent from its own sender identity.
const (
	AudienceAdmin    = "admin"
	AudienceCustomer = "customer"
)

// RecipientOutcome is the result of one send attempt.
type RecipientOutcome struct {
	Recipient string `json:"recipient"`
	Audience  string `json:"audience"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Delivered reports whether the message was handed to the transport.
func (o RecipientOutcome) Delivered() bool {
	return o.Status == StatusDelivered
}

// StatusText renders the outcome the way the booking endpoint reports it.
func (o RecipientOutcome) StatusText() string {
	if o.Reason == "" {
		return o.Status
	}
	return o.Status + ": " + o.Reason
}

// DispatchResult aggregates every send attempted for one booking.
// Admin outcomes keep the order recipients were resolved in.
type DispatchResult struct {
	Admin    []RecipientOutcome `json:"admin"`
	Customer RecipientOutcome   `json:"customer"`
}

// AdminAttempted is the number of admin sends attempted.
func (r DispatchResult) AdminAttempted() int {
	return len(r.Admin)
}

// AdminSucceeded is the number of admin sends that were delivered.
func (r DispatchResult) AdminSucceeded() int {
	n := 0
	for _, o := range r.Admin {
		if o.Delivered() {
			n++
		}
	}
	return n
}

// FullyDelivered is true only when every admin send and the customer send succeeded.
func (r DispatchResult) FullyDelivered() bool {
	return len(r.Admin) > 0 && r.AdminSucceeded() == len(r.Admin) && r.Customer.Delivered()
}

// AdminStatuses maps each admin address to its status text.
func (r DispatchResult) AdminStatuses() map[string]string {
	out := make(map[string]string, len(r.Admin))
	for _, o := range r.Admin {
		out[o.Recipient] = o.StatusText()
	}
	return out
}
