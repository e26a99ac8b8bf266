package notification

import (
	"errors"
	"fmt"
)

// ErrNoAdminConfigured means no operator mailbox is configured. Dispatch is
// aborted before any send since the booking would reach nobody.
var ErrNoAdminConfigured = errors.New("no admin notification address configured")

// Failure kinds recorded against individual sends.
const (
	KindRecipientSendFailed = "RecipientSendFailed"
	KindCustomerSendFailed  = "CustomerSendFailed"
)

// SendError describes one failed send. It is recorded, never returned from Dispatch.
type SendError struct {
	Kind      string
	Recipient string
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Recipient, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
