package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"safaricamp/models"
	"safaricamp/services/contact"
)

// NotificationService delivers booking emails to the operator and the guest.
type NotificationService interface {
	// AdminRecipients resolves the operator mailboxes without sending anything.
	AdminRecipients() ([]string, error)
	// Dispatch sends the admin alert to every operator mailbox and the
	// confirmation to the guest. Individual send failures are reported in the
	// result; the only error is ErrNoAdminConfigured or a rendering failure,
	// both raised before any send.
	Dispatch(ctx context.Context, record *models.BookingRecord) (models.DispatchResult, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	adminMailer    Mailer
	customerMailer Mailer
	primaryAdmin   string
	secondaryAdmin string
	renderer       Renderer
	logger         *zap.Logger
}

// Options configures a DefaultNotificationService.
type Options struct {
	AdminMailer    Mailer
	CustomerMailer Mailer
	PrimaryAdmin   string
	SecondaryAdmin string
	Contacts       contact.Handles
	Logger         *zap.Logger
}

func NewDefaultNotificationService(opts Options) (*DefaultNotificationService, error) {
	if opts.AdminMailer == nil || opts.CustomerMailer == nil {
		return nil, fmt.Errorf("notification service initialization error: admin or customer mailer is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		adminMailer:    opts.AdminMailer,
		customerMailer: opts.CustomerMailer,
		primaryAdmin:   opts.PrimaryAdmin,
		secondaryAdmin: opts.SecondaryAdmin,
		renderer:       Renderer{Contacts: opts.Contacts},
		logger:         logger,
	}, nil
}

func (s *DefaultNotificationService) AdminRecipients() ([]string, error) {
	return ResolveAdminRecipients(s.primaryAdmin, s.secondaryAdmin)
}
