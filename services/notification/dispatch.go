package notification

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"safaricamp/models"
)

// Dispatch renders both emails once, then sends every admin copy and the
// guest confirmation as independent tasks. A failed or hung send never
// cancels its siblings; outcomes are collected by recipient, not by arrival.
// Sends are detached from ctx cancellation and bounded only by the
// transport timeout, so a guest disconnecting mid-request still gets the
// booking to the operator.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, record *models.BookingRecord) (models.DispatchResult, error) {
	ctx = context.WithoutCancel(ctx)

	recipients, err := s.AdminRecipients()
	if err != nil {
		return models.DispatchResult{}, err
	}

	adminHTML, err := s.renderer.RenderAdminNotification(record)
	if err != nil {
		return models.DispatchResult{}, err
	}
	customerHTML, err := s.renderer.RenderCustomerConfirmation(record)
	if err != nil {
		return models.DispatchResult{}, err
	}

	result := models.DispatchResult{Admin: make([]models.RecipientOutcome, len(recipients))}
	var wg conc.WaitGroup

	for i, to := range recipients {
		email := Email{
			To:      to,
			ReplyTo: record.Email,
			Subject: AdminSubject(record),
			HTML:    adminHTML,
		}
		wg.Go(func() {
			result.Admin[i] = s.send(ctx, s.adminMailer, models.AudienceAdmin, KindRecipientSendFailed, record.ID, email)
		})
	}

	customer := Email{
		To:      record.Email,
		Subject: CustomerSubject(record),
		HTML:    customerHTML,
	}
	wg.Go(func() {
		result.Customer = s.send(ctx, s.customerMailer, models.AudienceCustomer, KindCustomerSendFailed, record.ID, customer)
	})

	wg.Wait()

	s.logger.Info("booking dispatched",
		zap.String("bookingId", record.ID),
		zap.Int("adminAttempted", result.AdminAttempted()),
		zap.Int("adminSucceeded", result.AdminSucceeded()),
		zap.String("customer", result.Customer.Status))

	return result, nil
}

// send performs one delivery and converts any failure, panics included, into an outcome.
func (s *DefaultNotificationService) send(ctx context.Context, m Mailer, audience, kind, bookingID string, e Email) (out models.RecipientOutcome) {
	out = models.RecipientOutcome{Recipient: e.To, Audience: audience}
	defer func() {
		if r := recover(); r != nil {
			err := &SendError{Kind: kind, Recipient: e.To, Err: fmt.Errorf("panic: %v", r)}
			s.logger.Error("email send panicked", zap.String("bookingId", bookingID), zap.Error(err))
			out.Status = models.StatusFailed
			out.Reason = err.Err.Error()
		}
	}()

	if err := m.Send(ctx, e); err != nil {
		sendErr := &SendError{Kind: kind, Recipient: e.To, Err: err}
		s.logger.Warn("email send failed",
			zap.String("bookingId", bookingID),
			zap.String("audience", audience),
			zap.Error(sendErr))
		out.Status = models.StatusFailed
		out.Reason = err.Error()
		return out
	}

	out.Status = models.StatusDelivered
	return out
}
