package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"safaricamp/models"
)

// Submit runs a booking through validation, pricing and notification.
// Every check that can reject the request runs before the first email is
// sent, including the admin recipient lookup.
func (s *DefaultBookingService) Submit(ctx context.Context, req models.BookingRequest) (*Submission, error) {
	logger := s.logger()

	record, err := BuildRecord(req, s.Policy, s.now())
	if err != nil {
		logger.Info("booking rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if _, err := s.NotificationSvc.AdminRecipients(); err != nil {
		logger.Error("booking cannot be dispatched", zap.String("bookingId", record.ID), zap.Error(err))
		return nil, err
	}

	// The guest closing the page must not cancel the claim or the sends.
	ctx = context.WithoutCancel(ctx)

	if s.Replay != nil {
		status, err := s.Replay.Claim(ctx, record.ID, Fingerprint(record))
		switch {
		case err != nil:
			logger.Warn("replay guard unavailable, dispatching anyway", zap.String("bookingId", record.ID), zap.Error(err))
		case status == ClaimReplay:
			logger.Info("duplicate booking submission ignored", zap.String("bookingId", record.ID))
			return &Submission{Record: record, Duplicate: true}, nil
		case status == ClaimConflict:
			logger.Warn("booking id reused with different details", zap.String("bookingId", record.ID))
			return nil, fmt.Errorf("%w: %s", ErrBookingIDConflict, record.ID)
		}
	}

	result, err := s.NotificationSvc.Dispatch(ctx, record)
	if err != nil || result.AdminSucceeded() == 0 {
		s.release(ctx, record.ID)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("booking submitted",
		zap.String("bookingId", record.ID),
		zap.String("location", record.Location.Name),
		zap.Int("groupSize", record.Pricing.GroupSize),
		zap.Int("nights", record.Pricing.Nights),
		zap.Float64("total", record.Pricing.Total))

	return &Submission{Record: record, Result: result}, nil
}

// release drops the replay claim when no operator was notified, so a retry
// with the same reference is dispatched again.
func (s *DefaultBookingService) release(ctx context.Context, bookingID string) {
	if s.Replay == nil {
		return
	}
	if err := s.Replay.Release(ctx, bookingID); err != nil {
		s.logger().Warn("failed to release replay claim", zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// Quote prices a stay without submitting anything.
func (s *DefaultBookingService) Quote(groupSize, nights int, pricePerNight float64) (models.PricingBreakdown, error) {
	return s.Policy.Compute(groupSize, nights, pricePerNight)
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
