package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safaricamp/models"
	"safaricamp/services/notification"
)

// BookingService validates, prices and dispatches booking submissions.
type BookingService interface {
	Submit(ctx context.Context, req models.BookingRequest) (*Submission, error)
	Quote(groupSize, nights int, pricePerNight float64) (models.PricingBreakdown, error)
}

// Submission is the outcome of one accepted booking request.
type Submission struct {
	Record    *models.BookingRecord
	Result    models.DispatchResult
	Duplicate bool // The booking id had already been dispatched; nothing was sent
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Policy          PricingPolicy
	NotificationSvc notification.NotificationService
	Replay          ReplayGuard
	Logger          *zap.Logger
	Now             func() time.Time
}
