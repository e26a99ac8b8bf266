package booking

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"safaricamp/models"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// ParseStayDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseStayDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrInvalidDateRange, raw)
	}
	return t, nil
}

// NightsBetween is the number of nights between check-in and check-out,
// rounding a partial day up. It fails unless check-out is after check-in.
func NightsBetween(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, fmt.Errorf("%w: check-out %s is not after check-in %s",
			ErrInvalidDateRange, checkOut.Format(dateLayout), checkIn.Format(dateLayout))
	}
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24)), nil
}

// StayNights parses both dates and returns the derived night count.
func StayNights(checkIn, checkOut string) (time.Time, time.Time, int, error) {
	in, err := ParseStayDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	out, err := ParseStayDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	nights, err := NightsBetween(in, out)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return in, out, nights, nil
}

// validateGuest checks the fields the binding layer may not have seen,
// e.g. when the request was built in-process by the client orchestrator.
func validateGuest(req models.BookingRequest) error {
	required := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"phone":     req.Phone,
		"email":     req.Email,
	}
	for _, field := range []string{"firstName", "lastName", "email", "phone"} {
		if strings.TrimSpace(required[field]) == "" {
			return newValidationError(ErrInvalidRequest, field+" is required")
		}
	}
	if err := validate.Var(strings.TrimSpace(req.Email), "email"); err != nil {
		return newValidationError(ErrInvalidRequest, "email address is not valid")
	}
	if !slices.Contains(models.AccommodationTypes, req.AccommodationType) {
		return newValidationError(ErrInvalidRequest,
			fmt.Sprintf("accommodation type must be one of %s", strings.Join(models.AccommodationTypes, ", ")))
	}
	if !slices.Contains(models.MealPlans, req.MealPlan) {
		return newValidationError(ErrInvalidRequest,
			fmt.Sprintf("meal plan must be one of %s", strings.Join(models.MealPlans, ", ")))
	}
	if strings.TrimSpace(req.Location.Name) == "" {
		return newValidationError(ErrInvalidRequest, "location name is required")
	}
	return nil
}

// BuildRecord validates a submission and re-derives its price. A non-zero
// client total must match the computed one; a zero total means the client did
// not send one. The returned record carries the server-side breakdown only.
func BuildRecord(req models.BookingRequest, policy PricingPolicy, now time.Time) (*models.BookingRecord, error) {
	if err := validateGuest(req); err != nil {
		return nil, err
	}

	checkIn, checkOut, nights, err := StayNights(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, newValidationError(err, err.Error())
	}
	if req.Nights != 0 && req.Nights != nights {
		return nil, newValidationError(ErrInvalidDateRange,
			fmt.Sprintf("nights %d does not match the stay dates (%d)", req.Nights, nights))
	}

	pricing, err := policy.Compute(req.GroupSize, nights, req.Location.PricePerNight)
	if err != nil {
		return nil, newValidationError(err, err.Error())
	}
	if req.Total != 0 && !SameAmount(req.Total, pricing.Total) {
		return nil, newValidationError(ErrPriceMismatch,
			fmt.Sprintf("submitted total %.2f does not match computed total %.2f", req.Total, pricing.Total))
	}

	id := strings.ToUpper(strings.TrimSpace(req.BookingID))
	if !ValidBookingID(id) {
		id = newBookingID(now)
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Nights = nights
	req.Total = pricing.Total
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = now
	}

	return &models.BookingRecord{
		BookingRequest: req,
		ID:             id,
		CheckInAt:      checkIn,
		CheckOutAt:     checkOut,
		Pricing:        pricing,
		ReceivedAt:     now,
	}, nil
}
