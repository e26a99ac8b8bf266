package models

import "time"

// Accommodation types offered at every camp.
const (
	SafariTent = "Safari Tent"
	LuxuryTent = "Luxury Tent"
	FamilyTent = "Family Tent"
)

// Meal plans.
const (
	FullBoard     = "Full Board"
	HalfBoard     = "Half Board"
	BreakfastOnly = "Breakfast Only"
)

var AccommodationTypes = []string{SafariTent, LuxuryTent, FamilyTent}

var MealPlans = []string{FullBoard, HalfBoard, BreakfastOnly}

// Location is the camp the guest is booking, as shown on the location page.
type Location struct {
	Name          string  `json:"name" binding:"required"`
	Address       string  `json:"location"`
	PricePerNight float64 `json:"price_per_night" binding:"gte=0"` // Nightly base rate for two guests
}

// BookingRequest is the payload posted by the booking form.
type BookingRequest struct {
	BookingID         string    `json:"bookingId"` // Optional client-generated reference
	FirstName         string    `json:"firstName" binding:"required"`
	LastName          string    `json:"lastName" binding:"required"`
	Email             string    `json:"email" binding:"required,email"`
	Phone             string    `json:"phone" binding:"required"`
	CheckIn           string    `json:"checkIn" binding:"required"`  // YYYY-MM-DD or RFC 3339
	CheckOut          string    `json:"checkOut" binding:"required"` // YYYY-MM-DD or RFC 3339
	Nights            int       `json:"nights"`
	GroupSize         int       `json:"groupSize"`
	AccommodationType string    `json:"accommodationType" binding:"required"`
	MealPlan          string    `json:"mealPlan" binding:"required"`
	Total             float64   `json:"total"` // Client-side total, re-derived on the server
	Location          Location  `json:"location"`
	SpecialRequests   string    `json:"specialRequests,omitempty"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// FullName joins the guest's first and last name.
func (r BookingRequest) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// BookingRecord is a validated request with its reference and server-side pricing.
// It lives only for the duration of one submission.
type BookingRecord struct {
	BookingRequest
	ID         string
	CheckInAt  time.Time
	CheckOutAt time.Time
	Pricing    PricingBreakdown
	ReceivedAt time.Time
}
