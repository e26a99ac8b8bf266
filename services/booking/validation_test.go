package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safaricamp/models"
)

var fixedNow = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		FirstName:         "Amina",
		LastName:          "Otieno",
		Email:             "amina@example.com",
		Phone:             "+254 700 000 000",
		CheckIn:           "2026-07-10",
		CheckOut:          "2026-07-12",
		Nights:            2,
		GroupSize:         4,
		AccommodationType: models.LuxuryTent,
		MealPlan:          models.FullBoard,
		Total:             2700,
		Location: models.Location{
			Name:          "Mara River Camp",
			Address:       "Maasai Mara, Kenya",
			PricePerNight: 700,
		},
	}
}

func TestBuildRecord_Valid(t *testing.T) {
	record, err := BuildRecord(validRequest(), DefaultPricingPolicy(), fixedNow)
	require.NoError(t, err)

	assert.True(t, ValidBookingID(record.ID))
	assert.Equal(t, 2, record.Pricing.Nights)
	assert.Equal(t, 2700.0, record.Pricing.Total)
	assert.Equal(t, 100.0, record.Pricing.Savings)
	assert.Equal(t, fixedNow, record.SubmittedAt)
	assert.Equal(t, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), record.CheckInAt)
}

func TestBuildRecord_KeepsClientBookingID(t *testing.T) {
	req := validRequest()
	req.BookingID = GenerateBookingID()

	record, err := BuildRecord(req, DefaultPricingPolicy(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, req.BookingID, record.ID)
}

func TestBuildRecord_ReplacesMalformedBookingID(t *testing.T) {
	req := validRequest()
	req.BookingID = "<script>"

	record, err := BuildRecord(req, DefaultPricingPolicy(), fixedNow)
	require.NoError(t, err)
	assert.NotEqual(t, req.BookingID, record.ID)
	assert.True(t, ValidBookingID(record.ID))
}

func TestBuildRecord_DerivesNightsAndTotalWhenOmitted(t *testing.T) {
	req := validRequest()
	req.Nights = 0
	req.Total = 0
	req.CheckIn = "2026-07-10T14:00:00Z"
	req.CheckOut = "2026-07-12T10:00:00Z"

	record, err := BuildRecord(req, DefaultPricingPolicy(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Nights)
	assert.Equal(t, 2700.0, record.Total)
}

func TestBuildRecord_Rejections(t *testing.T) {
	tests := []struct {
		description string
		mutate      func(*models.BookingRequest)
		code        string
	}{
		{"malformed email", func(r *models.BookingRequest) { r.Email = "amina-at-example" }, CodeInvalidRequest},
		{"missing phone", func(r *models.BookingRequest) { r.Phone = "  " }, CodeInvalidRequest},
		{"unknown tent", func(r *models.BookingRequest) { r.AccommodationType = "Treehouse" }, CodeInvalidRequest},
		{"unknown meal plan", func(r *models.BookingRequest) { r.MealPlan = "All Inclusive" }, CodeInvalidRequest},
		{"missing location", func(r *models.BookingRequest) { r.Location.Name = "" }, CodeInvalidRequest},
		{"checkout before checkin", func(r *models.BookingRequest) { r.CheckOut = "2026-07-09" }, CodeInvalidDateRange},
		{"same day", func(r *models.BookingRequest) { r.CheckOut = r.CheckIn }, CodeInvalidDateRange},
		{"bad date", func(r *models.BookingRequest) { r.CheckIn = "10/07/2026" }, CodeInvalidDateRange},
		{"nights disagree with dates", func(r *models.BookingRequest) { r.Nights = 3 }, CodeInvalidDateRange},
		{"single guest", func(r *models.BookingRequest) { r.GroupSize = 1; r.Total = 1400 }, CodeInvalidGroupSize},
		{"tampered total", func(r *models.BookingRequest) { r.Total = 1400 }, CodePriceMismatch},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			req := validRequest()
			test.mutate(&req)

			record, err := BuildRecord(req, DefaultPricingPolicy(), fixedNow)
			require.Error(t, err)
			assert.Nil(t, record)

			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, test.code, ve.Code)
		})
	}
}

func TestNightsBetween_RoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2026, 7, 10, 15, 0, 0, 0, time.UTC)
	out := time.Date(2026, 7, 11, 16, 0, 0, 0, time.UTC)

	nights, err := NightsBetween(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, nights)
}
