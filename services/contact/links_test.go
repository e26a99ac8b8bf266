package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safaricamp/models"
)

func record() *models.BookingRecord {
	return &models.BookingRecord{
		BookingRequest: models.BookingRequest{
			FirstName:         "Amina",
			LastName:          "Otieno",
			Email:             "amina@example.com",
			Phone:             "+254 700 000 000",
			CheckIn:           "2026-07-10",
			CheckOut:          "2026-07-12",
			AccommodationType: models.FamilyTent,
			MealPlan:          models.HalfBoard,
			Location:          models.Location{Name: "Mara River Camp", Address: "Maasai Mara"},
			SpecialRequests:   "Late arrival & cot",
		},
		ID: "SCMOCK0000ABCDEFGH",
		Pricing: models.PricingBreakdown{
			GroupSize: 4, Nights: 2, BaseRateForTwo: 700, BaseCost: 1400,
			ExtraGuests: 2, ExtraGuestRate: 325, ExtraGuestCost: 1300,
			DiscountPerGuestNight: 25, Savings: 100, Total: 2700,
		},
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+254 711-222 333", "Hi & welcome")
	assert.Equal(t, "https://wa.me/254711222333?text=Hi%20%26%20welcome", link)
}

func TestMailtoLink_RoundTrips(t *testing.T) {
	rec := record()
	link := MailtoLink("hello@camp.example", Subject(rec), EmailBody(rec))
	require.True(t, strings.HasPrefix(link, "mailto:hello@camp.example?"))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, Subject(rec), q.Get("subject"))
	assert.Equal(t, EmailBody(rec), q.Get("body"))
}

func TestEmailBody_Itemized(t *testing.T) {
	body := EmailBody(record())
	for _, want := range []string{
		"BOOKING ID: SCMOCK0000ABCDEFGH",
		"Base rate for 2 guests: $700 x 2 nights = $1,400",
		"Additional guests: 2 x $325 x 2 nights = $1,300",
		"Group savings: $100",
		"Total: $2,700",
		"SPECIAL REQUESTS\nLate arrival & cot",
	} {
		assert.Contains(t, body, want)
	}
}

func TestWhatsAppSummary_SameTotalAsEmail(t *testing.T) {
	rec := record()
	assert.Contains(t, WhatsAppSummary(rec), "Total: $2,700 for 2 nights")
	assert.Contains(t, EmailBody(rec), "Total: $2,700")
}

func TestPriceLines_Couple(t *testing.T) {
	lines := PriceLines(models.PricingBreakdown{GroupSize: 2, Nights: 1, BaseRateForTwo: 700, BaseCost: 700, Total: 700})
	assert.Equal(t, []string{"Base rate for 2 guests: $700 x 1 night = $700", "Total: $700"}, lines)
}

func TestFormatMoney(t *testing.T) {
	tests := map[float64]string{
		0:         "$0",
		700:       "$700",
		2700:      "$2,700",
		1234567.5: "$1,234,567.50",
		-100:      "-$100",
		99.999:    "$100",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(in), "%v", in)
	}
}

func TestHandles_Fallback(t *testing.T) {
	h := Handles{SupportEmail: "ops@gmail.com", CustomEmail: "hello@camp.example", WhatsAppNumber: "+254 711 222 333"}
	fb := h.Fallback()
	assert.Equal(t, "https://wa.me/254711222333", fb.WhatsApp)
	assert.Equal(t, "ops@gmail.com", fb.Email)
	assert.Equal(t, "hello@camp.example", fb.CustomEmail)

	same := Handles{SupportEmail: "ops@gmail.com", CustomEmail: "OPS@gmail.com"}
	assert.Empty(t, same.Fallback().CustomEmail)
}
