package models

// PricingBreakdown is the itemized price of a stay. Every surface that shows
// or charges a price renders one of these instead of doing its own arithmetic.
type PricingBreakdown struct {
	GroupSize             int     `json:"groupSize"`
	Nights                int     `json:"nights"`
	BaseRateForTwo        float64 `json:"baseRateForTwo"`
	BaseCost              float64 `json:"baseCost"`
	ExtraGuests           int     `json:"extraGuests"`
	ExtraGuestRate        float64 `json:"extraGuestRate"`
	ExtraGuestCost        float64 `json:"extraGuestCost"`
	DiscountPerGuestNight float64 `json:"discountPerGuestNight"`
	Savings               float64 `json:"savings"` // Informational only, already reflected in ExtraGuestRate
	Total                 float64 `json:"total"`
}

// QuoteRequest asks for a price without submitting a booking.
type QuoteRequest struct {
	GroupSize     int     `json:"groupSize"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
}
