package booking

import (
	"fmt"
	"math"

	"safaricamp/models"
)

// Defaults used when the configuration does not override the rates.
const (
	DefaultExtraGuestRate        = 325.0
	DefaultDiscountPerGuestNight = 25.0
)

// PricingPolicy carries the per-guest rates applied on top of the base rate for two.
// ExtraGuestRate is the already-discounted nightly price of each guest beyond
// the first two; DiscountPerGuestNight is shown to the guest as savings only.
type PricingPolicy struct {
	ExtraGuestRate        float64
	DiscountPerGuestNight float64
}

// DefaultPricingPolicy returns the published rates.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		ExtraGuestRate:        DefaultExtraGuestRate,
		DiscountPerGuestNight: DefaultDiscountPerGuestNight,
	}
}

// ComputePricing itemizes a stay using the default policy.
func ComputePricing(groupSize, nights int, baseRateForTwo float64) (models.PricingBreakdown, error) {
	return DefaultPricingPolicy().Compute(groupSize, nights, baseRateForTwo)
}

// Compute prices a stay of nights for groupSize guests. The base package
// covers two guests, so smaller groups are rejected rather than discounted.
func (p PricingPolicy) Compute(groupSize, nights int, baseRateForTwo float64) (models.PricingBreakdown, error) {
	if nights < 1 {
		return models.PricingBreakdown{}, fmt.Errorf("%w: got %d nights", ErrInvalidDateRange, nights)
	}
	if groupSize < 2 {
		return models.PricingBreakdown{}, fmt.Errorf("%w: got %d guests", ErrInvalidGroupSize, groupSize)
	}
	if baseRateForTwo < 0 || math.IsNaN(baseRateForTwo) || math.IsInf(baseRateForTwo, 0) {
		return models.PricingBreakdown{}, fmt.Errorf("%w: got %v", ErrInvalidBaseRate, baseRateForTwo)
	}

	extraGuests := groupSize - 2
	base := roundCents(baseRateForTwo * float64(nights))
	extraCost := roundCents(float64(extraGuests) * p.ExtraGuestRate * float64(nights))
	savings := roundCents(float64(extraGuests) * p.DiscountPerGuestNight * float64(nights))

	return models.PricingBreakdown{
		GroupSize:             groupSize,
		Nights:                nights,
		BaseRateForTwo:        baseRateForTwo,
		BaseCost:              base,
		ExtraGuests:           extraGuests,
		ExtraGuestRate:        p.ExtraGuestRate,
		ExtraGuestCost:        extraCost,
		DiscountPerGuestNight: p.DiscountPerGuestNight,
		Savings:               savings,
		Total:                 base + extraCost,
	}, nil
}

// SameAmount compares two prices to the cent.
func SameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
