package booking

import (
	"salonflow/config"
	"salonflow/models"
)

// DepositPolicy is the canonical booking-fee rule. A single policy feeds both
// the wizard totals and the payment summary.
type DepositPolicy struct {
	RatePercent int
	Minimum     int64 // minor units
}

// CurrentDepositPolicy reads the configured policy.
func CurrentDepositPolicy() DepositPolicy {
	return DepositPolicy{
		RatePercent: config.AppConfig.DepositRatePercent,
		Minimum:     config.AppConfig.DepositMinimum,
	}
}

// linePrice returns the price of one unit of a service, substituting the
// tier-matched price when pricing tiers are defined.
func linePrice(svc models.Service, quantity int) int64 {
	for _, tier := range svc.PricingTiers {
		if quantity < tier.MinQuantity {
			continue
		}
		if tier.MaxQuantity > 0 && quantity > tier.MaxQuantity {
			continue
		}
		return tier.Price
	}
	return svc.Price
}

// ComputeTotals derives the monetary breakdown from a service selection.
// All arithmetic is integer minor-currency units. The booking fee is
// max(subtotal*rate, minimum), floored at zero for an empty selection and
// capped at the subtotal so the remaining balance can never go negative.
func ComputeTotals(services []models.Service, policy DepositPolicy) models.Totals {
	if len(services) == 0 {
		return models.Totals{}
	}

	var subtotal int64
	for _, svc := range services {
		subtotal += linePrice(svc, 1)
	}

	fee := subtotal * int64(policy.RatePercent) / 100
	if fee < policy.Minimum {
		fee = policy.Minimum
	}
	if fee > subtotal {
		fee = subtotal
	}

	return models.Totals{
		Subtotal:         subtotal,
		BookingFee:       fee,
		RemainingBalance: subtotal - fee,
	}
}
