package booking

import (
	"math"

	"infinitewash/models"
)

const (
	halfDepositThreshold  = 500.0
	fixedDepositThreshold = 200.0
	fixedDeposit          = 70.0
)

// ComputePricing prices serviceID for the vehicle and applies the deposit rule.
// Unknown services price at zero rather than failing.
func ComputePricing(vehicle models.VehicleType, serviceID string, catalog models.ServiceCatalog) models.PricingResult {
	var base float64
	if entry, ok := FindService(catalog, serviceID); ok {
		if entry.Tier == models.TierCore {
			base = entry.Prices[vehicle]
		} else {
			base = entry.Price
		}
	}
	return DepositFor(base)
}

// DepositFor applies the tiered deposit rule to a base price:
// 50% from 500, a fixed 70 from 200, nothing below.
func DepositFor(basePrice float64) models.PricingResult {
	res := models.PricingResult{BasePrice: basePrice}
	switch {
	case basePrice >= halfDepositThreshold:
		res.Deposit = basePrice * 0.5
		res.DepositPercentage = 50
	case basePrice >= fixedDepositThreshold:
		res.Deposit = fixedDeposit
		res.DepositPercentage = int(math.Round(fixedDeposit * 100 / basePrice))
	}
	return res
}

// ToMinorUnits converts an amount in pounds to pence.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
