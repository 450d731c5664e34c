package booking

import "infinitewash/models"

// DefaultCatalog returns the services offered on the booking form.
func DefaultCatalog() models.ServiceCatalog {
	return models.ServiceCatalog{
		Core: []models.ServiceCatalogEntry{
			{
				ID: "car-wash", Name: "Car Wash", DurationLabel: "30 mins", Tier: models.TierCore,
				Prices: vehiclePrices(7, 9, 12, 14),
			},
			{
				ID: "mini-valet", Name: "Mini Valet", DurationLabel: "1 hour", Tier: models.TierCore,
				Prices: vehiclePrices(14, 16, 18, 20),
			},
			{
				ID: "full-valet", Name: "Full Valet", DurationLabel: "2-3 hours", Tier: models.TierCore,
				Prices: vehiclePrices(45, 55, 65, 70),
			},
		},
		Premium: []models.ServiceCatalogEntry{
			{ID: "interior-detailing", Name: "Interior Detailing", DurationLabel: "2-3 hours", Tier: models.TierPremium, Price: 120},
			{ID: "exterior-detailing", Name: "Exterior Detailing", DurationLabel: "4-5 hours", Tier: models.TierPremium, Price: 200},
			{ID: "full-detailing", Name: "Full Detailing", DurationLabel: "6-8 hours", Tier: models.TierPremium, Price: 300},
			{ID: "stage1-polishing", Name: "Stage 1 Polishing", DurationLabel: "3-4 hours", Tier: models.TierPremium, Price: 400},
			{ID: "stage2-polishing", Name: "Stage 2 Polishing", DurationLabel: "6+ hours", Tier: models.TierPremium, Price: 550},
		},
	}
}

func vehiclePrices(small, medium, large, van float64) map[models.VehicleType]float64 {
	return map[models.VehicleType]float64{
		models.VehicleSmall:  small,
		models.VehicleMedium: medium,
		models.VehicleLarge:  large,
		models.VehicleVan:    van,
	}
}

// FindService looks serviceID up in the core tier first, then the premium tier.
func FindService(catalog models.ServiceCatalog, serviceID string) (models.ServiceCatalogEntry, bool) {
	for _, s := range catalog.Core {
		if s.ID == serviceID {
			return s, true
		}
	}
	for _, s := range catalog.Premium {
		if s.ID == serviceID {
			return s, true
		}
	}
	return models.ServiceCatalogEntry{}, false
}
