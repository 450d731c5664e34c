package subscription

import (
	"fmt"
	"math"

	"infinitewash/models"
	"infinitewash/services/apperror"
)

var (
	allFrequencies     = []models.Frequency{models.FrequencyWeekly, models.FrequencyBiWeekly, models.FrequencyMonthly}
	premiumFrequencies = []models.Frequency{models.FrequencyBiWeekly, models.FrequencyMonthly}
)

// BuildPlans turns every catalog service into a plan. Core plans can be booked weekly,
// premium work is too long for a weekly visit.
func BuildPlans(catalog models.ServiceCatalog) []models.SubscriptionPlan {
	plans := make([]models.SubscriptionPlan, 0, len(catalog.Core)+len(catalog.Premium))
	for _, s := range catalog.Core {
		plans = append(plans, newPlan(s, s.Prices, allFrequencies))
	}
	for _, s := range catalog.Premium {
		flat := make(map[models.VehicleType]float64, len(models.VehicleTypes))
		for _, v := range models.VehicleTypes {
			flat[v] = s.Price
		}
		plans = append(plans, newPlan(s, flat, premiumFrequencies))
	}
	return plans
}

func newPlan(s models.ServiceCatalogEntry, prices map[models.VehicleType]float64, freqs []models.Frequency) models.SubscriptionPlan {
	premium := s.Tier == models.TierPremium
	plan := models.SubscriptionPlan{
		PlanID:           s.ID,
		Name:             s.Name + " Subscription",
		Description:      fmt.Sprintf("%s at your address on a fixed day, %s per visit", s.Name, s.DurationLabel),
		DurationLabel:    s.DurationLabel,
		Features:         planFeatures(premium),
		IsPremium:        premium,
		FrequencyOptions: freqs,
		ServicePrices:    prices,
		PricingExamples:  make(map[models.VehicleType]map[models.Frequency]float64, len(prices)),
	}
	for _, v := range models.VehicleTypes {
		price, ok := prices[v]
		if !ok {
			continue
		}
		if plan.BasePrice == 0 || price < plan.BasePrice {
			plan.BasePrice = price
		}
		monthly := make(map[models.Frequency]float64, len(freqs))
		for _, f := range freqs {
			monthly[f] = MonthlyPrice(price, f)
		}
		plan.PricingExamples[v] = monthly
	}
	return plan
}

func planFeatures(premium bool) []string {
	features := []string{
		"Mobile service at your address",
		"Same detailer and preferred day each visit",
		"Email and SMS reminders before each visit",
	}
	if premium {
		features = append(features, "Paint and interior condition report")
	}
	return features
}

// MonthlyPrice bills ServicesPerMonth visits with the frequency discount, rounded to pence.
func MonthlyPrice(perService float64, f models.Frequency) float64 {
	gross := perService * float64(f.ServicesPerMonth())
	return math.Round(gross*float64(100-f.DiscountPercent())) / 100
}

func findPlan(plans []models.SubscriptionPlan, planID string) (models.SubscriptionPlan, bool) {
	for _, p := range plans {
		if p.PlanID == planID {
			return p, true
		}
	}
	return models.SubscriptionPlan{}, false
}

func quote(plans []models.SubscriptionPlan, planID string, vehicle models.VehicleType, f models.Frequency) (*models.SubscriptionQuote, error) {
	var invalid []string
	plan, ok := findPlan(plans, planID)
	if !ok {
		invalid = append(invalid, "plan_id")
	}
	if !vehicle.Valid() {
		invalid = append(invalid, "vehicle_type")
	}
	if !f.Valid() || (ok && !offers(plan, f)) {
		invalid = append(invalid, "frequency")
	}
	if len(invalid) > 0 {
		return nil, apperror.NewValidation("Please select a plan, vehicle type and frequency", invalid...)
	}

	perService := plan.ServicePrices[vehicle]
	return &models.SubscriptionQuote{
		PlanID:           plan.PlanID,
		PlanName:         plan.Name,
		VehicleType:      vehicle,
		Frequency:        f,
		ServicesPerMonth: f.ServicesPerMonth(),
		PricePerService:  perService,
		DiscountPercent:  f.DiscountPercent(),
		MonthlyPrice:     plan.PricingExamples[vehicle][f],
	}, nil
}

func offers(plan models.SubscriptionPlan, f models.Frequency) bool {
	for _, o := range plan.FrequencyOptions {
		if o == f {
			return true
		}
	}
	return false
}
