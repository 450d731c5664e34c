package models

// ServiceTier separates vehicle-priced core services from flat-priced premium ones.
type ServiceTier string

const (
	TierCore    ServiceTier = "core"
	TierPremium ServiceTier = "premium"
)

// ServiceCatalogEntry is one bookable service. Core entries price by vehicle, premium ones are flat.
type ServiceCatalogEntry struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	DurationLabel string                  `json:"duration"`
	Tier          ServiceTier             `json:"tier"`
	Price         float64                 `json:"price,omitempty"`
	Prices        map[VehicleType]float64 `json:"prices,omitempty"`
}

// ServiceCatalog is the fixed list of services, split by tier.
type ServiceCatalog struct {
	Core    []ServiceCatalogEntry `json:"core"`
	Premium []ServiceCatalogEntry `json:"premium"`
}
