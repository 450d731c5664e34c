package models

import "time"

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingSample is one simulated update of a driver heading to a customer.
type TrackingSample struct {
	Driver        GeoPoint  `json:"driver"`
	Destination   GeoPoint  `json:"destination"`
	Address       string    `json:"address"`
	DistanceMiles float64   `json:"distanceMiles"`
	Distance      string    `json:"distance"`
	ETAMinutes    int       `json:"etaMinutes"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}
