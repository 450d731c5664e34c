package tracking

import (
	"context"
	"fmt"
	"math"
	"time"

	"infinitewash/models"
)

const (
	StatusEnRoute = "en_route"
	StatusArrived = "arrived"

	enRouteAddress = "En route to customer"

	// Share of the remaining distance covered per update.
	stepFraction = 0.1
	// Below this (in degrees) the driver counts as arrived.
	arrivalThreshold = 0.01
	// Degrees to displayed miles.
	milesPerDegree = 100
)

var (
	DefaultDriverStart = models.GeoPoint{Lat: 52.9225, Lng: -1.4746}
	DefaultDestination = models.GeoPoint{Lat: 52.9167, Lng: -1.4667}
	DefaultAddress     = "123 Ashbourne Road, Derby DE22 3BH"
)

// Step reports the driver at from heading to dest and returns where the driver is next.
// The sample's distance is measured from the current position.
func Step(from, dest models.GeoPoint, address string, at time.Time) (models.TrackingSample, models.GeoPoint) {
	latDiff := dest.Lat - from.Lat
	lngDiff := dest.Lng - from.Lng
	d := math.Sqrt(latDiff*latDiff + lngDiff*lngDiff)

	sample := models.TrackingSample{
		Driver:        from,
		Destination:   dest,
		Address:       enRouteAddress,
		DistanceMiles: d * milesPerDegree,
		Distance:      fmt.Sprintf("%.1f miles", d*milesPerDegree),
		ETAMinutes:    int(math.Max(1, math.Round(d*milesPerDegree))),
		Status:        StatusEnRoute,
		At:            at,
	}
	if d < arrivalThreshold {
		sample.Status = StatusArrived
		sample.Address = address
	}
	next := models.GeoPoint{
		Lat: from.Lat + latDiff*stepFraction,
		Lng: from.Lng + lngDiff*stepFraction,
	}
	return sample, next
}

// Simulator streams a driver's approach to a customer.
type Simulator struct {
	Start       models.GeoPoint
	Destination models.GeoPoint
	Address     string
	Interval    time.Duration
	Now         func() time.Time
}

func NewSimulator(interval time.Duration) *Simulator {
	return &Simulator{
		Start:       DefaultDriverStart,
		Destination: DefaultDestination,
		Address:     DefaultAddress,
		Interval:    interval,
		Now:         time.Now,
	}
}

// Run emits one sample per interval until the driver arrives, ctx ends or emit fails.
// The first sample is emitted immediately.
func (s *Simulator) Run(ctx context.Context, emit func(models.TrackingSample) error) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	pos := s.Start
	for {
		var sample models.TrackingSample
		sample, pos = Step(pos, s.Destination, s.Address, s.Now())
		if err := emit(sample); err != nil {
			return err
		}
		if sample.Status == StatusArrived {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
