package admin

import (
	"context"
	"strings"

	"infinitewash/models"

	"github.com/google/uuid"
)

const (
	pointsPerCompletedWash = 10
	washesPerFreeWash      = 10
	washesPerDiscount      = 5
)

func (s *DefaultAdminService) ListCustomers(ctx context.Context) ([]models.CustomerSummary, error) {
	totals, err := s.Bookings.CustomerTotals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.CustomerSummary, 0, len(totals))
	for _, t := range totals {
		if t.Email == "" {
			continue
		}
		out = append(out, models.CustomerSummary{
			CustomerID: customerID(t.Email),
			PersonalInfo: models.CustomerContact{
				Name:  t.Name,
				Email: t.Email,
				Phone: t.Phone,
			},
			LoyaltyStats: models.LoyaltyStats{
				TotalBookings:     t.TotalBookings,
				CompletedBookings: t.CompletedBookings,
				LoyaltyPoints:     t.CompletedBookings * pointsPerCompletedWash,
				TotalSpent:        t.TotalSpent,
			},
			Rewards:     rewardsFor(t.CompletedBookings),
			LastBooking: t.LastBookingAt,
		})
	}
	return out, nil
}

// rewardsFor grants a free wash every tenth completed wash and a 15% discount
// every fifth one that is not also a tenth.
func rewardsFor(completed int64) models.Rewards {
	free := completed / washesPerFreeWash
	return models.Rewards{
		FreeWashesAvailable: free,
		Discount15Available: completed/washesPerDiscount - free,
	}
}

// customerID is stable for an email so the dashboard can key rows on it.
func customerID(email string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email)))
	return "CUST-" + strings.ToUpper(id.String()[:8])
}

func (s *DefaultAdminService) DriverStats(ctx context.Context) (*models.DriverStats, error) {
	var stats models.DriverStats
	var err error

	if stats.ActiveDrivers, err = s.Drivers.CountByStatus(ctx, models.DriverActive); err != nil {
		return nil, err
	}
	if stats.InactiveDrivers, err = s.Drivers.CountByStatus(ctx, models.DriverInactive); err != nil {
		return nil, err
	}
	stats.TotalDrivers = stats.ActiveDrivers + stats.InactiveDrivers

	busy, err := s.Bookings.BusyDriverIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range busy {
		d, err := s.Drivers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if d != nil && d.Status == models.DriverActive {
			stats.BusyDrivers++
		}
	}
	if stats.TotalServicesCompleted, err = s.Bookings.CountByStatus(ctx, models.BookingCompleted); err != nil {
		return nil, err
	}
	return &stats, nil
}
