package admin

import (
	"context"
	"time"

	"infinitewash/models"

	"github.com/jinzhu/now"
)

var weekConfig = &now.Config{WeekStartDay: time.Monday}

func (s *DefaultAdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	t := s.now()
	var stats models.DashboardStats
	var err error

	if stats.TotalBookings, err = s.Bookings.CountSince(ctx, time.Time{}); err != nil {
		return nil, err
	}
	if stats.BookingsToday, err = s.Bookings.CountSince(ctx, weekConfig.With(t).BeginningOfDay()); err != nil {
		return nil, err
	}
	if stats.BookingsThisWeek, err = s.Bookings.CountSince(ctx, weekConfig.With(t).BeginningOfWeek()); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.Bookings.Revenue(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveDrivers, err = s.Drivers.CountByStatus(ctx, models.DriverActive); err != nil {
		return nil, err
	}
	return &stats, nil
}
