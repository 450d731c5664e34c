package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	bookingRecordRepo "infinitewash/database/repository/bookingrecord"
	driverRepo "infinitewash/database/repository/driver"
	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memDrivers struct {
	byID map[string]models.Driver
}

func (m *memDrivers) Create(_ context.Context, d *models.Driver) error {
	m.byID[d.ID] = *d
	return nil
}

func (m *memDrivers) GetByID(_ context.Context, id string) (*models.Driver, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memDrivers) GetByEmail(_ context.Context, email string) (*models.Driver, error) {
	for _, d := range m.byID {
		if d.Email == email {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memDrivers) GetAll(context.Context) ([]models.Driver, error) {
	out := []models.Driver{}
	for _, d := range m.byID {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDrivers) Update(_ context.Context, d *models.Driver) error {
	if _, ok := m.byID[d.ID]; !ok {
		return driverRepo.ErrNotFound
	}
	m.byID[d.ID] = *d
	return nil
}

func (m *memDrivers) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return driverRepo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memDrivers) CountByStatus(_ context.Context, status models.DriverStatus) (int64, error) {
	var n int64
	for _, d := range m.byID {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

type memBookings struct {
	byID map[string]models.BookingRecord
}

func (m *memBookings) Create(_ context.Context, r *models.BookingRecord) error {
	m.byID[r.ID] = *r
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*models.BookingRecord, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memBookings) GetAll(_ context.Context, f bookingRecordRepo.ListFilter) ([]models.BookingRecord, error) {
	out := []models.BookingRecord{}
	for _, r := range m.byID {
		if (f.Status == "" || r.Status == f.Status) && (f.Date == "" || r.Date == f.Date) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBookings) SetFields(_ context.Context, id string, fields map[string]interface{}) error {
	r, ok := m.byID[id]
	if !ok {
		return bookingRecordRepo.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		r.Status = v.(models.BookingStatus)
	}
	if v, ok := fields["driver_id"]; ok {
		r.DriverID = v.(string)
	}
	m.byID[id] = r
	return nil
}

func (m *memBookings) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, r := range m.byID {
		if !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) Revenue(context.Context) (float64, error) {
	var total float64
	for _, r := range m.byID {
		if r.Status != models.BookingCancelled {
			total += r.TotalAmount
		}
	}
	return total, nil
}

func (m *memBookings) CountByStatus(_ context.Context, status models.BookingStatus) (int64, error) {
	var n int64
	for _, r := range m.byID {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) CustomerTotals(context.Context) ([]models.CustomerTotals, error) {
	records := make([]models.BookingRecord, 0, len(m.byID))
	for _, r := range m.byID {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.Before(records[j].CreatedAt) })

	byEmail := map[string]*models.CustomerTotals{}
	var order []string
	for _, r := range records {
		email := strings.ToLower(r.Customer.Email)
		t, ok := byEmail[email]
		if !ok {
			t = &models.CustomerTotals{Email: email}
			byEmail[email] = t
			order = append(order, email)
		}
		t.Name, t.Phone, t.LastBookingAt = r.Customer.Name, r.Customer.Phone, r.CreatedAt
		t.TotalBookings++
		if r.Status == models.BookingCompleted {
			t.CompletedBookings++
		}
		if r.Status != models.BookingCancelled {
			t.TotalSpent += r.TotalAmount
		}
	}
	out := make([]models.CustomerTotals, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		out = append(out, *byEmail[order[i]])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastBookingAt.After(out[j].LastBookingAt) })
	return out, nil
}

func (m *memBookings) BusyDriverIDs(context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range m.byID {
		if r.Status == models.BookingInProgress && r.DriverID != "" && !seen[r.DriverID] {
			seen[r.DriverID] = true
			out = append(out, r.DriverID)
		}
	}
	return out, nil
}

// Thursday.
var adminNow = time.Date(2030, 1, 10, 15, 0, 0, 0, time.UTC)

func newTestAdmin(t *testing.T) (*DefaultAdminService, *memDrivers, *memBookings) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	drivers := &memDrivers{byID: map[string]models.Driver{}}
	bookings := &memBookings{byID: map[string]models.BookingRecord{}}
	svc := &DefaultAdminService{
		Drivers:  drivers,
		Bookings: bookings,
		Credentials: Credentials{
			Email:        "owner@infinitewash.co.uk",
			PasswordHash: string(hash),
			JWTSecret:    "test-secret",
			TokenTTL:     time.Hour,
		},
		Now: func() time.Time { return adminNow },
	}
	return svc, drivers, bookings
}

func validDriver() models.DriverInput {
	return models.DriverInput{
		Name:                "Alex Doe",
		Email:               "Alex@Example.com ",
		Phone:               "07123456789",
		LicenseNumber:       "DOE99901011AB9CD",
		VehicleRegistration: "ab12 cde",
		VehicleModel:        "Ford Transit",
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAdmin(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "Owner@InfiniteWash.co.uk", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, adminNow.Add(time.Hour), session.ExpiresAt)
	sub, role, err := utils.ExtractClaims("test-secret", session.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner@infinitewash.co.uk", sub)
	assert.Equal(t, models.RoleAdmin, role)

	_, err = svc.Login(ctx, "owner@infinitewash.co.uk", "wrong")
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
	_, err = svc.Login(ctx, "someone@else.com", "s3cret!")
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
}

func TestLoginNotConfigured(t *testing.T) {
	svc, _, _ := newTestAdmin(t)
	svc.Credentials.JWTSecret = ""
	_, err := svc.Login(context.Background(), "owner@infinitewash.co.uk", "s3cret!")
	assert.True(t, apperror.Is(err, apperror.Configuration))
}

func TestCreateDriverNormalizesAndDefaultsStatus(t *testing.T) {
	svc, drivers, _ := newTestAdmin(t)

	d, err := svc.CreateDriver(context.Background(), validDriver())
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "alex@example.com", d.Email)
	assert.Equal(t, "AB12 CDE", d.VehicleRegistration)
	assert.Equal(t, models.DriverActive, d.Status)
	assert.Equal(t, adminNow, d.CreatedAt)
	assert.Len(t, drivers.byID, 1)
}

func TestCreateDriverValidation(t *testing.T) {
	svc, drivers, _ := newTestAdmin(t)
	in := validDriver()
	in.Phone = ""
	in.Email = "not-an-email"
	in.Status = "retired"

	_, err := svc.CreateDriver(context.Background(), in)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.Validation, appErr.Kind)
	assert.ElementsMatch(t, []string{"phone", "email", "status"}, appErr.Fields)
	assert.Empty(t, drivers.byID)
}

func TestCreateDriverRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAdmin(t)
	_, err := svc.CreateDriver(context.Background(), validDriver())
	require.NoError(t, err)

	_, err = svc.CreateDriver(context.Background(), validDriver())
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestUpdateAndDeleteDriver(t *testing.T) {
	svc, _, _ := newTestAdmin(t)
	ctx := context.Background()
	d, err := svc.CreateDriver(ctx, validDriver())
	require.NoError(t, err)

	in := validDriver()
	in.VehicleModel = "VW Crafter"
	in.Status = models.DriverInactive
	updated, err := svc.UpdateDriver(ctx, d.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "VW Crafter", updated.VehicleModel)
	assert.Equal(t, models.DriverInactive, updated.Status)
	assert.Equal(t, d.CreatedAt, updated.CreatedAt)

	require.NoError(t, svc.DeleteDriver(ctx, d.ID))
	assert.True(t, apperror.Is(svc.DeleteDriver(ctx, d.ID), apperror.NotFound))
	_, err = svc.GetDriver(ctx, d.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
	_, err = svc.UpdateDriver(ctx, d.ID, in)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func recordBooking(t *testing.T, svc *DefaultAdminService, id string, total float64) {
	t.Helper()
	require.NoError(t, svc.RecordBooking(context.Background(), models.BookingRecord{
		ID: id, ServiceName: "Full Valet", Date: "2030-01-15", Time: "10:00", TotalAmount: total,
	}))
}

func TestAssignDriverRequiresActiveDriver(t *testing.T) {
	svc, _, bookings := newTestAdmin(t)
	ctx := context.Background()
	recordBooking(t, svc, "b1", 55)
	active, err := svc.CreateDriver(ctx, validDriver())
	require.NoError(t, err)
	idle := validDriver()
	idle.Email = "idle@example.com"
	idle.Status = models.DriverInactive
	inactive, err := svc.CreateDriver(ctx, idle)
	require.NoError(t, err)

	_, err = svc.AssignDriver(ctx, "b1", inactive.ID)
	assert.True(t, apperror.Is(err, apperror.Validation))

	rec, err := svc.AssignDriver(ctx, "b1", active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, rec.DriverID)
	assert.Equal(t, active.ID, bookings.byID["b1"].DriverID)

	_, err = svc.AssignDriver(ctx, "missing", active.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
	_, err = svc.AssignDriver(ctx, "b1", "missing")
	assert.True(t, apperror.Is(err, apperror.NotFound))

	_, err = svc.UpdateBookingStatus(ctx, "b1", models.BookingCancelled)
	require.NoError(t, err)
	_, err = svc.AssignDriver(ctx, "b1", active.ID)
	assert.True(t, apperror.Is(err, apperror.InvalidTransition))
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, _, bookings := newTestAdmin(t)
	ctx := context.Background()
	recordBooking(t, svc, "b1", 55)
	assert.Equal(t, models.BookingConfirmed, bookings.byID["b1"].Status)

	rec, err := svc.UpdateBookingStatus(ctx, "b1", models.BookingInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.BookingInProgress, rec.Status)

	_, err = svc.UpdateBookingStatus(ctx, "b1", "lost")
	assert.True(t, apperror.Is(err, apperror.Validation))
	_, err = svc.UpdateBookingStatus(ctx, "nope", models.BookingCompleted)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestListBookingsFiltersByStatus(t *testing.T) {
	svc, _, _ := newTestAdmin(t)
	ctx := context.Background()
	recordBooking(t, svc, "b1", 55)
	recordBooking(t, svc, "b2", 300)
	_, err := svc.UpdateBookingStatus(ctx, "b2", models.BookingCompleted)
	require.NoError(t, err)

	all, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done, err := svc.ListBookings(ctx, models.BookingCompleted, "")
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "b2", done[0].ID)

	_, err = svc.ListBookings(ctx, "archived", "")
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestDashboardStats(t *testing.T) {
	svc, _, bookings := newTestAdmin(t)
	ctx := context.Background()
	recordBooking(t, svc, "today", 55)
	recordBooking(t, svc, "cancelled", 300)
	_, err := svc.UpdateBookingStatus(ctx, "cancelled", models.BookingCancelled)
	require.NoError(t, err)

	// Monday of the same week and the previous week.
	bookings.byID["monday"] = models.BookingRecord{ID: "monday", TotalAmount: 14, Status: models.BookingCompleted,
		CreatedAt: time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)}
	bookings.byID["lastweek"] = models.BookingRecord{ID: "lastweek", TotalAmount: 7, Status: models.BookingCompleted,
		CreatedAt: time.Date(2030, 1, 6, 23, 0, 0, 0, time.UTC)}
	_, err = svc.CreateDriver(ctx, validDriver())
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalBookings:    4,
		BookingsToday:    2,
		BookingsThisWeek: 3,
		Revenue:          76,
		ActiveDrivers:    1,
	}, *stats)
}

func customerBooking(id, email string, status models.BookingStatus, total float64, at time.Time) models.BookingRecord {
	return models.BookingRecord{
		ID:          id,
		Customer:    models.Customer{Name: "Sam " + id, Email: email, Phone: "07000000" + id},
		Status:      status,
		TotalAmount: total,
		CreatedAt:   at,
	}
}

func TestListCustomersGroupsByEmail(t *testing.T) {
	svc, _, bookings := newTestAdmin(t)
	day := func(d int) time.Time { return time.Date(2030, 1, d, 10, 0, 0, 0, time.UTC) }

	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("%02d", i)
		bookings.byID["r"+id] = customerBooking(id, "regular@example.com", models.BookingCompleted, 10, day(i))
	}
	bookings.byID["r13"] = customerBooking("13", "REGULAR@example.com", models.BookingCancelled, 99, day(13))
	bookings.byID["n1"] = customerBooking("n1", "new@example.com", models.BookingPending, 55, day(20))

	customers, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)

	newest, regular := customers[0], customers[1]
	assert.Equal(t, "new@example.com", newest.PersonalInfo.Email)
	assert.Equal(t, models.LoyaltyStats{TotalBookings: 1, TotalSpent: 55}, newest.LoyaltyStats)
	assert.Equal(t, models.Rewards{}, newest.Rewards)

	assert.Equal(t, "regular@example.com", regular.PersonalInfo.Email)
	assert.Equal(t, "Sam 13", regular.PersonalInfo.Name, "latest booking supplies the contact details")
	assert.Equal(t, models.LoyaltyStats{
		TotalBookings:     13,
		CompletedBookings: 12,
		LoyaltyPoints:     120,
		TotalSpent:        120,
	}, regular.LoyaltyStats)
	assert.Equal(t, models.Rewards{FreeWashesAvailable: 1, Discount15Available: 1}, regular.Rewards)

	assert.Regexp(t, `^CUST-[0-9A-F]{8}$`, regular.CustomerID)
	assert.Equal(t, customerID("Regular@Example.com"), regular.CustomerID)
	assert.NotEqual(t, regular.CustomerID, newest.CustomerID)
}

func TestRewardsMilestones(t *testing.T) {
	cases := map[int64]models.Rewards{
		0:  {},
		4:  {},
		5:  {Discount15Available: 1},
		9:  {Discount15Available: 1},
		10: {FreeWashesAvailable: 1},
		15: {FreeWashesAvailable: 1, Discount15Available: 1},
		20: {FreeWashesAvailable: 2},
	}
	for completed, want := range cases {
		assert.Equal(t, want, rewardsFor(completed), "completed=%d", completed)
	}
}

func TestDriverStats(t *testing.T) {
	svc, _, bookings := newTestAdmin(t)
	ctx := context.Background()

	busy, err := svc.CreateDriver(ctx, validDriver())
	require.NoError(t, err)
	free := validDriver()
	free.Email = "free@example.com"
	_, err = svc.CreateDriver(ctx, free)
	require.NoError(t, err)
	off := validDriver()
	off.Email = "off@example.com"
	off.Status = models.DriverInactive
	inactive, err := svc.CreateDriver(ctx, off)
	require.NoError(t, err)

	bookings.byID["a"] = models.BookingRecord{ID: "a", Status: models.BookingInProgress, DriverID: busy.ID}
	bookings.byID["b"] = models.BookingRecord{ID: "b", Status: models.BookingInProgress, DriverID: busy.ID}
	// Deactivated mid-job: counted as inactive, not busy.
	bookings.byID["c"] = models.BookingRecord{ID: "c", Status: models.BookingInProgress, DriverID: inactive.ID}
	bookings.byID["d"] = models.BookingRecord{ID: "d", Status: models.BookingCompleted, DriverID: busy.ID}
	bookings.byID["e"] = models.BookingRecord{ID: "e", Status: models.BookingCompleted}
	bookings.byID["f"] = models.BookingRecord{ID: "f", Status: models.BookingCancelled, DriverID: busy.ID}

	stats, err := svc.DriverStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStats{
		TotalDrivers:           3,
		ActiveDrivers:          2,
		BusyDrivers:            1,
		InactiveDrivers:        1,
		TotalServicesCompleted: 2,
	}, *stats)
}
