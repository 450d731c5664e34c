package booking

import (
	"context"
	"testing"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *models.BookingSession {
	s := newSession("sess-1", time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC))
	s.Request.ServiceID = "full-valet"
	s.Request.VehicleType = models.VehicleSmall
	s.Pricing = DepositFor(45)
	s.BookedSlots.Mark("2030-01-15", "09:00")
	return s
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKeyPrefix+"sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "full-valet", got.Request.ServiceID)
	assert.True(t, got.BookedSlots.Contains("2030-01-15", "09:00"))
	assert.Equal(t, []string{"2030-01-15-09:00"}, got.BookedSlots.Keys())

	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, "sess-1")
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestRedisSessionStoreDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	assert.True(t, apperror.Is(store.Delete(ctx, "sess-1"), apperror.NotFound))
}

func TestMemorySessionStoreExpiresAndCopies(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	clock := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	original := sampleSession()
	require.NoError(t, store.Save(ctx, original))
	original.BookedSlots.Mark("2030-01-15", "10:00")

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookedSlots.Len())

	clock = clock.Add(2 * time.Minute)
	_, err = store.Get(ctx, "sess-1")
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestAbandonedSessionsAreReleased(t *testing.T) {
	clock := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore(time.Minute)
	store.now = func() time.Time { return clock }
	svc := &DefaultBookingService{
		Store:    store,
		API:      &fakeAPI{},
		Services: DefaultCatalog(),
		Now:      func() time.Time { return clock },
	}
	ctx := context.Background()

	vehicle := models.VehicleMedium
	for i := 0; i < 1000; i++ {
		session, err := svc.StartSession(ctx)
		require.NoError(t, err)
		_, err = svc.UpdateRequest(ctx, session.SessionID, models.BookingRequestPatch{VehicleType: &vehicle})
		require.NoError(t, err)
	}
	assert.Equal(t, 1000, store.Len())
	assert.Zero(t, svc.locks.len())

	clock = clock.Add(24 * time.Hour)
	_, err := svc.StartSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Zero(t, svc.locks.len())
}

func TestSessionLocksSerialiseAndRelease(t *testing.T) {
	var locks sessionLocks
	unlock := locks.lock("a")
	assert.Equal(t, 1, locks.len())

	acquired := make(chan struct{})
	go func() {
		release := locks.lock("a")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held session lock")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return locks.len() == 0 }, time.Second, time.Millisecond)
}
