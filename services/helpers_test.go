package services

import (
	"context"
	"testing"
	"time"

	"hotel/constants"
	"hotel/models"
	"hotel/services/logger"
	"hotel/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store        *store.MemoryStore
	redis        *miniredis.Miniredis
	rooms        *RoomService
	guests       *GuestService
	reservations *ReservationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewNop()
	st := store.NewMemoryStore()
	cache := NewRoomCache(rdb, time.Minute, log)

	return &testEnv{
		store:        st,
		redis:        mr,
		rooms:        NewRoomService(RoomServiceOptions{Store: st, Cache: cache, Logger: log}),
		guests:       NewGuestService(GuestServiceOptions{Store: st, Logger: log}),
		reservations: NewReservationService(ReservationServiceOptions{Store: st, Cache: cache, Logger: log}),
	}
}

func (e *testEnv) room(t *testing.T, number, capacity int) *models.Room {
	t.Helper()
	room, err := e.rooms.CreateRoom(context.Background(), &models.Room{
		RoomNumber:        number,
		RoomType:          "Standard",
		PricePerNight:     50,
		MaxNumberOfGuests: capacity,
	})
	require.NoError(t, err)
	return room
}

func (e *testEnv) guest(t *testing.T, first, last string) *models.Guest {
	t.Helper()
	guest, err := e.guests.CreateGuest(context.Background(), &models.Guest{
		FirstName:      first,
		LastName:       last,
		PassportNumber: "P-" + first,
	})
	require.NoError(t, err)
	return guest
}

func (e *testEnv) mustRoom(t *testing.T, id uint) *models.Room {
	t.Helper()
	room, err := e.rooms.GetRoom(context.Background(), id)
	require.NoError(t, err)
	return room
}

func (e *testEnv) mustGuest(t *testing.T, id uint) *models.Guest {
	t.Helper()
	guest, err := e.guests.GetGuest(context.Background(), id)
	require.NoError(t, err)
	return guest
}

// assertConsistent kiểm tra khách trong phòng khớp với reservation hiện tại của họ,
// số khách của mọi reservation đang mở nằm trong [1, sức chứa], và không phòng nào
// vừa có khách vừa được đánh dấu trống hay chứa quá sức chứa.
func (e *testEnv) assertConsistent(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	repo := e.store.Repo(ctx)

	guests, err := repo.FindGuests(store.GuestFilter{})
	require.NoError(t, err)
	for _, g := range guests {
		if g.ReservationID == nil {
			assert.Nil(t, g.RoomID, "guest %d has a room without a reservation", g.ID)
			continue
		}
		res, err := repo.GetReservation(*g.ReservationID)
		require.NoError(t, err)
		require.NotNil(t, res, "guest %d points at a missing reservation", g.ID)
		require.NotNil(t, g.RoomID)
		assert.Equal(t, res.RoomID, *g.RoomID, "guest %d room diverges from its reservation", g.ID)
		assert.True(t, res.HasGuest(g.ID))
	}

	reservations, err := repo.FindReservations(store.ReservationFilter{})
	require.NoError(t, err)
	for _, r := range reservations {
		if !r.IsOpen() {
			continue
		}
		room, err := repo.GetRoom(r.RoomID)
		require.NoError(t, err)
		require.NotNil(t, room)
		assert.GreaterOrEqual(t, r.GuestCount(), 1)
		assert.LessOrEqual(t, r.GuestCount(), room.MaxNumberOfGuests)
	}

	rooms, err := repo.FindRooms(store.RoomFilter{})
	require.NoError(t, err)
	for _, room := range rooms {
		occupants, err := repo.GuestsInRoom(room.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(occupants), room.MaxNumberOfGuests,
			"room %d holds more guests than its capacity", room.RoomNumber)
		if len(occupants) > 0 {
			assert.False(t, room.IsAvailable, "room %d is flagged free with guests assigned", room.RoomNumber)
		}
	}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(constants.DateLayout, value)
	require.NoError(t, err)
	return d
}
