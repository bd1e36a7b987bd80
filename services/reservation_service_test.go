package services

import (
	"context"
	"testing"

	"hotel/constants"
	"hotel/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation_R101Scenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r101 := env.room(t, 101, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")
	g3 := env.guest(t, "Chi", "Le")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID:       r101.ID,
		CheckinDate:  date(t, "2024-03-01"),
		CheckoutDate: date(t, "2024-03-05"),
		GuestIDs:     []uint{g1.ID, g2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusPending, res.Status)
	assert.ElementsMatch(t, []uint{g1.ID, g2.ID}, res.GuestIDList())
	assert.False(t, env.mustRoom(t, r101.ID).IsAvailable)

	for _, id := range []uint{g1.ID, g2.ID} {
		g := env.mustGuest(t, id)
		require.NotNil(t, g.RoomID)
		assert.Equal(t, r101.ID, *g.RoomID)
		assert.True(t, g.HoldsReservation(res.ID))
	}

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID:       r101.ID,
		CheckinDate:  date(t, "2024-03-03"),
		CheckoutDate: date(t, "2024-03-06"),
		GuestIDs:     []uint{g3.ID},
	})
	assert.True(t, errors.Is(err, errors.ErrCodeRoomUnavailable), "got %v", err)
	assert.Nil(t, env.mustGuest(t, g3.ID).ReservationID)
	env.assertConsistent(t)
}

func TestCreateReservation_RoomUnavailableRegardlessOfDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	room := env.room(t, 102, 2)
	g := env.guest(t, "An", "Nguyen")
	flag := false
	_, err := env.rooms.UpdateRoom(ctx, room.ID, RoomUpdate{IsAvailable: &flag})
	require.NoError(t, err)

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID:       room.ID,
		CheckinDate:  date(t, "2030-01-01"),
		CheckoutDate: date(t, "2030-01-02"),
		GuestIDs:     []uint{g.ID},
	})
	assert.True(t, errors.Is(err, errors.ErrCodeRoomUnavailable))
}

func TestCreateReservation_CapacityExceeded(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, 103, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")
	g3 := env.guest(t, "Chi", "Le")

	_, err := env.reservations.CreateReservation(context.Background(), CreateReservationInput{
		RoomID:       room.ID,
		CheckinDate:  date(t, "2024-03-01"),
		CheckoutDate: date(t, "2024-03-05"),
		GuestIDs:     []uint{g1.ID, g2.ID, g3.ID},
	})
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded))
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)
	env.assertConsistent(t)
}

func TestCreateReservation_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 104, 2)
	g := env.guest(t, "An", "Nguyen")

	tests := []struct {
		name string
		in   CreateReservationInput
		code errors.ErrorCode
	}{
		{
			name: "checkout before checkin",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-05"), CheckoutDate: date(t, "2024-03-01"), GuestIDs: []uint{g.ID}},
			code: errors.ErrCodeInvalidInterval,
		},
		{
			name: "same day",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-05"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID}},
			code: errors.ErrCodeInvalidInterval,
		},
		{
			name: "missing room",
			in:   CreateReservationInput{RoomID: 999, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "no resolvable guest",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{998, 999}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "empty guest list",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05")},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "closed status",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), Status: constants.ReservationStatusCompleted, GuestIDs: []uint{g.ID}},
			code: errors.ErrCodeInvalidState,
		},
		{
			name: "cancelled status",
			in:   CreateReservationInput{RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), Status: constants.ReservationStatusCancelled, GuestIDs: []uint{g.ID}},
			code: errors.ErrCodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.reservations.CreateReservation(ctx, tt.in)
			assert.Equal(t, tt.code, errors.CodeOf(err), "got %v", err)
		})
	}
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)
}

func TestCreateReservation_PartialGuestListAccepted(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, 105, 2)
	g := env.guest(t, "An", "Nguyen")

	res, err := env.reservations.CreateReservation(context.Background(), CreateReservationInput{
		RoomID:       room.ID,
		CheckinDate:  date(t, "2024-03-01"),
		CheckoutDate: date(t, "2024-03-05"),
		GuestIDs:     []uint{g.ID, 404, g.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{g.ID}, res.GuestIDList())
}

func TestCreateReservation_DateConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 106, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")
	g3 := env.guest(t, "Chi", "Le")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)

	// the flag is reset by hand, leaving the date check as the only guard
	flag := true
	_, err = env.rooms.UpdateRoom(ctx, room.ID, RoomUpdate{IsAvailable: &flag})
	require.NoError(t, err)

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-04"), CheckoutDate: date(t, "2024-03-10"), GuestIDs: []uint{g2.ID},
	})
	assert.True(t, errors.Is(err, errors.ErrCodeDateConflict), "got %v", err)

	// back-to-back is not a conflict
	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-05"), CheckoutDate: date(t, "2024-03-10"), GuestIDs: []uint{g3.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, room.ID, res.RoomID)
}

func TestCreateReservation_CancelledDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 107, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	first, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CancelReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-02"), CheckoutDate: date(t, "2024-03-04"), GuestIDs: []uint{g2.ID},
	})
	require.NoError(t, err)
}

func TestCreateReservation_DetachesGuestFromPriorReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r1 := env.room(t, 201, 2)
	r2 := env.room(t, 202, 2)
	g := env.guest(t, "An", "Nguyen")

	prior, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r1.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID},
	})
	require.NoError(t, err)

	current, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r2.ID, CheckinDate: date(t, "2024-04-01"), CheckoutDate: date(t, "2024-04-05"), GuestIDs: []uint{g.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.GetReservation(ctx, prior.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	assert.True(t, env.mustRoom(t, r1.ID).IsAvailable)
	assert.False(t, env.mustRoom(t, r2.ID).IsAvailable)
	assert.True(t, env.mustGuest(t, g.ID).HoldsReservation(current.ID))
	env.assertConsistent(t)
}

func TestAddGuests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 301, 3)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")
	g3 := env.guest(t, "Chi", "Le")
	g4 := env.guest(t, "Dung", "Pham")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)

	res, err = env.reservations.AddGuests(ctx, res.ID, []uint{g1.ID, g2.ID, 999})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{g1.ID, g2.ID}, res.GuestIDList())
	assert.True(t, env.mustGuest(t, g2.ID).HoldsReservation(res.ID))

	_, err = env.reservations.AddGuests(ctx, res.ID, []uint{g3.ID, g4.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded))
	assert.Nil(t, env.mustGuest(t, g3.ID).ReservationID)

	_, err = env.reservations.AddGuests(ctx, 999, []uint{g3.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	env.assertConsistent(t)
}

func TestAddGuests_RefusedOnClosedReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 302, 3)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CompleteReservation(ctx, res.ID)
	require.NoError(t, err)

	_, err = env.reservations.AddGuests(ctx, res.ID, []uint{g2.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))
}

func TestRemoveGuests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 401, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID, g2.ID},
	})
	require.NoError(t, err)

	result, err := env.reservations.RemoveGuests(ctx, res.ID, []uint{g1.ID})
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, []uint{g2.ID}, result.Reservation.GuestIDList())
	assert.Nil(t, env.mustGuest(t, g1.ID).RoomID)
	assert.False(t, env.mustRoom(t, room.ID).IsAvailable)
	env.assertConsistent(t)

	result, err = env.reservations.RemoveGuests(ctx, res.ID, []uint{g2.ID})
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)
	assert.Nil(t, env.mustGuest(t, g2.ID).ReservationID)

	_, err = env.reservations.GetReservation(ctx, res.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = env.reservations.RemoveGuests(ctx, res.ID, []uint{g2.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	env.assertConsistent(t)
}

func TestMoveGuest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oldRoom := env.room(t, 501, 2)
	newRoom := env.room(t, 502, 3)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: oldRoom.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID, g2.ID},
	})
	require.NoError(t, err)

	moved, err := env.reservations.MoveGuest(ctx, g1.ID, oldRoom.ID, newRoom.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, moved.ID)
	assert.Equal(t, newRoom.ID, moved.RoomID)

	assert.True(t, env.mustRoom(t, oldRoom.ID).IsAvailable)
	assert.False(t, env.mustRoom(t, newRoom.ID).IsAvailable)
	for _, id := range []uint{g1.ID, g2.ID} {
		assert.Equal(t, newRoom.ID, *env.mustGuest(t, id).RoomID)
	}
	env.assertConsistent(t)
}

func TestMoveGuest_FullRoomLeavesBothRoomsUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomA := env.room(t, 601, 2)
	roomB := env.room(t, 602, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")
	g3 := env.guest(t, "Chi", "Le")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomA.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomB.ID, CheckinDate: date(t, "2024-06-01"), CheckoutDate: date(t, "2024-06-05"), GuestIDs: []uint{g2.ID, g3.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.MoveGuest(ctx, g1.ID, roomA.ID, roomB.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded), "got %v", err)

	inA, err := env.rooms.GuestsInRoom(ctx, roomA.ID)
	require.NoError(t, err)
	inB, err := env.rooms.GuestsInRoom(ctx, roomB.ID)
	require.NoError(t, err)
	assert.Len(t, inA, 1)
	assert.Len(t, inB, 2)
	env.assertConsistent(t)
}

func TestMoveGuest_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomA := env.room(t, 701, 2)
	roomB := env.room(t, 702, 2)
	roomC := env.room(t, 703, 1)
	booked := env.guest(t, "An", "Nguyen")
	idle := env.guest(t, "Binh", "Tran")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomA.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{booked.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.MoveGuest(ctx, 999, roomA.ID, roomB.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = env.reservations.MoveGuest(ctx, booked.ID, roomA.ID, 999)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = env.reservations.MoveGuest(ctx, idle.ID, roomA.ID, roomB.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNoReservation))

	_, err = env.reservations.MoveGuest(ctx, booked.ID, roomB.ID, roomA.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeRoomMismatch))

	// capacity equal to the party size is refused
	_, err = env.reservations.MoveGuest(ctx, booked.ID, roomA.ID, roomC.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded))

	assert.Equal(t, roomA.ID, *env.mustGuest(t, booked.ID).RoomID)
	env.assertConsistent(t)
}

func TestMoveGuest_DateConflictInNewRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomA := env.room(t, 801, 2)
	roomB := env.room(t, 802, 3)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomA.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomB.ID, CheckinDate: date(t, "2024-03-03"), CheckoutDate: date(t, "2024-03-08"), GuestIDs: []uint{g2.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.MoveGuest(ctx, g1.ID, roomA.ID, roomB.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeDateConflict), "got %v", err)
}

func TestMoveGuest_PartyOverflowsOccupiedRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomX := env.room(t, 811, 4)
	roomY := env.room(t, 812, 4)
	a1 := env.guest(t, "An", "Nguyen")
	a2 := env.guest(t, "Anh", "Nguyen")
	b1 := env.guest(t, "Binh", "Tran")
	b2 := env.guest(t, "Bao", "Tran")
	b3 := env.guest(t, "Bich", "Tran")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomX.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{a1.ID, a2.ID},
	})
	require.NoError(t, err)
	resB, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomY.ID, CheckinDate: date(t, "2024-04-01"), CheckoutDate: date(t, "2024-04-05"), GuestIDs: []uint{b1.ID, b2.ID, b3.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.MoveGuest(ctx, b1.ID, roomY.ID, roomX.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded), "got %v", err)

	inX, err := env.rooms.GuestsInRoom(ctx, roomX.ID)
	require.NoError(t, err)
	inY, err := env.rooms.GuestsInRoom(ctx, roomY.ID)
	require.NoError(t, err)
	assert.Len(t, inX, 2)
	assert.Len(t, inY, 3)
	got, err := env.reservations.GetReservation(ctx, resB.ID)
	require.NoError(t, err)
	assert.Equal(t, roomY.ID, got.RoomID)
	env.assertConsistent(t)
}

func TestAddGuests_CountsEveryGuestInSharedRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomX := env.room(t, 821, 4)
	roomY := env.room(t, 822, 2)
	a1 := env.guest(t, "An", "Nguyen")
	a2 := env.guest(t, "Anh", "Nguyen")
	c1 := env.guest(t, "Chi", "Le")
	d1 := env.guest(t, "Dung", "Pham")
	d2 := env.guest(t, "Duc", "Pham")

	resA, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomX.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{a1.ID, a2.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomY.ID, CheckinDate: date(t, "2024-04-01"), CheckoutDate: date(t, "2024-04-05"), GuestIDs: []uint{c1.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.MoveGuest(ctx, c1.ID, roomY.ID, roomX.ID)
	require.NoError(t, err)
	env.assertConsistent(t)

	// A chỉ có 2 khách nhưng phòng đã có 3 người
	_, err = env.reservations.AddGuests(ctx, resA.ID, []uint{d1.ID, d2.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded), "got %v", err)
	assert.Nil(t, env.mustGuest(t, d1.ID).ReservationID)
	assert.Nil(t, env.mustGuest(t, d2.ID).ReservationID)

	res, err := env.reservations.AddGuests(ctx, resA.ID, []uint{d1.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, res.GuestCount())

	inX, err := env.rooms.GuestsInRoom(ctx, roomX.ID)
	require.NoError(t, err)
	assert.Len(t, inX, 4)
	env.assertConsistent(t)
}

func TestRemoveGuests_KeepsSharedRoomOccupied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roomX := env.room(t, 831, 4)
	roomY := env.room(t, 832, 2)
	a1 := env.guest(t, "An", "Nguyen")
	b1 := env.guest(t, "Binh", "Tran")
	late := env.guest(t, "Chi", "Le")

	resA, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomX.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{a1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomY.ID, CheckinDate: date(t, "2024-04-01"), CheckoutDate: date(t, "2024-04-05"), GuestIDs: []uint{b1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.MoveGuest(ctx, b1.ID, roomY.ID, roomX.ID)
	require.NoError(t, err)

	result, err := env.reservations.RemoveGuests(ctx, resA.ID, []uint{a1.ID})
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.False(t, env.mustRoom(t, roomX.ID).IsAvailable)
	assert.Equal(t, roomX.ID, *env.mustGuest(t, b1.ID).RoomID)
	env.assertConsistent(t)

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: roomX.ID, CheckinDate: date(t, "2024-05-01"), CheckoutDate: date(t, "2024-05-05"), GuestIDs: []uint{late.ID},
	})
	assert.True(t, errors.Is(err, errors.ErrCodeRoomUnavailable), "got %v", err)
}

func TestDeleteReservation_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 901, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID, g2.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.reservations.DeleteReservation(ctx, res.ID))
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)
	for _, id := range []uint{g1.ID, g2.ID} {
		g := env.mustGuest(t, id)
		assert.Nil(t, g.RoomID)
		assert.Nil(t, g.ReservationID)
	}

	err = env.reservations.DeleteReservation(ctx, res.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	env.assertConsistent(t)
}

func TestStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 1001, 2)
	g := env.guest(t, "An", "Nguyen")

	res, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID},
	})
	require.NoError(t, err)

	res, err = env.reservations.ConfirmReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusActive, res.Status)

	_, err = env.reservations.ConfirmReservation(ctx, res.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))

	res, err = env.reservations.CompleteReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusCompleted, res.Status)
	assert.True(t, env.mustRoom(t, room.ID).IsAvailable)
	assert.Nil(t, env.mustGuest(t, g.ID).ReservationID)

	_, err = env.reservations.CancelReservation(ctx, res.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))

	kept, err := env.reservations.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{g.ID}, kept.GuestIDList())
	env.assertConsistent(t)
}

func TestCompleteDueReservations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r1 := env.room(t, 1101, 2)
	r2 := env.room(t, 1102, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	due, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r1.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	later, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r2.ID, CheckinDate: date(t, "2024-03-04"), CheckoutDate: date(t, "2024-03-10"), GuestIDs: []uint{g2.ID},
	})
	require.NoError(t, err)

	n, err := env.reservations.CompleteDueReservations(ctx, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := env.reservations.GetReservation(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusCompleted, got.Status)

	got, err = env.reservations.GetReservation(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusPending, got.Status)

	n, err = env.reservations.CompleteDueReservations(ctx, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReservationQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r1 := env.room(t, 1201, 2)
	r2 := env.room(t, 1202, 2)
	g1 := env.guest(t, "An", "Nguyen")
	g2 := env.guest(t, "Binh", "Tran")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r1.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g1.ID},
	})
	require.NoError(t, err)
	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: r2.ID, CheckinDate: date(t, "2024-04-01"), CheckoutDate: date(t, "2024-04-05"), GuestIDs: []uint{g2.ID},
	})
	require.NoError(t, err)

	all, err := env.reservations.ListReservations(ctx, ReservationQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byDate, err := env.reservations.FindByCheckinDate(ctx, date(t, "2024-04-01"))
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, r2.ID, byDate[0].RoomID)

	byRoom, err := env.reservations.ReservationsForRoom(ctx, r1.ID)
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, []uint{g1.ID}, byRoom[0].GuestIDList())

	_, err = env.reservations.ReservationsForRoom(ctx, 999)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestLifecycleInvalidatesRoomCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 1301, 2)
	g := env.guest(t, "An", "Nguyen")

	available, err := env.rooms.AvailableRooms(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.True(t, env.redis.Exists(constants.CacheKeyRoomsAvailable))

	_, err = env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID},
	})
	require.NoError(t, err)
	assert.False(t, env.redis.Exists(constants.CacheKeyRoomsAvailable))

	available, err = env.rooms.AvailableRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
}
