package services

import (
	"context"
	"testing"

	"hotel/errors"
	"hotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := uint(7)
	guest, err := env.guests.CreateGuest(ctx, &models.Guest{
		FirstName:      "An",
		LastName:       "Nguyen",
		PassportNumber: "B1234567",
		RoomID:         &roomID,
	})
	require.NoError(t, err)
	assert.NotZero(t, guest.ID)
	assert.Nil(t, guest.RoomID, "rooms are only assigned through reservations")

	_, err = env.guests.CreateGuest(ctx, &models.Guest{FirstName: "An"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	last := "Nguyễn"
	updated, err := env.guests.UpdateGuest(ctx, guest.ID, GuestUpdate{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn", updated.LastName)
	assert.Equal(t, "B1234567", updated.PassportNumber)

	_, err = env.guests.UpdateGuest(ctx, 999, GuestUpdate{LastName: &last})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	require.NoError(t, env.guests.DeleteGuest(ctx, guest.ID))
	_, err = env.guests.GetGuest(ctx, guest.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestGuestService_Finders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.guest(t, "An", "Nguyen")
	env.guest(t, "Binh", "nguyen")
	env.guest(t, "Chi", "Tran")

	found, err := env.guests.FindByLastName(ctx, "NGUYEN")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = env.guests.FindByPassportNumber(ctx, "P-Chi")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tran", found[0].LastName)

	found, err = env.guests.FindByPassportNumber(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	all, err := env.guests.ListGuests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGuestService_DeleteRefusedWhileBooked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, 101, 2)
	g := env.guest(t, "An", "Nguyen")

	_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
		RoomID: room.ID, CheckinDate: date(t, "2024-03-01"), CheckoutDate: date(t, "2024-03-05"), GuestIDs: []uint{g.ID},
	})
	require.NoError(t, err)

	err = env.guests.DeleteGuest(ctx, g.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))
}

func TestGuestService_SuggestLastNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.guest(t, "An", "Nguyễn")
	env.guest(t, "Binh", "Nguyen")
	env.guest(t, "Chi", "Trần")
	env.guest(t, "Dung", "Phạm")
	env.guest(t, "Em", "Hoàng")

	suggestions, err := env.guests.SuggestLastNames(ctx, "nguyn", 3)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Nguyễn", suggestions[0])
	assert.LessOrEqual(t, len(suggestions), 3)
	assert.NotContains(t, suggestions, "Nguyen", "transliterated duplicates collapse into one suggestion")

	suggestions, err = env.guests.SuggestLastNames(ctx, "Tran", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trần"}, suggestions)

	suggestions, err = env.guests.SuggestLastNames(ctx, "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "nguyen", normalizeName("  Nguyễn "))
	// e + circumflex + tilde as combining marks
	assert.Equal(t, "nguyen", normalizeName("Nguye\u0302\u0303n"))
	assert.Equal(t, "tran", normalizeName("TRẦN"))
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("tran", "tran"))
	assert.Equal(t, 1.0, nameSimilarity("", ""))
	assert.Greater(t, nameSimilarity("nguyen", "nguyn"), nameSimilarity("nguyen", "pham"))
}
