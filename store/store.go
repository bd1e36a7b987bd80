// Package store là lớp lưu trữ theo id cho phòng, khách và reservation.
// Không tìm thấy được trả về (nil, nil), không phải lỗi.
package store

import (
	"context"
	"time"

	"hotel/models"
)

// RoomFilter chọn phòng theo từng trường; trường nil/rỗng bị bỏ qua.
type RoomFilter struct {
	RoomNumber        *int
	IsAvailable       *bool
	RoomType          string
	MaxNumberOfGuests *int
}

type GuestFilter struct {
	LastName       string
	PassportNumber string
}

type ReservationFilter struct {
	CheckinDate   *time.Time
	RoomID        *uint
	Statuses      []string
	CheckoutUntil *time.Time
}

// Repository is the load/store surface consumed by the services.
type Repository interface {
	GetRoom(id uint) (*models.Room, error)
	// LockRoom loads a room and holds it until the surrounding transaction ends.
	LockRoom(id uint) (*models.Room, error)
	FindRooms(filter RoomFilter) ([]models.Room, error)
	SaveRoom(room *models.Room) error
	DeleteRoom(id uint) error

	GetGuest(id uint) (*models.Guest, error)
	GetGuestsByIDs(ids []uint) ([]models.Guest, error)
	FindGuests(filter GuestFilter) ([]models.Guest, error)
	GuestsInRoom(roomID uint) ([]models.Guest, error)
	SaveGuest(guest *models.Guest) error
	DeleteGuest(id uint) error

	GetReservation(id uint) (*models.Reservation, error)
	ReservationsForRoom(roomID uint) ([]models.Reservation, error)
	FindReservations(filter ReservationFilter) ([]models.Reservation, error)
	SaveReservation(reservation *models.Reservation) error
	DeleteReservation(id uint) error
}

// Store hands out repositories. Repo gives auto-commit access; Transaction runs
// fn as one unit of work that either commits entirely or not at all.
type Store interface {
	Repo(ctx context.Context) Repository
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}
