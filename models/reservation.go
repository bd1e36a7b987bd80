package models

import (
	"time"

	"hotel/constants"

	"github.com/lib/pq"
)

type Reservation struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	CheckinDate  time.Time     `json:"checkinDate" gorm:"type:date;index"`
	CheckoutDate time.Time     `json:"checkoutDate" gorm:"type:date"`
	Status       string        `json:"status"`
	RoomID       uint          `json:"roomId" gorm:"index"`
	GuestIDs     pq.Int64Array `json:"guestIds" gorm:"type:integer[]"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Reservation) GuestCount() int {
	return len(r.GuestIDs)
}

func (r *Reservation) HasGuest(guestID uint) bool {
	for _, id := range r.GuestIDs {
		if uint(id) == guestID {
			return true
		}
	}
	return false
}

func (r *Reservation) AddGuest(guestID uint) {
	if !r.HasGuest(guestID) {
		r.GuestIDs = append(r.GuestIDs, int64(guestID))
	}
}

func (r *Reservation) RemoveGuest(guestID uint) {
	kept := make(pq.Int64Array, 0, len(r.GuestIDs))
	for _, id := range r.GuestIDs {
		if uint(id) != guestID {
			kept = append(kept, id)
		}
	}
	r.GuestIDs = kept
}

// GuestIDList trả về danh sách guest id dạng uint
func (r *Reservation) GuestIDList() []uint {
	ids := make([]uint, 0, len(r.GuestIDs))
	for _, id := range r.GuestIDs {
		ids = append(ids, uint(id))
	}
	return ids
}

// IsOpen reports whether the reservation still holds its room.
func (r *Reservation) IsOpen() bool {
	return r.Status != constants.ReservationStatusCompleted && r.Status != constants.ReservationStatusCancelled
}

// Clone returns a copy that does not share the guest id slice.
func (r *Reservation) Clone() *Reservation {
	c := *r
	c.GuestIDs = append(pq.Int64Array(nil), r.GuestIDs...)
	return &c
}
