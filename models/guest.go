package models

import "time"

// Guest chỉ giữ id của phòng và reservation hiện tại, không giữ con trỏ.
type Guest struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FirstName      string    `json:"firstName" validate:"required"`
	LastName       string    `json:"lastName" gorm:"index" validate:"required"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Gender         string    `json:"gender"`
	PassportNumber string    `json:"passportNumber" gorm:"index"`
	RoomID         *uint     `json:"roomId"`
	ReservationID  *uint     `json:"reservationId"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Assign binds the guest to a room through a reservation.
func (g *Guest) Assign(roomID, reservationID uint) {
	g.RoomID = &roomID
	g.ReservationID = &reservationID
}

// Release clears the current room and reservation.
func (g *Guest) Release() {
	g.RoomID = nil
	g.ReservationID = nil
}

// HoldsReservation reports whether id is the guest's current reservation.
func (g *Guest) HoldsReservation(id uint) bool {
	return g.ReservationID != nil && *g.ReservationID == id
}
