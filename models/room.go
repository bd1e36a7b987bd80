package models

import "time"

// Room: danh sách khách đang ở được suy ra từ Guest.RoomID, không lưu trên phòng.
type Room struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	RoomNumber        int       `json:"roomNumber" gorm:"uniqueIndex" validate:"gt=0"`
	RoomType          string    `json:"roomType" gorm:"index" validate:"required"`
	PricePerNight     float64   `json:"pricePerNight" validate:"gte=0"`
	MaxNumberOfGuests int       `json:"maxNumberOfGuests" validate:"gte=1"`
	IsAvailable       bool      `json:"isAvailable" gorm:"index"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
