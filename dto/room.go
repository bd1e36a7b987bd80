package dto

type RoomRequest struct {
	RoomNumber        int     `json:"roomNumber" binding:"required,gt=0"`
	RoomType          string  `json:"roomType" binding:"required"`
	PricePerNight     float64 `json:"pricePerNight" binding:"gte=0"`
	MaxNumberOfGuests int     `json:"maxNumberOfGuests" binding:"required,gte=1"`
}

// RoomUpdateRequest: trường bỏ trống được giữ nguyên
type RoomUpdateRequest struct {
	RoomNumber        *int     `json:"roomNumber" binding:"omitempty,gt=0"`
	RoomType          *string  `json:"roomType" binding:"omitempty,min=1"`
	PricePerNight     *float64 `json:"pricePerNight" binding:"omitempty,gte=0"`
	MaxNumberOfGuests *int     `json:"maxNumberOfGuests" binding:"omitempty,gte=1"`
	IsAvailable       *bool    `json:"isAvailable"`
}

type RoomAvailabilityResponse struct {
	RoomID       uint   `json:"roomId"`
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
	Available    bool   `json:"available"`
}
