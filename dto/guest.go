package dto

type GuestRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	PassportNumber string `json:"passportNumber"`
}

type GuestUpdateRequest struct {
	FirstName      *string `json:"firstName" binding:"omitempty,min=1"`
	LastName       *string `json:"lastName" binding:"omitempty,min=1"`
	DateOfBirth    *string `json:"dateOfBirth"`
	Gender         *string `json:"gender"`
	PassportNumber *string `json:"passportNumber"`
}

type MoveGuestRequest struct {
	CurrentRoomID uint `json:"currentRoomId" binding:"required"`
	NewRoomID     uint `json:"newRoomId" binding:"required"`
}
