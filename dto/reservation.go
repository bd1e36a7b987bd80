package dto

import (
	"hotel/constants"
	"hotel/models"
	"hotel/services/availability"
)

type CreateReservationRequest struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	CheckinDate  string `json:"checkinDate" binding:"required"`
	CheckoutDate string `json:"checkoutDate" binding:"required"`
	Status       string `json:"status"`
	GuestIDs     []uint `json:"guestIds"`
}

type GuestIDsRequest struct {
	GuestIDs []uint `json:"guestIds" binding:"required"`
}

type ReservationResponse struct {
	ID           uint   `json:"id"`
	RoomID       uint   `json:"roomId"`
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
	Nights       int    `json:"nights"`
	Status       string `json:"status"`
	GuestIDs     []uint `json:"guestIds"`
}

type RemoveGuestsResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Deleted     bool                `json:"deleted"`
}

func NewReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		RoomID:       r.RoomID,
		CheckinDate:  r.CheckinDate.Format(constants.DateLayout),
		CheckoutDate: r.CheckoutDate.Format(constants.DateLayout),
		Nights:       availability.Nights(r.CheckinDate, r.CheckoutDate),
		Status:       r.Status,
		GuestIDs:     r.GuestIDList(),
	}
}

func NewReservationResponses(list []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, NewReservationResponse(&list[i]))
	}
	return out
}
