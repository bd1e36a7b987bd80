package controllers

import (
	"context"
	"strconv"

	"hotel/dto"
	"hotel/errors"
	"hotel/models"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) ReservationController {
	return ReservationController{reservations: reservations}
}

// @Summary  Danh sách reservation
// @Tags     reservations
// @Param    checkin query string false "yyyy-mm-dd"
// @Param    roomId  query int    false "room id"
// @Success  200 {object} response.Response{data=[]dto.ReservationResponse}
// @Router   /reservations [get]
func (r ReservationController) GetReservations(c *gin.Context) {
	var query services.ReservationQuery
	if raw := c.Query("checkin"); raw != "" {
		checkin, err := validator.ParseDate("checkin", raw)
		if err != nil {
			response.FromError(c, err)
			return
		}
		query.CheckinDate = &checkin
	}
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.FromError(c, errors.NewAppError(errors.ErrCodeInvalidFormat, "roomId không hợp lệ", err))
			return
		}
		roomID := uint(id)
		query.RoomID = &roomID
	}

	list, err := r.reservations.ListReservations(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, dto.NewReservationResponses(list), len(list))
}

// @Summary  Chi tiết reservation
// @Tags     reservations
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Router   /reservations/{id} [get]
func (r ReservationController) GetReservation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	reservation, err := r.reservations.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(reservation))
}

// @Summary  Tạo reservation
// @Tags     reservations
// @Param    body body dto.CreateReservationRequest true "reservation"
// @Success  201 {object} response.Response{data=dto.ReservationResponse}
// @Failure  409 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /reservations [post]
func (r ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	checkin, err := validator.ParseDate("checkinDate", req.CheckinDate)
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkout, err := validator.ParseDate("checkoutDate", req.CheckoutDate)
	if err != nil {
		response.FromError(c, err)
		return
	}

	reservation, err := r.reservations.CreateReservation(c.Request.Context(), services.CreateReservationInput{
		RoomID:       req.RoomID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Status:       req.Status,
		GuestIDs:     req.GuestIDs,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.NewReservationResponse(reservation))
}

// @Summary  Xóa reservation
// @Tags     reservations
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response
// @Router   /reservations/{id} [delete]
func (r ReservationController) DeleteReservation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := r.reservations.DeleteReservation(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// @Summary  Thêm khách vào reservation
// @Tags     reservations
// @Param    id   path int                 true "reservation id"
// @Param    body body dto.GuestIDsRequest true "guest ids"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Router   /reservations/{id}/guests [post]
func (r ReservationController) AddGuests(c *gin.Context) {
	id, req, ok := bindGuestIDs(c)
	if !ok {
		return
	}
	reservation, err := r.reservations.AddGuests(c.Request.Context(), id, req.GuestIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(reservation))
}

// @Summary  Bỏ khách khỏi reservation
// @Tags     reservations
// @Param    id   path int                 true "reservation id"
// @Param    body body dto.GuestIDsRequest true "guest ids"
// @Success  200 {object} response.Response{data=dto.RemoveGuestsResponse}
// @Router   /reservations/{id}/guests [delete]
func (r ReservationController) RemoveGuests(c *gin.Context) {
	id, req, ok := bindGuestIDs(c)
	if !ok {
		return
	}
	result, err := r.reservations.RemoveGuests(c.Request.Context(), id, req.GuestIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.RemoveGuestsResponse{
		Reservation: dto.NewReservationResponse(result.Reservation),
		Deleted:     result.Deleted,
	})
}

// @Summary  Xác nhận reservation
// @Tags     reservations
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Router   /reservations/{id}/confirm [post]
func (r ReservationController) Confirm(c *gin.Context) {
	r.transition(c, r.reservations.ConfirmReservation)
}

// @Summary  Hủy reservation
// @Tags     reservations
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Router   /reservations/{id}/cancel [post]
func (r ReservationController) Cancel(c *gin.Context) {
	r.transition(c, r.reservations.CancelReservation)
}

// @Summary  Hoàn thành reservation
// @Tags     reservations
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Router   /reservations/{id}/complete [post]
func (r ReservationController) Complete(c *gin.Context) {
	r.transition(c, r.reservations.CompleteReservation)
}

func (r ReservationController) transition(c *gin.Context, fn func(ctx context.Context, id uint) (*models.Reservation, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	reservation, err := fn(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(reservation))
}

func bindGuestIDs(c *gin.Context) (uint, dto.GuestIDsRequest, bool) {
	var req dto.GuestIDsRequest
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return 0, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return 0, req, false
	}
	return id, req, true
}
