package controllers

import (
	"strconv"

	"hotel/dto"
	"hotel/models"
	"hotel/response"
	"hotel/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	guests       *services.GuestService
	reservations *services.ReservationService
}

func NewGuestController(guests *services.GuestService, reservations *services.ReservationService) GuestController {
	return GuestController{guests: guests, reservations: reservations}
}

// @Summary  Danh sách khách
// @Tags     guests
// @Param    lastName query string false "họ, không phân biệt hoa thường"
// @Param    passport query string false "số hộ chiếu"
// @Success  200 {object} response.Response{data=[]models.Guest}
// @Router   /guests [get]
func (g GuestController) GetGuests(c *gin.Context) {
	var (
		guests []models.Guest
		err    error
	)
	ctx := c.Request.Context()
	switch {
	case c.Query("lastName") != "":
		guests, err = g.guests.FindByLastName(ctx, c.Query("lastName"))
	case c.Query("passport") != "":
		guests, err = g.guests.FindByPassportNumber(ctx, c.Query("passport"))
	default:
		guests, err = g.guests.ListGuests(ctx)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, guests, len(guests))
}

// @Summary  Gợi ý họ gần đúng
// @Tags     guests
// @Param    lastName query string true  "chuỗi cần gợi ý"
// @Param    limit    query int    false "số gợi ý tối đa"
// @Success  200 {object} response.Response{data=[]string}
// @Router   /guests/suggest [get]
func (g GuestController) SuggestLastNames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	names, err := g.guests.SuggestLastNames(c.Request.Context(), c.Query("lastName"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, names)
}

// @Summary  Chi tiết khách
// @Tags     guests
// @Param    id path int true "guest id"
// @Success  200 {object} response.Response{data=models.Guest}
// @Router   /guests/{id} [get]
func (g GuestController) GetGuest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	guest, err := g.guests.GetGuest(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, guest)
}

// @Summary  Tạo khách
// @Tags     guests
// @Param    body body dto.GuestRequest true "guest"
// @Success  201 {object} response.Response{data=models.Guest}
// @Router   /guests [post]
func (g GuestController) CreateGuest(c *gin.Context) {
	var req dto.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	guest, err := g.guests.CreateGuest(c.Request.Context(), &models.Guest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, guest)
}

// @Summary  Cập nhật khách
// @Tags     guests
// @Param    id   path int                    true "guest id"
// @Param    body body dto.GuestUpdateRequest true "fields"
// @Success  200 {object} response.Response{data=models.Guest}
// @Router   /guests/{id} [put]
func (g GuestController) UpdateGuest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.GuestUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	guest, err := g.guests.UpdateGuest(c.Request.Context(), id, services.GuestUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, guest)
}

// @Summary  Xóa khách
// @Tags     guests
// @Param    id path int true "guest id"
// @Success  200 {object} response.Response
// @Router   /guests/{id} [delete]
func (g GuestController) DeleteGuest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := g.guests.DeleteGuest(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// @Summary  Chuyển khách sang phòng khác
// @Tags     guests
// @Param    id   path int                  true "guest id"
// @Param    body body dto.MoveGuestRequest true "rooms"
// @Success  200 {object} response.Response{data=dto.ReservationResponse}
// @Failure  422 {object} response.Response
// @Router   /guests/{id}/move [post]
func (g GuestController) MoveGuest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.MoveGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	reservation, err := g.reservations.MoveGuest(c.Request.Context(), id, req.CurrentRoomID, req.NewRoomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(reservation))
}
