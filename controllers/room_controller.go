package controllers

import (
	"hotel/constants"
	"hotel/dto"
	"hotel/models"
	"hotel/response"
	"hotel/services"
	"hotel/store"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{rooms: rooms}
}

// GetRooms godoc
// @Summary  Danh sách phòng
// @Tags     rooms
// @Param    available query bool   false "lọc theo cờ trống"
// @Param    type      query string false "loại phòng"
// @Param    maxGuests query int    false "sức chứa"
// @Param    number    query int    false "số phòng"
// @Success  200 {object} response.Response{data=[]models.Room}
// @Router   /rooms [get]
func (r RoomController) GetRooms(c *gin.Context) {
	available, err := queryBool(c, "available")
	if err != nil {
		response.FromError(c, err)
		return
	}
	maxGuests, err := queryInt(c, "maxGuests")
	if err != nil {
		response.FromError(c, err)
		return
	}
	number, err := queryInt(c, "number")
	if err != nil {
		response.FromError(c, err)
		return
	}
	roomType := c.Query("type")

	var rooms []models.Room
	switch {
	case maxGuests == nil && number == nil && roomType == "" && available == nil:
		rooms, err = r.rooms.ListRooms(c.Request.Context())
	case maxGuests == nil && number == nil && roomType == "" && *available:
		rooms, err = r.rooms.AvailableRooms(c.Request.Context())
	case maxGuests == nil && number == nil && roomType == "":
		rooms, err = r.rooms.UnavailableRooms(c.Request.Context())
	default:
		rooms, err = r.rooms.FindRooms(c.Request.Context(), store.RoomFilter{
			RoomNumber:        number,
			IsAvailable:       available,
			RoomType:          roomType,
			MaxNumberOfGuests: maxGuests,
		})
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}

// @Summary  Chi tiết phòng
// @Tags     rooms
// @Param    id path int true "room id"
// @Success  200 {object} response.Response{data=models.Room}
// @Failure  404 {object} response.Response
// @Router   /rooms/{id} [get]
func (r RoomController) GetRoom(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	room, err := r.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// @Summary  Tạo phòng
// @Tags     rooms
// @Param    body body dto.RoomRequest true "room"
// @Success  201 {object} response.Response{data=models.Room}
// @Router   /rooms [post]
func (r RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := r.rooms.CreateRoom(c.Request.Context(), &models.Room{
		RoomNumber:        req.RoomNumber,
		RoomType:          req.RoomType,
		PricePerNight:     req.PricePerNight,
		MaxNumberOfGuests: req.MaxNumberOfGuests,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

// @Summary  Cập nhật phòng
// @Tags     rooms
// @Param    id   path int                   true "room id"
// @Param    body body dto.RoomUpdateRequest true "fields"
// @Success  200 {object} response.Response{data=models.Room}
// @Router   /rooms/{id} [put]
func (r RoomController) UpdateRoom(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.RoomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := r.rooms.UpdateRoom(c.Request.Context(), id, services.RoomUpdate{
		RoomNumber:        req.RoomNumber,
		RoomType:          req.RoomType,
		PricePerNight:     req.PricePerNight,
		MaxNumberOfGuests: req.MaxNumberOfGuests,
		IsAvailable:       req.IsAvailable,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// @Summary  Xóa phòng
// @Tags     rooms
// @Param    id path int true "room id"
// @Success  200 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /rooms/{id} [delete]
func (r RoomController) DeleteRoom(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := r.rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// @Summary  Kiểm tra phòng trống theo khoảng ngày
// @Tags     rooms
// @Param    id       path  int    true "room id"
// @Param    checkin  query string true "yyyy-mm-dd"
// @Param    checkout query string true "yyyy-mm-dd"
// @Success  200 {object} response.Response{data=dto.RoomAvailabilityResponse}
// @Router   /rooms/{id}/availability [get]
func (r RoomController) CheckAvailability(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkin, err := validator.ParseDate("checkin", c.Query("checkin"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkout, err := validator.ParseDate("checkout", c.Query("checkout"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	ok, err := r.rooms.IsRoomAvailable(c.Request.Context(), id, checkin, checkout)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.RoomAvailabilityResponse{
		RoomID:       id,
		CheckinDate:  checkin.Format(constants.DateLayout),
		CheckoutDate: checkout.Format(constants.DateLayout),
		Available:    ok,
	})
}

// @Summary  Khách đang ở trong phòng
// @Tags     rooms
// @Param    id path int true "room id"
// @Success  200 {object} response.Response{data=[]models.Guest}
// @Router   /rooms/{id}/guests [get]
func (r RoomController) GetRoomGuests(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	guests, err := r.rooms.GuestsInRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, guests, len(guests))
}
