package routes

import (
	"net/http"

	"hotel/controllers"
	_ "hotel/docs"
	"hotel/services"
	"hotel/services/report"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services gom các service mà tầng HTTP cần
type Services struct {
	Rooms        *services.RoomService
	Guests       *services.GuestService
	Reservations *services.ReservationService
	Occupancy    *report.OccupancyReporter
}

func SetupRoutes(router *gin.Engine, svc Services) {
	roomController := controllers.NewRoomController(svc.Rooms)
	guestController := controllers.NewGuestController(svc.Guests, svc.Reservations)
	reservationController := controllers.NewReservationController(svc.Reservations)
	reportController := controllers.NewReportController(svc.Occupancy)

	v1 := router.Group("/api/v1")

	v1.GET("/rooms", roomController.GetRooms)
	v1.POST("/rooms", roomController.CreateRoom)
	v1.GET("/rooms/:id", roomController.GetRoom)
	v1.PUT("/rooms/:id", roomController.UpdateRoom)
	v1.DELETE("/rooms/:id", roomController.DeleteRoom)
	v1.GET("/rooms/:id/availability", roomController.CheckAvailability)
	v1.GET("/rooms/:id/guests", roomController.GetRoomGuests)

	v1.GET("/guests", guestController.GetGuests)
	v1.GET("/guests/suggest", guestController.SuggestLastNames)
	v1.POST("/guests", guestController.CreateGuest)
	v1.GET("/guests/:id", guestController.GetGuest)
	v1.PUT("/guests/:id", guestController.UpdateGuest)
	v1.DELETE("/guests/:id", guestController.DeleteGuest)
	v1.POST("/guests/:id/move", guestController.MoveGuest)

	v1.GET("/reservations", reservationController.GetReservations)
	v1.POST("/reservations", reservationController.CreateReservation)
	v1.GET("/reservations/:id", reservationController.GetReservation)
	v1.DELETE("/reservations/:id", reservationController.DeleteReservation)
	v1.POST("/reservations/:id/guests", reservationController.AddGuests)
	v1.DELETE("/reservations/:id/guests", reservationController.RemoveGuests)
	v1.POST("/reservations/:id/confirm", reservationController.Confirm)
	v1.POST("/reservations/:id/cancel", reservationController.Cancel)
	v1.POST("/reservations/:id/complete", reservationController.Complete)

	v1.GET("/reports/occupancy.xlsx", reportController.Occupancy)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
