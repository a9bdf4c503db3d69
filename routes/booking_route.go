package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/salon16/booking/config/db"
	"github.com/salon16/booking/controllers/booking_controller"
	"github.com/salon16/booking/middlewares/auth"
	"github.com/salon16/booking/notifications"
)

func RegisterBookingRoutes(r *gin.Engine, dispatcher *notifications.Dispatcher) {
	controller := booking_controller.NewBookingController(db.DB, dispatcher)

	bookings := r.Group("/bookings")
	bookings.Use(auth.AuthMiddleware())
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("/my", controller.GetMyBookings)
		bookings.POST("/:id/cancel", controller.CancelMyBooking)

		bookings.GET("", auth.RequireAdmin(), controller.ListBookings)
		bookings.PATCH("/:id/status", auth.RequireAdmin(), controller.UpdateStatus)
	}
}
