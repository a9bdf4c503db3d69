package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/salon16/booking/clients"
	"github.com/salon16/booking/config/db"
	"github.com/salon16/booking/controllers/payment_controller"
	"github.com/salon16/booking/middlewares/auth"
)

func RegisterPaymentRoutes(r *gin.Engine) {
	razorpayClient := clients.NewRazorpayClient(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
	)
	controller := payment_controller.NewPaymentController(db.DB, razorpayClient, os.Getenv("RAZORPAY_WEBHOOK_SECRET"))

	r.POST("/bookings/:id/deposit", auth.AuthMiddleware(), controller.CreateDeposit)
	r.POST("/payments/webhook", controller.Webhook)
}
