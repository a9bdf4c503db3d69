package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/salon16/booking/config/db"
	"github.com/salon16/booking/controllers/user_controller"
	"github.com/salon16/booking/middlewares"
	"github.com/salon16/booking/middlewares/auth"
)

func RegisterUserRoutes(r *gin.Engine) {
	controller := user_controller.NewUserController(db.DB)

	users := r.Group("/users")
	{
		users.POST("/register", middleware.NewRateLimiter("5-1m", "userRegister"), controller.Register)
		users.POST("/login", middleware.NewRateLimiter("10-1m", "userLogin"), controller.Login)
		users.POST("/refresh", middleware.NewRateLimiter("10-1m", "userRefresh"), controller.Refresh)

		users.GET("/me", auth.AuthMiddleware(), controller.Me)
		users.POST("/me/device-tokens", auth.AuthMiddleware(), controller.RegisterDeviceToken)
	}
}
