package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salon16/booking/config"
	"github.com/salon16/booking/config/db"
	redisclient "github.com/salon16/booking/config/redis"
	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/middlewares/cors"
	"github.com/salon16/booking/notifications"
	"github.com/salon16/booking/routes"
	"github.com/salon16/booking/utils/mail"
)

//go:embed templates/email/*
var embeddedEmailTemplates embed.FS

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redisclient.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	if err := mail.InitTemplates(embeddedEmailTemplates); err != nil {
		logger.ErrorLogger.Errorf("Failed to initialize email templates: %v", err)
		fmt.Println("Failed to initialize email templates:", err)
		os.Exit(1)
	}
	logger.InfoLogger.Info("Email templates initialized.")

	dispatcher := notifications.NewDispatcher(db.DB)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterUserRoutes(r)
	routes.RegisterBookingRoutes(r, dispatcher)
	routes.RegisterPaymentRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from booking service"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Server listening on :%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed to listen: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited gracefully.")
}
