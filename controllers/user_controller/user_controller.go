package user_controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/user_models"
	"github.com/salon16/booking/utils"
)

const (
	accessTokenExpiry  = 60 * time.Minute
	refreshTokenExpiry = 30 * 24 * time.Hour
)

// UserController holds dependencies for account operations.
type UserController struct {
	DB *pgxpool.Pool
}

func NewUserController(db *pgxpool.Pool) *UserController {
	return &UserController{DB: db}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Register creates a customer account. Admin accounts are provisioned out of
// band, never through this endpoint.
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := user_models.CreateUser(c.Request.Context(), uc.DB, req.Email, req.Password, req.FirstName, req.LastName, user_models.RoleCustomer)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully!", "user": user})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues access and refresh tokens.
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := user_models.GetUserByEmail(ctx, uc.DB, req.Email)
	if err != nil {
		if errors.Is(err, user_models.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process login."})
		return
	}

	match, err := user_models.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		logger.WarnLogger.Warnf("Failed login attempt for %s", user.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	accessToken, err := user_models.GenerateAccessToken(user.ID, user.Role, accessTokenExpiry)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate access token for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token."})
		return
	}

	refreshToken, err := user_models.GenerateRefreshToken(user.ID, refreshTokenExpiry)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate refresh token for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token."})
		return
	}

	if err := user_models.SaveRefreshToken(ctx, uc.DB, user.ID, refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process login."})
		return
	}

	logger.InfoLogger.Infof("User %s logged in", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a valid refresh token for a new access token.
func (uc *UserController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return utils.GetJWTRefreshSecret(), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token."})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token claims."})
		return
	}
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token claims."})
		return
	}

	ctx := c.Request.Context()
	user, err := user_models.GetUserByID(ctx, uc.DB, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found."})
		return
	}
	if user.RefreshToken == nil || *user.RefreshToken != req.RefreshToken {
		logger.WarnLogger.Warnf("Stale refresh token presented for user %s", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token revoked."})
		return
	}

	accessToken, err := user_models.GenerateAccessToken(user.ID, user.Role, accessTokenExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Me returns the authenticated user's profile.
func (uc *UserController) Me(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := user_models.GetUserByID(c.Request.Context(), uc.DB, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterDeviceToken records the caller's device push token. The single
// token field tracks the latest device; the token list accumulates all of
// them for multicast fallback delivery.
func (uc *UserController) RegisterDeviceToken(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := user_models.RegisterDeviceToken(c.Request.Context(), uc.DB, userID, req.Token); err != nil {
		if errors.Is(err, user_models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token registered."})
}
