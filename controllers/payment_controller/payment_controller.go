package payment_controller

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon16/booking/clients"
	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/booking_models"
	"github.com/salon16/booking/utils"
)

// PaymentController handles optional booking deposits through Razorpay.
type PaymentController struct {
	DB            *pgxpool.Pool
	Razorpay      clients.RazorpayClientWrapper
	WebhookSecret string
}

func NewPaymentController(db *pgxpool.Pool, rz clients.RazorpayClientWrapper, webhookSecret string) *PaymentController {
	return &PaymentController{
		DB:            db,
		Razorpay:      rz,
		WebhookSecret: webhookSecret,
	}
}

// CreateDeposit creates a payment order for a booking's service price. The
// customer pays it from the app; the webhook below confirms it.
func (pc *PaymentController) CreateDeposit(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, pc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}
	if booking.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if booking.DepositPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "deposit already paid"})
		return
	}

	// Razorpay amounts are in the smallest currency unit.
	order, err := pc.Razorpay.CreateOrder(map[string]interface{}{
		"amount":   int64(math.Round(booking.ServicePrice * 100)),
		"currency": "INR",
		"receipt":  booking.ID.String(),
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create deposit order for booking %s: %v", booking.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create payment order"})
		return
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		logger.ErrorLogger.Errorf("Payment gateway returned no order id for booking %s", booking.ID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid payment gateway response"})
		return
	}

	if err := booking_models.SetDepositOrder(ctx, pc.DB, booking.ID, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment order"})
		return
	}

	logger.InfoLogger.Infof("Deposit order %s created for booking %s", orderID, booking.ID)
	c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "amount": order["amount"], "currency": order["currency"]})
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook receives payment events from Razorpay and marks booking deposits
// paid. Always answers 200 for verified payloads so the gateway stops
// retrying events we have already handled.
func (pc *PaymentController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20)) // cap at 1MB
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !pc.Razorpay.VerifyWebhookSignature(string(body), signature, pc.WebhookSecret) {
		logger.WarnLogger.Warn("Rejected payment webhook with invalid signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Event != "payment.captured" {
		c.JSON(http.StatusOK, gin.H{"message": "event ignored"})
		return
	}

	orderID := payload.Payload.Payment.Entity.OrderID
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing order id"})
		return
	}

	if err := booking_models.MarkDepositPaid(c.Request.Context(), pc.DB, orderID); err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			logger.WarnLogger.Warnf("Payment webhook for unknown order %s", orderID)
			c.JSON(http.StatusOK, gin.H{"message": "no matching booking"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deposit recorded"})
}
