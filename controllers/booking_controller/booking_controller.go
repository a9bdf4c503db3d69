package booking_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon16/booking/booking"
	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/booking_models"
	"github.com/salon16/booking/models/summary_models"
	"github.com/salon16/booking/models/user_models"
	"github.com/salon16/booking/notifications"
	"github.com/salon16/booking/utils"
)

// BookingController holds dependencies for booking operations.
type BookingController struct {
	DB         *pgxpool.Pool
	Dispatcher *notifications.Dispatcher
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(db *pgxpool.Pool, dispatcher *notifications.Dispatcher) *BookingController {
	return &BookingController{
		DB:         db,
		Dispatcher: dispatcher,
	}
}

type CreateBookingRequest struct {
	Date            string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string  `json:"time" binding:"required,datetime=15:04"`
	ServiceName     string  `json:"service_name" binding:"required"`
	ServicePrice    float64 `json:"service_price" binding:"required,gt=0"`
	ServiceDuration int     `json:"service_duration" binding:"required,gt=0"`
}

// CreateBooking creates a pending booking for the authenticated customer and
// hands the created snapshot to the notification dispatcher.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	customer, err := user_models.GetUserByID(ctx, bc.DB, customerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Customer %s not found for booking creation: %v", customerID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "customer account not found"})
		return
	}

	newBooking, err := booking_models.NewBooking(
		customerID, customer.FullName(), customer.Email,
		req.Date, req.Time, req.ServiceName, req.ServicePrice, req.ServiceDuration,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	created, err := booking_models.CreateBooking(ctx, bc.DB, newBooking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	// Denormalized summary, consulted only as the last email-resolution
	// fallback. Best effort.
	summary := &summary_models.BookingSummary{
		BookingID:     created.ID.String(),
		CustomerName:  created.CustomerName,
		CustomerEmail: created.CustomerEmail,
		ServiceName:   created.ServiceName,
		Date:          created.Date,
		Time:          created.Time,
	}
	if err := summary_models.SaveSummary(ctx, summary); err != nil {
		logger.WarnLogger.Warnf("Failed to save summary for booking %s: %v", created.ID, err)
	}

	go bc.Dispatcher.Dispatch(context.Background(), nil, created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking requested successfully!",
		"booking": created,
	})
}

// GetMyBookings returns the caller's bookings partitioned into upcoming and
// past buckets, each sorted newest appointment first.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	bookings, err := booking_models.GetBookingsByCustomer(c.Request.Context(), bc.DB, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	categorized := booking.Categorize(bookings, time.Now())
	booking.SortByInstantDesc(categorized.Upcoming)
	booking.SortByInstantDesc(categorized.Past)

	c.JSON(http.StatusOK, gin.H{
		"upcoming": categorized.Upcoming,
		"past":     categorized.Past,
		"all":      categorized.All,
		"total":    len(categorized.All),
	})
}

// ListBookings returns all bookings for the admin dashboard, optionally
// filtered by status.
func (bc *BookingController) ListBookings(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !isKnownStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	bookings, err := booking_models.GetAllBookings(c.Request.Context(), bc.DB, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

// allowedTransitions maps a current status to the statuses an admin may move
// the booking to.
var allowedTransitions = map[string][]string{
	booking_models.StatusPending:  {booking_models.StatusAccepted, booking_models.StatusRejected, booking_models.StatusCancelled},
	booking_models.StatusAccepted: {booking_models.StatusCompleted, booking_models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func isKnownStatus(status string) bool {
	switch status {
	case booking_models.StatusPending, booking_models.StatusAccepted,
		booking_models.StatusCompleted, booking_models.StatusCancelled,
		booking_models.StatusRejected:
		return true
	}
	return false
}

// UpdateStatus lets an admin accept, reject, complete, or cancel a booking.
// The before/after snapshots go to the dispatcher, which decides whether the
// transition notifies anyone.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if !isKnownStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	ctx := c.Request.Context()
	before, err := booking_models.GetBookingByID(ctx, bc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	if before.Status == req.Status {
		// No transition; nothing to write, nothing to notify.
		c.JSON(http.StatusOK, gin.H{"message": "Status unchanged.", "booking": before})
		return
	}
	if !transitionAllowed(before.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition", "from": before.Status, "to": req.Status})
		return
	}

	after, err := booking_models.UpdateBookingStatus(ctx, bc.DB, bookingID, req.Status, req.AdminNotes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking status"})
		return
	}

	go bc.Dispatcher.Dispatch(context.Background(), before, after)

	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated.", "booking": after})
}

// CancelMyBooking lets a customer cancel their own pending or accepted
// booking. Cancellations do not notify anyone.
func (bc *BookingController) CancelMyBooking(c *gin.Context) {
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
	before, err := booking_models.GetBookingByID(ctx, bc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	if before.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if !transitionAllowed(before.Status, booking_models.StatusCancelled) {
		c.JSON(http.StatusConflict, gin.H{"error": "booking can no longer be cancelled", "status": before.Status})
		return
	}

	after, err := booking_models.UpdateBookingStatus(ctx, bc.DB, bookingID, booking_models.StatusCancelled, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}

	go bc.Dispatcher.Dispatch(context.Background(), before, after)

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled.", "booking": after})
}
