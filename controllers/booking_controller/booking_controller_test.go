package booking_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/booking_models"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestTransitionAllowed(t *testing.T) {
	allowed := [][2]string{
		{booking_models.StatusPending, booking_models.StatusAccepted},
		{booking_models.StatusPending, booking_models.StatusRejected},
		{booking_models.StatusPending, booking_models.StatusCancelled},
		{booking_models.StatusAccepted, booking_models.StatusCompleted},
		{booking_models.StatusAccepted, booking_models.StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, transitionAllowed(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	denied := [][2]string{
		{booking_models.StatusPending, booking_models.StatusCompleted},
		{booking_models.StatusAccepted, booking_models.StatusRejected},
		{booking_models.StatusCompleted, booking_models.StatusCancelled},
		{booking_models.StatusCancelled, booking_models.StatusAccepted},
		{booking_models.StatusRejected, booking_models.StatusAccepted},
		{booking_models.StatusAccepted, booking_models.StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, transitionAllowed(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "completed", "cancelled", "rejected"} {
		assert.True(t, isKnownStatus(s), s)
	}
	assert.False(t, isKnownStatus("confirmed"))
	assert.False(t, isKnownStatus(""))
}

func TestCreateBookingRejectsMalformedRequest(t *testing.T) {
	r := gin.New()
	controller := NewBookingController(nil, nil)
	r.POST("/bookings", controller.CreateBooking)

	cases := []map[string]interface{}{
		{},
		{"date": "03/05/2024", "time": "13:30", "service_name": "Haircut", "service_price": 500, "service_duration": 30},
		{"date": "2024-03-05", "time": "1:30 PM", "service_name": "Haircut", "service_price": 500, "service_duration": 30},
		{"date": "2024-03-05", "time": "13:30", "service_name": "Haircut", "service_price": -1, "service_duration": 30},
	}

	for _, payload := range cases {
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %v", payload)
	}
}

func TestCreateBookingRequiresAuthenticatedUser(t *testing.T) {
	r := gin.New()
	controller := NewBookingController(nil, nil)
	// No auth middleware: the handler must reject on the missing user id
	// before touching any dependency.
	r.POST("/bookings", controller.CreateBooking)

	payload := map[string]interface{}{
		"date":             "2024-03-05",
		"time":             "13:30",
		"service_name":     "Haircut",
		"service_price":    500.0,
		"service_duration": 30,
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/bookings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStatusRejectsInvalidBookingID(t *testing.T) {
	r := gin.New()
	controller := NewBookingController(nil, nil)
	r.PATCH("/bookings/:id/status", controller.UpdateStatus)

	body, _ := json.Marshal(map[string]string{"status": "accepted"})
	req, _ := http.NewRequest("PATCH", "/bookings/not-a-uuid/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookingsRejectsUnknownStatusFilter(t *testing.T) {
	r := gin.New()
	controller := NewBookingController(nil, nil)
	r.GET("/bookings", controller.ListBookings)

	req, _ := http.NewRequest("GET", "/bookings?status=confirmed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
