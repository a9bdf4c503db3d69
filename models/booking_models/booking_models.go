package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salon16/booking/logger"
)

// Booking statuses. A booking is created pending; an admin moves it to
// accepted or rejected; accepted bookings end up completed or cancelled.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

var ErrBookingNotFound = errors.New("booking not found")

// Booking represents a customer's salon appointment.
type Booking struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email,omitempty"`
	Date            string    `json:"date"` // YYYY-MM-DD, salon-local
	Time            string    `json:"time"` // HH:MM, 24-hour, salon-local
	Status          string    `json:"status"`
	ServiceName     string    `json:"service_name"`
	ServicePrice    float64   `json:"service_price"`
	ServiceDuration int       `json:"service_duration"`
	AdminNotes      *string   `json:"admin_notes,omitempty"`
	DepositOrderID  *string   `json:"deposit_order_id,omitempty"`
	DepositPaid     bool      `json:"deposit_paid"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewBooking builds a pending booking for a customer.
func NewBooking(customerID uuid.UUID, customerName, customerEmail, date, bookingTime, serviceName string, servicePrice float64, serviceDuration int) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	now := time.Now()
	return &Booking{
		ID:              id,
		CustomerID:      customerID,
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		Date:            date,
		Time:            bookingTime,
		Status:          StatusPending,
		ServiceName:     serviceName,
		ServicePrice:    servicePrice,
		ServiceDuration: serviceDuration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

const bookingColumns = `
	id, customer_id, customer_name, customer_email, date, time, status,
	service_name, service_price, service_duration, admin_notes,
	deposit_order_id, deposit_paid, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.Date, &b.Time,
		&b.Status, &b.ServiceName, &b.ServicePrice, &b.ServiceDuration,
		&b.AdminNotes, &b.DepositOrderID, &b.DepositPaid, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// CreateBooking inserts a new booking record into the database.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Attempting to create booking for customer %s on %s %s", booking.CustomerID, booking.Date, booking.Time)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
		INSERT INTO bookings (
			id, customer_id, customer_name, customer_email, date, time, status,
			service_name, service_price, service_duration, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		booking.ID, booking.CustomerID, booking.CustomerName, booking.CustomerEmail,
		booking.Date, booking.Time, booking.Status,
		booking.ServiceName, booking.ServicePrice, booking.ServiceDuration,
		booking.CreatedAt, booking.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for customer %s: %v", booking.CustomerID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = insertedID
	logger.InfoLogger.Infof("Booking %s created successfully", booking.ID)
	return booking, nil
}

// GetBookingByID fetches a single booking.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(db.QueryRow(ctx, query, bookingID))
}

// GetBookingsByCustomer returns every booking belonging to a customer, newest
// appointment first.
func GetBookingsByCustomer(ctx context.Context, db *pgxpool.Pool, customerID uuid.UUID) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY date DESC, time DESC`

	rows, err := db.Query(ctx, query, customerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to query bookings for customer %s: %v", customerID, err)
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// GetAllBookings returns all bookings, optionally filtered by status.
func GetAllBookings(ctx context.Context, db *pgxpool.Pool, status string) ([]Booking, error) {
	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY date DESC, time DESC`, status)
	} else {
		rows, err = db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY date DESC, time DESC`)
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to query bookings: %v", err)
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking rows: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus updates the status (and optionally admin notes) of a
// booking and returns the updated record.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string, adminNotes *string) (*Booking, error) {
	logger.InfoLogger.Infof("Updating status for booking %s to %s", bookingID, status)

	query := `
		UPDATE bookings
		SET status = $2, admin_notes = COALESCE($3, admin_notes), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns

	b, err := scanBooking(db.QueryRow(ctx, query, bookingID, status, adminNotes))
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s status updated to %s", bookingID, status)
	return b, nil
}

// SetDepositOrder records the payment gateway order id created for a booking's
// deposit.
func SetDepositOrder(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, orderID string) error {
	cmdTag, err := db.Exec(ctx,
		`UPDATE bookings SET deposit_order_id = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, orderID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to set deposit order for booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to set deposit order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkDepositPaid flags a booking's deposit as paid, looked up by gateway
// order id since that is all the webhook carries.
func MarkDepositPaid(ctx context.Context, db *pgxpool.Pool, orderID string) error {
	cmdTag, err := db.Exec(ctx,
		`UPDATE bookings SET deposit_paid = TRUE, updated_at = NOW() WHERE deposit_order_id = $1`,
		orderID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark deposit paid for order %s: %v", orderID, err)
		return fmt.Errorf("failed to mark deposit paid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	logger.InfoLogger.Infof("Deposit marked paid for order %s", orderID)
	return nil
}
