package summary_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/salon16/booking/config/redis"
	"github.com/salon16/booking/logger"
)

// Booking summaries are a denormalized mirror of a subset of booking fields,
// kept in Redis keyed by booking id. They exist so notification email dispatch
// can still resolve a customer after the booking row or user profile fails to.
const SummaryKeyPrefix = "booking_summary:"

var ErrSummaryNotFound = errors.New("booking summary not found")

type BookingSummary struct {
	BookingID     string `json:"booking_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ServiceName   string `json:"service_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// SaveSummary writes a booking summary to Redis. No TTL: the summary lives as
// long as the booking may still generate notifications.
func SaveSummary(ctx context.Context, summary *BookingSummary) error {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to init redis client: %w", err)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal booking summary: %w", err)
	}

	if err := rdb.Set(ctx, SummaryKeyPrefix+summary.BookingID, data, 0).Err(); err != nil {
		logger.ErrorLogger.Errorf("Failed to store booking summary %s: %v", summary.BookingID, err)
		return fmt.Errorf("failed to store booking summary: %w", err)
	}
	return nil
}

// GetSummary reads the booking summary for a booking id.
func GetSummary(ctx context.Context, bookingID string) (*BookingSummary, error) {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis client: %w", err)
	}

	data, err := rdb.Get(ctx, SummaryKeyPrefix+bookingID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSummaryNotFound
		}
		logger.ErrorLogger.Errorf("Failed to retrieve booking summary %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to retrieve booking summary: %w", err)
	}

	var summary BookingSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking summary: %w", err)
	}
	return &summary, nil
}
