package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon16/booking/config"
	"github.com/salon16/booking/models/booking_models"
)

func makeBooking(t *testing.T, date, timeOfDay, status string) booking_models.Booking {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return booking_models.Booking{
		ID:          id,
		Date:        date,
		Time:        timeOfDay,
		Status:      status,
		ServiceName: "Haircut",
	}
}

// dateTimeAt formats an instant into the stored salon-local date/time strings.
func dateTimeAt(instant time.Time) (string, string) {
	local := instant.In(config.SalonLocation())
	return local.Format("2006-01-02"), local.Format("15:04")
}

func TestCategorizeFutureLiveBookingsAreUpcoming(t *testing.T) {
	now := time.Now()
	futureDate, futureTime := dateTimeAt(now.Add(48 * time.Hour))

	for _, status := range []string{booking_models.StatusPending, booking_models.StatusAccepted} {
		b := makeBooking(t, futureDate, futureTime, status)
		result := Categorize([]booking_models.Booking{b}, now)

		assert.Len(t, result.Upcoming, 1, "status %s", status)
		assert.Empty(t, result.Past, "status %s", status)
		assert.Equal(t, b.ID, result.Upcoming[0].ID)
	}
}

func TestCategorizePastTerminalBookingsArePastOnly(t *testing.T) {
	now := time.Now()
	pastDate, pastTime := dateTimeAt(now.Add(-48 * time.Hour))

	for _, status := range []string{booking_models.StatusCompleted, booking_models.StatusCancelled, booking_models.StatusRejected} {
		b := makeBooking(t, pastDate, pastTime, status)
		result := Categorize([]booking_models.Booking{b}, now)

		assert.Empty(t, result.Upcoming, "status %s", status)
		assert.Len(t, result.Past, 1, "status %s", status)
	}
}

func TestCategorizeFutureCancelledBookingIsPast(t *testing.T) {
	// The status clause of the past rule is an inclusive-OR against the time
	// clause: cancelling a future booking moves it to past immediately.
	now := time.Now()
	futureDate, futureTime := dateTimeAt(now.Add(24 * time.Hour))

	b := makeBooking(t, futureDate, futureTime, booking_models.StatusCancelled)
	result := Categorize([]booking_models.Booking{b}, now)

	assert.Empty(t, result.Upcoming)
	assert.Len(t, result.Past, 1)
}

func TestCategorizePastPendingBookingIsPastNotUpcoming(t *testing.T) {
	now := time.Now()
	pastDate, pastTime := dateTimeAt(now.Add(-time.Hour))

	b := makeBooking(t, pastDate, pastTime, booking_models.StatusPending)
	result := Categorize([]booking_models.Booking{b}, now)

	assert.Empty(t, result.Upcoming)
	assert.Len(t, result.Past, 1)
}

func TestCategorizeBoundaryInstantIsUpcoming(t *testing.T) {
	// A booking exactly at now counts as upcoming when its status is live.
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, config.SalonLocation())
	date, timeOfDay := dateTimeAt(now)

	b := makeBooking(t, date, timeOfDay, booking_models.StatusAccepted)
	result := Categorize([]booking_models.Booking{b}, now)

	assert.Len(t, result.Upcoming, 1)
	assert.Empty(t, result.Past)
}

func TestCategorizeMissingOrMalformedDateTimeExcluded(t *testing.T) {
	now := time.Now()
	cases := []booking_models.Booking{
		makeBooking(t, "", "10:00", booking_models.StatusPending),
		makeBooking(t, "2024-06-01", "", booking_models.StatusPending),
		makeBooking(t, "not-a-date", "10:00", booking_models.StatusPending),
		makeBooking(t, "2024-06-01", "25:99", booking_models.StatusAccepted),
	}

	assert.NotPanics(t, func() {
		result := Categorize(cases, now)
		assert.Empty(t, result.Upcoming)
		assert.Empty(t, result.Past)
		assert.Len(t, result.All, len(cases))
	})
}

func TestCategorizeEmptyInput(t *testing.T) {
	result := Categorize(nil, time.Now())
	assert.Empty(t, result.Upcoming)
	assert.Empty(t, result.Past)
	assert.Empty(t, result.All)
}

func TestCategorizeAllEchoesInput(t *testing.T) {
	now := time.Now()
	futureDate, futureTime := dateTimeAt(now.Add(time.Hour))
	pastDate, pastTime := dateTimeAt(now.Add(-time.Hour))

	input := []booking_models.Booking{
		makeBooking(t, futureDate, futureTime, booking_models.StatusPending),
		makeBooking(t, pastDate, pastTime, booking_models.StatusCompleted),
		makeBooking(t, "", "", booking_models.StatusPending),
	}

	result := Categorize(input, now)

	assert.Len(t, result.All, len(input))
	assert.GreaterOrEqual(t, len(result.All), len(result.Upcoming))
	assert.GreaterOrEqual(t, len(result.All), len(result.Past))
	for i := range input {
		assert.Equal(t, input[i].ID, result.All[i].ID)
	}
}

func TestCategorizeDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	futureDate, futureTime := dateTimeAt(now.Add(time.Hour))

	input := []booking_models.Booking{
		makeBooking(t, futureDate, futureTime, booking_models.StatusPending),
	}
	original := input[0]

	_ = Categorize(input, now)

	assert.Equal(t, original, input[0])
}

func TestSortByInstantDesc(t *testing.T) {
	now := time.Now()
	d1, t1 := dateTimeAt(now.Add(1 * time.Hour))
	d2, t2 := dateTimeAt(now.Add(72 * time.Hour))
	d3, t3 := dateTimeAt(now.Add(-24 * time.Hour))

	bookings := []booking_models.Booking{
		makeBooking(t, d1, t1, booking_models.StatusPending),
		makeBooking(t, d2, t2, booking_models.StatusPending),
		makeBooking(t, "", "", booking_models.StatusPending),
		makeBooking(t, d3, t3, booking_models.StatusPending),
	}

	SortByInstantDesc(bookings)

	assert.Equal(t, d2, bookings[0].Date)
	assert.Equal(t, d1, bookings[1].Date)
	assert.Equal(t, d3, bookings[2].Date)
	// Unparseable entries sink to the end.
	assert.Empty(t, bookings[3].Date)
}

func TestInstantParsesSalonLocalTime(t *testing.T) {
	instant, ok := Instant("2024-03-05", "13:30")
	require.True(t, ok)

	local := instant.In(config.SalonLocation())
	assert.Equal(t, 13, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.Equal(t, time.March, local.Month())
}
