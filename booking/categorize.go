// Package booking holds the pure booking-domain logic: combining stored
// date/time strings into instants and partitioning bookings into the
// upcoming/past buckets the client screens display.
package booking

import (
	"sort"
	"time"

	"github.com/salon16/booking/config"
	"github.com/salon16/booking/models/booking_models"
)

// instantLayout parses the concatenated "YYYY-MM-DDTHH:MM" form of a
// booking's stored date and time fields.
const instantLayout = "2006-01-02T15:04"

// Categorized is the result of partitioning a booking list.
// All echoes the original input so callers can show total counts.
type Categorized struct {
	Upcoming []booking_models.Booking `json:"upcoming"`
	Past     []booking_models.Booking `json:"past"`
	All      []booking_models.Booking `json:"all"`
}

// Instant combines a booking's date and time strings into a single
// salon-local instant. Stored strings carry no zone.
func Instant(date, timeOfDay string) (time.Time, bool) {
	if date == "" || timeOfDay == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(instantLayout, date+"T"+timeOfDay, config.SalonLocation())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func isLiveStatus(status string) bool {
	return status == booking_models.StatusPending || status == booking_models.StatusAccepted
}

func isTerminalStatus(status string) bool {
	switch status {
	case booking_models.StatusCompleted, booking_models.StatusCancelled, booking_models.StatusRejected:
		return true
	}
	return false
}

// Categorize partitions bookings into upcoming and past buckets against now.
//
// A booking is upcoming iff its instant is at or after now AND its status is
// still live (pending or accepted). It is past iff its instant is before now
// OR its status is terminal; the inclusive-OR is deliberate, so a
// future-dated cancelled booking is past. Bookings whose date or time is
// missing or unparseable land in neither bucket. The input is not mutated
// and no ordering is imposed within a bucket.
func Categorize(bookings []booking_models.Booking, now time.Time) Categorized {
	result := Categorized{
		Upcoming: []booking_models.Booking{},
		Past:     []booking_models.Booking{},
		All:      bookings,
	}

	for _, b := range bookings {
		instant, ok := Instant(b.Date, b.Time)
		if !ok {
			continue
		}

		if !instant.Before(now) && isLiveStatus(b.Status) {
			result.Upcoming = append(result.Upcoming, b)
		}
		if instant.Before(now) || isTerminalStatus(b.Status) {
			result.Past = append(result.Past, b)
		}
	}

	return result
}

// SortByInstantDesc orders bookings newest appointment first. Unparseable
// entries sink to the end. Categorize leaves bucket order unspecified, so
// display layers sort explicitly.
func SortByInstantDesc(bookings []booking_models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ti, oki := Instant(bookings[i].Date, bookings[i].Time)
		tj, okj := Instant(bookings[j].Date, bookings[j].Time)
		if !oki {
			return false
		}
		if !okj {
			return true
		}
		return ti.After(tj)
	})
}
