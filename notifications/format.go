package notifications

import (
	"time"

	"github.com/salon16/booking/config"
)

// FormatTime12Hour converts a stored "HH:MM" 24-hour time into the 12-hour
// form shown in customer emails, e.g. "00:05" -> "12:05 AM", "13:30" -> "1:30 PM".
// Unparseable input is returned unchanged.
func FormatTime12Hour(timeOfDay string) string {
	t, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return timeOfDay
	}
	return t.Format("3:04 PM")
}

// FormatLongDate converts a stored "YYYY-MM-DD" date into its long form,
// e.g. "2024-03-05" -> "Tuesday, March 5, 2024". The date is parsed as a
// salon-local midnight instant so a UTC container clock cannot shift the
// weekday. Unparseable input is returned unchanged.
func FormatLongDate(date string) string {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", date+"T00:00:00", config.SalonLocation())
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
