package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime12Hour(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"00:05": "12:05 AM",
		"09:05": "9:05 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"23:59": "11:59 PM",
	}
	for input, want := range cases {
		assert.Equal(t, want, FormatTime12Hour(input), "input %q", input)
	}
}

func TestFormatTime12HourUnparseableReturnedUnchanged(t *testing.T) {
	assert.Equal(t, "25:99", FormatTime12Hour("25:99"))
	assert.Equal(t, "", FormatTime12Hour(""))
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "Tuesday, March 5, 2024", FormatLongDate("2024-03-05"))

	got := FormatLongDate("2024-01-01")
	assert.Contains(t, got, "Monday")
	assert.Contains(t, got, "January 1, 2024")
}

func TestFormatLongDateUnparseableReturnedUnchanged(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatLongDate("not-a-date"))
}
