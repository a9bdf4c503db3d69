package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSalonUTCOffsetMinutesDefault(t *testing.T) {
	t.Setenv("SALON_UTC_OFFSET_MIN", "")
	assert.Equal(t, DefaultSalonUTCOffsetMinutes, SalonUTCOffsetMinutes())

	t.Setenv("SALON_UTC_OFFSET_MIN", "not-a-number")
	assert.Equal(t, DefaultSalonUTCOffsetMinutes, SalonUTCOffsetMinutes())
}

func TestSalonUTCOffsetMinutesFromEnv(t *testing.T) {
	t.Setenv("SALON_UTC_OFFSET_MIN", "-300")
	assert.Equal(t, -300, SalonUTCOffsetMinutes())
}

func TestSalonLocationOffset(t *testing.T) {
	t.Setenv("SALON_UTC_OFFSET_MIN", "330")

	loc := SalonLocation()
	instant := time.Date(2024, 3, 5, 13, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-05T08:00:00Z", instant.UTC().Format(time.RFC3339))
}
