package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// DefaultSalonUTCOffsetMinutes is the salon's wall-clock offset from UTC when
// SALON_UTC_OFFSET_MIN is not set (IST, +05:30).
const DefaultSalonUTCOffsetMinutes = 330

// LoadEnv loads a .env file if present. Missing files are not an error so the
// service can run on platform-injected environment variables alone.
func LoadEnv() {
	loadOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// SalonUTCOffsetMinutes reads SALON_UTC_OFFSET_MIN from the environment,
// falling back to the default when unset or malformed.
func SalonUTCOffsetMinutes() int {
	v := os.Getenv("SALON_UTC_OFFSET_MIN")
	if v == "" {
		return DefaultSalonUTCOffsetMinutes
	}
	offset, err := strconv.Atoi(v)
	if err != nil {
		return DefaultSalonUTCOffsetMinutes
	}
	return offset
}

// SalonLocation returns a fixed-offset location representing salon-local time.
// Stored booking date/time strings carry no zone and are interpreted here.
func SalonLocation() *time.Location {
	return time.FixedZone("salon", SalonUTCOffsetMinutes()*60)
}
