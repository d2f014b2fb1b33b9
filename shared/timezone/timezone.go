package timezone

import (
	"sync"
	"sync/atomic"
	"time"

	"frontdesk/config"

	"github.com/rs/zerolog/log"
)

var (
	override atomic.Pointer[time.Location]
	fromEnv  = sync.OnceValue(load)
)

// load resolves APP_TIMEZONE once. Unknown names fall back to UTC.
func load() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone loaded")

	return loc
}

// SetLocation pins the application timezone, replacing the configured one. Nil restores it.
func SetLocation(loc *time.Location) {
	override.Store(loc)
}

// GetLocation returns the application timezone.
func GetLocation() *time.Location {
	if loc := override.Load(); loc != nil {
		return loc
	}

	return fromEnv()
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay returns midnight of the calendar date t falls on in loc, or in the application timezone when loc is nil.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = GetLocation()
	}

	year, month, day := t.In(loc).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}
