package timezone_test

import (
	"testing"
	"time"

	"frontdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jakarta(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	return loc
}

func TestSetLocation(t *testing.T) {
	loc := jakarta(t)

	timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(nil) })

	assert.Equal(t, loc, timezone.GetLocation())
	assert.Equal(t, loc, timezone.Now().Location())

	instant := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-11 03:00", timezone.Format(instant, "2006-01-02 15:04"))

	parsed, err := timezone.Parse(time.DateOnly, "2025-01-11")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC)))
}

func TestGetLocation_Default(t *testing.T) {
	timezone.SetLocation(nil)

	assert.NotNil(t, timezone.GetLocation())
	assert.False(t, timezone.Now().IsZero())
}

func TestStartOfDay(t *testing.T) {
	loc := jakarta(t)

	// 2025-01-10T20:00Z is already 2025-01-11 03:00 in Jakarta.
	instant := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	assert.True(t, timezone.StartOfDay(instant, time.UTC).Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, timezone.StartOfDay(instant, loc).Equal(time.Date(2025, 1, 11, 0, 0, 0, 0, loc)))
}

func TestSameDate(t *testing.T) {
	loc := jakarta(t)

	morning := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC)

	assert.True(t, timezone.SameDate(morning, evening, time.UTC))
	assert.False(t, timezone.SameDate(morning, evening, loc))
}
