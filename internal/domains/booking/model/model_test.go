package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/booking/model"
)

func TestBooking_Nights(t *testing.T) {
	base := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkout time.Time
		want     int
	}{
		{name: "exact day", checkout: base.Add(24 * time.Hour), want: 1},
		{name: "started second night", checkout: base.Add(25 * time.Hour), want: 2},
		{name: "day use", checkout: base.Add(3 * time.Hour), want: 1},
		{name: "three nights", checkout: base.Add(70 * time.Hour), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{CheckinAt: base, CheckoutAt: tt.checkout}

			assert.Equal(t, tt.want, booking.Nights())
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, model.CanTransition(model.StatusReserved, model.StatusCheckedIn))
	assert.True(t, model.CanTransition(model.StatusReserved, model.StatusCancelled))
	assert.True(t, model.CanTransition(model.StatusCheckedIn, model.StatusCheckedOut))
	assert.True(t, model.CanTransition(model.StatusCheckedIn, model.StatusCancelled))

	assert.False(t, model.CanTransition(model.StatusReserved, model.StatusCheckedOut))
	assert.False(t, model.CanTransition(model.StatusCheckedOut, model.StatusCheckedIn))
	assert.False(t, model.CanTransition(model.StatusCancelled, model.StatusReserved))
	assert.False(t, model.CanTransition(model.StatusCheckedIn, model.StatusCheckedIn))
}

func TestOverlapFilter(t *testing.T) {
	checkin := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		filter := model.OverlapFilter("R1", checkin, checkout, "")
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "bookings.room_id = :room_id")
		assert.Contains(t, where, "bookings.status IN (:status_0, :status_1)")
		assert.Contains(t, where, "bookings.checkin_at < :overlap_checkout")
		assert.Contains(t, where, "bookings.checkout_at > :overlap_checkin")
		assert.NotContains(t, where, "exclude_id")

		assert.Equal(t, "R1", args["room_id"])
		assert.Equal(t, model.StatusReserved, args["status_0"])
		assert.Equal(t, model.StatusCheckedIn, args["status_1"])
		assert.Equal(t, checkout, args["overlap_checkout"])
		assert.Equal(t, checkin, args["overlap_checkin"])
	})

	t.Run("edit excludes itself", func(t *testing.T) {
		filter := model.OverlapFilter("R1", checkin, checkout, "B1")
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "bookings.id != :exclude_id")
		assert.Equal(t, "B1", args["exclude_id"])
	})
}
