package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/infras/otel/mocks"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/repository"
	occupancyModel "frontdesk/internal/domains/occupancy/model"
)

const activeBookingQuery = "SELECT EXISTS( SELECT 1 FROM bookings WHERE (bookings.room_id = $1 AND bookings.status = $2 AND " +
	"bookings.checkout_at > $3 AND (bookings.checkin_at <= $4 OR " +
	"(bookings.checkin_at >= $5 AND bookings.checkin_at < $6))) )"

func newBookingRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestBooking_Exist_ActiveBooking(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	window := occupancyModel.WindowAt(time.Date(2025, 1, 10, 23, 30, 0, 0, jakarta), jakarta)

	tests := []struct {
		name     string
		occupied bool
	}{
		{name: "room has a stay", occupied: true},
		{name: "room is free", occupied: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newBookingRepository(t)

			mock.ExpectQuery(regexp.QuoteMeta(activeBookingQuery)).
				WithArgs(
					"R1",
					model.StatusCheckedIn,
					window.Now,
					window.Now,
					time.Date(2025, 1, 10, 0, 0, 0, 0, jakarta),
					time.Date(2025, 1, 11, 0, 0, 0, 0, jakarta),
				).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.occupied))

			occupied, err := repo.Exist(context.Background(), window.ActiveBookingFilter("R1"))

			require.NoError(t, err)
			assert.Equal(t, tt.occupied, occupied)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBooking_Exist_Overlap(t *testing.T) {
	checkin := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

	repo, mock := newBookingRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM bookings WHERE (bookings.room_id = $1 AND "+
		"bookings.status IN ($2, $3) AND bookings.checkin_at < $4 AND bookings.checkout_at > $5 AND bookings.id != $6) )")).
		WithArgs("R1", model.StatusReserved, model.StatusCheckedIn, checkout, checkin, "B1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := repo.Exist(context.Background(), model.OverlapFilter("R1", checkin, checkout, "B1"))

	require.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}
