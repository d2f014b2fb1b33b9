// Package model holds the occupancy predicate: whether a checked-in booking
// occupies a room at a given instant.
package model

import (
	"time"

	bookingModel "frontdesk/internal/domains/booking/model"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/timezone"
)

// Outcome tags what a reconciliation did to a room.
type Outcome string

const (
	OutcomeNotFound    Outcome = "not_found"
	OutcomeMaintenance Outcome = "maintenance"
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeUpdated     Outcome = "updated"
)

func (o Outcome) String() string {
	return string(o)
}

// StatusChanged is published whenever reconciliation rewrites a room status.
type StatusChanged struct {
	RoomID    string    `json:"room_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

const (
	argNowCheckin  = "now_checkin"
	argNowCheckout = "now_checkout"
	argDayStart    = "day_start"
	argDayEnd      = "day_end"
)

// Window is an evaluation instant together with its calendar day [DayStart, DayEnd).
type Window struct {
	Now      time.Time
	DayStart time.Time
	DayEnd   time.Time
}

// WindowAt builds the window for now, taking the calendar day in loc.
// A nil loc uses the application timezone.
func WindowAt(now time.Time, loc *time.Location) Window {
	dayStart := timezone.StartOfDay(now, loc)

	return Window{
		Now:      now,
		DayStart: dayStart,
		DayEnd:   dayStart.AddDate(0, 0, 1),
	}
}

// Covers reports whether booking occupies its room inside the window.
// A checked-in booking counts while now is before checkout_at and either
// checkin_at has passed or it checks in on the window's calendar day.
// The same-day rule relaxes only the start bound; checkout stays exclusive.
func (w Window) Covers(booking bookingModel.Booking) bool {
	if booking.Status != bookingModel.StatusCheckedIn {
		return false
	}

	if !booking.CheckoutAt.After(w.Now) {
		return false
	}

	started := !booking.CheckinAt.After(w.Now)
	sameDay := !booking.CheckinAt.Before(w.DayStart) && booking.CheckinAt.Before(w.DayEnd)

	return started || sameDay
}

// Occupied reports whether any booking of roomID covers the window.
func Occupied(bookings []bookingModel.Booking, roomID string, window Window) bool {
	for _, booking := range bookings {
		if booking.RoomID == roomID && window.Covers(booking) {
			return true
		}
	}

	return false
}

// ActiveBookingFilter renders the Covers predicate for roomID as a where clause.
func (w Window) ActiveBookingFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingModel.StatusCheckedIn,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  argNowCheckout,
				Field:    bookingModel.FieldCheckoutAt,
				Operator: gDto.FilterOperatorGreater,
				Value:    w.Now,
				Table:    bookingModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  argNowCheckin,
						Field:    bookingModel.FieldCheckinAt,
						Operator: gDto.FilterOperatorLessEq,
						Value:    w.Now,
						Table:    bookingModel.TableName,
					},
					gDto.FilterGroup{
						Operator: gDto.FilterGroupOperatorAnd,
						Filters: []any{
							gDto.Filter{
								ArgName:  argDayStart,
								Field:    bookingModel.FieldCheckinAt,
								Operator: gDto.FilterOperatorGreaterEq,
								Value:    w.DayStart,
								Table:    bookingModel.TableName,
							},
							gDto.Filter{
								ArgName:  argDayEnd,
								Field:    bookingModel.FieldCheckinAt,
								Operator: gDto.FilterOperatorLess,
								Value:    w.DayEnd,
								Table:    bookingModel.TableName,
							},
						},
					},
				},
			},
		},
	}
}
