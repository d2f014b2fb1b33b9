package model

import (
	"time"

	gDto "frontdesk/shared/dto"
	"frontdesk/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldCustomerID    = "customer_id"
	FieldStatus        = "status"
	FieldCheckinAt     = "checkin_at"
	FieldCheckoutAt    = "checkout_at"
	FieldGuests        = "guests"
	FieldTotalPrice    = "total_price"
	FieldPromotionCode = "promotion_code"
	FieldNotes         = "notes"
)

const (
	StatusReserved   = "reserved"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

type Booking struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	CustomerID    string    `db:"customer_id"`
	Status        string    `db:"status"`
	CheckinAt     time.Time `db:"checkin_at"`
	CheckoutAt    time.Time `db:"checkout_at"`
	Guests        int       `db:"guests"`
	TotalPrice    float64   `db:"total_price"`
	PromotionCode string    `db:"promotion_code"`
	Notes         string    `db:"notes"`
	model.Metadata
}

// Nights is the number of started nights between check-in and check-out, at least one.
func (b Booking) Nights() int {
	hours := b.CheckoutAt.Sub(b.CheckinAt).Hours()

	nights := int(hours / 24)
	if float64(nights*24) < hours {
		nights++
	}

	if nights < 1 {
		nights = 1
	}

	return nights
}

// transitions lists the statuses each status may move to.
var transitions = map[string][]string{
	StatusReserved:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// OverlapFilter matches live bookings of roomID whose stay intersects [checkinAt, checkoutAt).
// excludeID skips the booking being edited; pass "" on create.
func OverlapFilter(roomID string, checkinAt, checkoutAt time.Time, excludeID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    TableName,
			},
			gDto.Filter{
				Field:    FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{StatusReserved, StatusCheckedIn},
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_checkout",
				Field:    FieldCheckinAt,
				Operator: gDto.FilterOperatorLess,
				Value:    checkoutAt,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_checkin",
				Field:    FieldCheckoutAt,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkinAt,
				Table:    TableName,
			},
		},
	}

	if excludeID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    TableName,
		})
	}

	return filter
}
