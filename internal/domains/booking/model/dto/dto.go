package dto

import (
	"strings"
	"time"

	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID        string    `json:"room_id"        validate:"required"`
	CustomerID    string    `json:"customer_id"    validate:"required"`
	CheckinAt     time.Time `json:"checkin_at"     validate:"required"`
	CheckoutAt    time.Time `json:"checkout_at"    validate:"required,gtfield=CheckinAt"`
	Guests        int       `json:"guests"         validate:"required,min=1"`
	PromotionCode string    `json:"promotion_code" validate:"omitempty,max=32"`
	Notes         string    `json:"notes"          validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(user string, totalPrice float64) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		CustomerID:    c.CustomerID,
		Status:        model.StatusReserved,
		CheckinAt:     c.CheckinAt,
		CheckoutAt:    c.CheckoutAt,
		Guests:        c.Guests,
		TotalPrice:    totalPrice,
		PromotionCode: strings.ToUpper(strings.TrimSpace(c.PromotionCode)),
		Notes:         c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest changes a booking in place. Dates may only move while the booking is reserved.
type UpdateBookingRequest struct {
	CheckinAt  *time.Time `db:"checkin_at"  json:"checkin_at"`
	CheckoutAt *time.Time `db:"checkout_at" json:"checkout_at"`
	Guests     *int       `db:"guests"      json:"guests"      validate:"omitempty,min=1"`
	Notes      string     `db:"notes"       json:"notes"       validate:"omitempty,max=500"`
}

func (u *UpdateBookingRequest) MovesDates() bool {
	return u.CheckinAt != nil || u.CheckoutAt != nil
}

type BookingResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	CustomerID    string  `json:"customer_id"`
	Status        string  `json:"status"`
	CheckinAt     string  `json:"checkin_at"`
	CheckoutAt    string  `json:"checkout_at"`
	Nights        int     `json:"nights"`
	Guests        int     `json:"guests"`
	TotalPrice    float64 `json:"total_price"`
	PromotionCode string  `json:"promotion_code,omitempty"`
	Notes         string  `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.Status = model.Status
	r.CheckinAt = timezone.Format(model.CheckinAt, constant.DateFormat)
	r.CheckoutAt = timezone.Format(model.CheckoutAt, constant.DateFormat)
	r.Nights = model.Nights()
	r.Guests = model.Guests
	r.TotalPrice = model.TotalPrice
	r.PromotionCode = model.PromotionCode
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
