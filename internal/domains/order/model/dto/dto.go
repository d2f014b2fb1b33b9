package dto

import (
	"time"

	"frontdesk/internal/domains/order/model"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

// CreateOrderRequest addresses the stay either by booking id or by room number.
// A room number resolves to the booking currently checked in to that room.
type CreateOrderRequest struct {
	BookingID  string     `json:"booking_id"  validate:"required_without=RoomNumber"`
	RoomNumber string     `json:"room_number" validate:"required_without=BookingID"`
	Kind       string     `json:"kind"        validate:"required,oneof=service reminder"`
	Item       string     `json:"item"        validate:"required,max=150"`
	Quantity   int        `json:"quantity"    validate:"omitempty,min=1"`
	UnitPrice  float64    `json:"unit_price"  validate:"omitempty,min=0"`
	DueAt      *time.Time `json:"due_at"      validate:"required_if=Kind reminder"`
	Notes      string     `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateOrderRequest) ToModel(user, bookingID, roomID, source string) model.Order {
	quantity := c.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return model.Order{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		RoomID:    roomID,
		Kind:      c.Kind,
		Item:      c.Item,
		Quantity:  quantity,
		UnitPrice: c.UnitPrice,
		Status:    model.StatusPending,
		DueAt:     c.DueAt,
		Source:    source,
		Notes:     c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateOrderRequest struct {
	Item      string     `db:"item"       json:"item"       validate:"omitempty,max=150"`
	Quantity  *int       `db:"quantity"   json:"quantity"   validate:"omitempty,min=1"`
	UnitPrice *float64   `db:"unit_price" json:"unit_price" validate:"omitempty,min=0"`
	DueAt     *time.Time `db:"due_at"     json:"due_at"`
	Notes     string     `db:"notes"      json:"notes"      validate:"omitempty,max=500"`
}

type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress done cancelled"`
}

type OrderResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	RoomID    string  `json:"room_id"`
	Kind      string  `json:"kind"`
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
	DueAt     string  `json:"due_at,omitempty"`
	Source    string  `json:"source"`
	Notes     string  `json:"notes"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.Kind = model.Kind
	r.Item = model.Item
	r.Quantity = model.Quantity
	r.UnitPrice = model.UnitPrice
	r.Total = model.Total()
	r.Status = model.Status
	r.Source = model.Source
	r.Notes = model.Notes

	if model.DueAt != nil {
		r.DueAt = timezone.Format(*model.DueAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}

// BotOrderRequest is a service request relayed by the guest messaging bot.
type BotOrderRequest struct {
	RoomNumber string  `json:"room_number" validate:"required,max=20"`
	Item       string  `json:"item"        validate:"required,max=150"`
	Quantity   int     `json:"quantity"    validate:"omitempty,min=1"`
	UnitPrice  float64 `json:"unit_price"  validate:"omitempty,min=0"`
	Notes      string  `json:"notes"       validate:"omitempty,max=500"`
}

func (b BotOrderRequest) ToCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		RoomNumber: b.RoomNumber,
		Kind:       model.KindService,
		Item:       b.Item,
		Quantity:   b.Quantity,
		UnitPrice:  b.UnitPrice,
		Notes:      b.Notes,
	}
}

// BotReminderRequest asks staff to act on a room at DueAt, e.g. a wake-up call.
type BotReminderRequest struct {
	RoomNumber string    `json:"room_number" validate:"required,max=20"`
	Message    string    `json:"message"     validate:"required,max=150"`
	DueAt      time.Time `json:"due_at"      validate:"required"`
	Notes      string    `json:"notes"       validate:"omitempty,max=500"`
}

func (b BotReminderRequest) ToCreateRequest() CreateOrderRequest {
	dueAt := b.DueAt

	return CreateOrderRequest{
		RoomNumber: b.RoomNumber,
		Kind:       model.KindReminder,
		Item:       b.Message,
		DueAt:      &dueAt,
		Notes:      b.Notes,
	}
}
