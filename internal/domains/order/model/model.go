package model

import (
	"time"

	"frontdesk/shared/model"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldRoomID    = "room_id"
	FieldKind      = "kind"
	FieldItem      = "item"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
	FieldStatus    = "status"
	FieldDueAt     = "due_at"
	FieldSource    = "source"
	FieldNotes     = "notes"
)

const (
	KindService  = "service"
	KindReminder = "reminder"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

const (
	SourceStaff = "staff"
	SourceBot   = "bot"
)

const (
	CacheGetOrder    = "order:get"
	CacheGetAllOrder = "order:gets"
	CacheCountOrder  = "order:count"
)

type Order struct {
	ID        string     `db:"id"`
	BookingID string     `db:"booking_id"`
	RoomID    string     `db:"room_id"`
	Kind      string     `db:"kind"`
	Item      string     `db:"item"`
	Quantity  int        `db:"quantity"`
	UnitPrice float64    `db:"unit_price"`
	Status    string     `db:"status"`
	DueAt     *time.Time `db:"due_at"`
	Source    string     `db:"source"`
	Notes     string     `db:"notes"`
	model.Metadata
}

func (o Order) Total() float64 {
	return float64(o.Quantity) * o.UnitPrice
}

var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusDone, StatusCancelled},
	StatusInProgress: {StatusDone, StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
