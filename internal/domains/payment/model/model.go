package model

import (
	"time"

	"frontdesk/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldPaidAt    = "paid_at"
	FieldReference = "reference"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

const (
	StatusPaid     = "paid"
	StatusRefunded = "refunded"
)

const (
	CacheGetPayment    = "payment:get"
	CacheGetAllPayment = "payment:gets"
	CacheCountPayment  = "payment:count"
)

type Payment struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Amount    float64   `db:"amount"`
	Method    string    `db:"method"`
	Status    string    `db:"status"`
	PaidAt    time.Time `db:"paid_at"`
	Reference string    `db:"reference"`
	model.Metadata
}
