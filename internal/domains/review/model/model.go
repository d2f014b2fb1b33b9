package model

import "frontdesk/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldCustomerID = "customer_id"
	FieldRating     = "rating"
	FieldComment    = "comment"
)

const (
	CacheGetReview    = "review:get"
	CacheGetAllReview = "review:gets"
	CacheCountReview  = "review:count"
)

type Review struct {
	ID         string `db:"id"`
	BookingID  string `db:"booking_id"`
	CustomerID string `db:"customer_id"`
	Rating     int    `db:"rating"`
	Comment    string `db:"comment"`
	model.Metadata
}
