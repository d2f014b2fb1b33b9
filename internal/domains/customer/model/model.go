package model

import "frontdesk/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID          = "id"
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldNationality = "nationality"
	FieldIDNumber    = "id_number"
)

const (
	CacheGetCustomer    = "customer:get"
	CacheGetAllCustomer = "customer:gets"
	CacheCountCustomer  = "customer:count"
)

type Customer struct {
	ID          string `db:"id"`
	FullName    string `db:"full_name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Nationality string `db:"nationality"`
	IDNumber    string `db:"id_number"`
	model.Metadata
}
