package dto

import (
	"strings"

	"frontdesk/internal/domains/customer/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FullName    string `json:"full_name"   validate:"required,max=150"`
	Email       string `json:"email"       validate:"required,email,max=150"`
	Phone       string `json:"phone"       validate:"omitempty,max=30"`
	Nationality string `json:"nationality" validate:"omitempty,max=60"`
	IDNumber    string `json:"id_number"   validate:"omitempty,max=60"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:          uuid.NewString(),
		FullName:    strings.TrimSpace(c.FullName),
		Email:       strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:       c.Phone,
		Nationality: c.Nationality,
		IDNumber:    c.IDNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	FullName    string `db:"full_name"   json:"full_name"   validate:"omitempty,max=150"`
	Email       string `db:"email"       json:"email"       validate:"omitempty,email,max=150"`
	Phone       string `db:"phone"       json:"phone"       validate:"omitempty,max=30"`
	Nationality string `db:"nationality" json:"nationality" validate:"omitempty,max=60"`
	IDNumber    string `db:"id_number"   json:"id_number"   validate:"omitempty,max=60"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
	IDNumber    string `json:"id_number"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Nationality = model.Nationality
	r.IDNumber = model.IDNumber
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
