package dto

import (
	"time"

	"frontdesk/internal/domains/payment/model"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	BookingID string     `json:"booking_id" validate:"required"`
	Amount    float64    `json:"amount"     validate:"required,gt=0"`
	Method    string     `json:"method"     validate:"required,oneof=cash card transfer"`
	PaidAt    *time.Time `json:"paid_at"`
	Reference string     `json:"reference"  validate:"omitempty,max=100"`
}

func (c *CreatePaymentRequest) ToModel(user string) model.Payment {
	paidAt := timezone.Now()
	if c.PaidAt != nil {
		paidAt = *c.PaidAt
	}

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		Amount:    c.Amount,
		Method:    c.Method,
		Status:    model.StatusPaid,
		PaidAt:    paidAt,
		Reference: c.Reference,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	PaidAt    string  `json:"paid_at"`
	Reference string  `json:"reference"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Status = model.Status
	r.PaidAt = timezone.Format(model.PaidAt, constant.DateFormat)
	r.Reference = model.Reference
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
