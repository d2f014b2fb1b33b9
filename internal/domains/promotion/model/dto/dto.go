package dto

import (
	"strings"
	"time"

	"frontdesk/internal/domains/promotion/model"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreatePromotionRequest struct {
	Code        string    `json:"code"        validate:"required,alphanum,max=32"`
	Description string    `json:"description" validate:"omitempty,max=255"`
	PercentOff  int       `json:"percent_off" validate:"required,min=1,max=100"`
	ValidFrom   time.Time `json:"valid_from"  validate:"required"`
	ValidUntil  time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	Active      *bool     `json:"active"`
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *CreatePromotionRequest) ToModel(user string) model.Promotion {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Promotion{
		ID:          uuid.NewString(),
		Code:        NormalizeCode(c.Code),
		Description: c.Description,
		PercentOff:  c.PercentOff,
		ValidFrom:   c.ValidFrom,
		ValidUntil:  c.ValidUntil,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePromotionRequest struct {
	Description string     `db:"description" json:"description" validate:"omitempty,max=255"`
	PercentOff  *int       `db:"percent_off" json:"percent_off" validate:"omitempty,min=1,max=100"`
	ValidFrom   *time.Time `db:"valid_from"  json:"valid_from"`
	ValidUntil  *time.Time `db:"valid_until" json:"valid_until"`
	Active      *bool      `db:"active"      json:"active"`
}

type ApplyPromotionRequest struct {
	Code   string  `json:"code"   validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ApplyPromotionResponse struct {
	Code       string  `json:"code"`
	Amount     float64 `json:"amount"`
	Discounted float64 `json:"discounted"`
}

type PromotionResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	PercentOff  int    `json:"percent_off"`
	ValidFrom   string `json:"valid_from"`
	ValidUntil  string `json:"valid_until"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *PromotionResponse) FromModel(model model.Promotion) {
	r.ID = model.ID
	r.Code = model.Code
	r.Description = model.Description
	r.PercentOff = model.PercentOff
	r.ValidFrom = timezone.Format(model.ValidFrom, constant.DateFormat)
	r.ValidUntil = timezone.Format(model.ValidUntil, constant.DateFormat)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, mod := range models {
		r.Promotions[i].FromModel(mod)
	}
}
