package model

import (
	"math"
	"time"

	"frontdesk/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	FieldID          = "id"
	FieldCode        = "code"
	FieldDescription = "description"
	FieldPercentOff  = "percent_off"
	FieldValidFrom   = "valid_from"
	FieldValidUntil  = "valid_until"
	FieldActive      = "active"
)

const (
	CacheGetPromotion    = "promotion:get"
	CacheGetAllPromotion = "promotion:gets"
	CacheCountPromotion  = "promotion:count"
)

type Promotion struct {
	ID          string    `db:"id"`
	Code        string    `db:"code"`
	Description string    `db:"description"`
	PercentOff  int       `db:"percent_off"`
	ValidFrom   time.Time `db:"valid_from"`
	ValidUntil  time.Time `db:"valid_until"`
	Active      bool      `db:"active"`
	model.Metadata
}

// ValidAt reports whether the promotion is active and at falls in [ValidFrom, ValidUntil).
func (p Promotion) ValidAt(at time.Time) bool {
	return p.Active && !at.Before(p.ValidFrom) && at.Before(p.ValidUntil)
}

// Discount returns amount reduced by PercentOff, rounded to cents.
func (p Promotion) Discount(amount float64) float64 {
	discounted := amount * float64(100-p.PercentOff) / 100

	return math.Round(discounted*100) / 100
}
