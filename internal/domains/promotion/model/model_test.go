package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/promotion/model"
)

func TestPromotion_ValidAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	promo := model.Promotion{Active: true, ValidFrom: from, ValidUntil: until}

	assert.True(t, promo.ValidAt(from))
	assert.True(t, promo.ValidAt(until.Add(-time.Second)))
	assert.False(t, promo.ValidAt(until))
	assert.False(t, promo.ValidAt(from.Add(-time.Second)))

	promo.Active = false
	assert.False(t, promo.ValidAt(from))
}

func TestPromotion_Discount(t *testing.T) {
	assert.InDelta(t, 90.0, model.Promotion{PercentOff: 10}.Discount(100), 0.001)
	assert.InDelta(t, 0.0, model.Promotion{PercentOff: 100}.Discount(250), 0.001)
	assert.InDelta(t, 66.67, model.Promotion{PercentOff: 33}.Discount(99.5), 0.001)
}
