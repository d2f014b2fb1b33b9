package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/order/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusInProgress, true},
		{model.StatusPending, model.StatusDone, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusInProgress, model.StatusDone, true},
		{model.StatusInProgress, model.StatusPending, false},
		{model.StatusDone, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestOrder_Total(t *testing.T) {
	assert.InDelta(t, 37.5, model.Order{Quantity: 3, UnitPrice: 12.5}.Total(), 0.001)
}
