package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	orderMocks "frontdesk/internal/domains/order/service/mocks"
	"frontdesk/internal/handlers/webhook"
	"frontdesk/shared/failure"
)

func setup(t *testing.T) (*orderMocks.MockOrder, http.Handler) {
	ctrl := gomock.NewController(t)
	orders := orderMocks.NewMockOrder(ctrl)

	handler := webhook.New(orders, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return orders, router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	router.ServeHTTP(rec, req)

	return rec
}

func TestWebhook_CreateOrder(t *testing.T) {
	t.Run("relays service request by room number", func(t *testing.T) {
		orders, router := setup(t)

		orders.EXPECT().
			Create(gomock.Any(), gomock.Any(), model.SourceBot).
			DoAndReturn(func(_ context.Context, req dto.CreateOrderRequest, _ string) (string, error) {
				assert.Equal(t, "101", req.RoomNumber)
				assert.Equal(t, model.KindService, req.Kind)
				assert.Equal(t, "Extra towels", req.Item)
				assert.Empty(t, req.BookingID)

				return "order-1", nil
			})

		rec := post(router, "/webhooks/orders", `{"room_number":"101","item":"Extra towels","quantity":2}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "order-1", body.Data.ID)
	})

	t.Run("missing room number", func(t *testing.T) {
		_, router := setup(t)

		rec := post(router, "/webhooks/orders", `{"item":"Extra towels"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("room without checked in guest", func(t *testing.T) {
		orders, router := setup(t)

		orders.EXPECT().
			Create(gomock.Any(), gomock.Any(), model.SourceBot).
			Return("", failure.NotFound("no guest is checked in to room 101"))

		rec := post(router, "/webhooks/orders", `{"room_number":"101","item":"Extra towels"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWebhook_CreateReminder(t *testing.T) {
	t.Run("relays reminder", func(t *testing.T) {
		orders, router := setup(t)

		orders.EXPECT().
			Create(gomock.Any(), gomock.Any(), model.SourceBot).
			DoAndReturn(func(_ context.Context, req dto.CreateOrderRequest, _ string) (string, error) {
				assert.Equal(t, model.KindReminder, req.Kind)
				assert.Equal(t, "Wake-up call", req.Item)
				require.NotNil(t, req.DueAt)
				assert.Equal(t, 6, req.DueAt.UTC().Hour())

				return "reminder-1", nil
			})

		rec := post(router, "/webhooks/reminders", `{"room_number":"204","message":"Wake-up call","due_at":"2026-10-19T06:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("due time required", func(t *testing.T) {
		_, router := setup(t)

		rec := post(router, "/webhooks/reminders", `{"room_number":"204","message":"Wake-up call"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
