package jobs_test

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	kafkaMocks "frontdesk/infras/kafka/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	orderMocks "frontdesk/internal/domains/order/service/mocks"
	"frontdesk/jobs"
	"frontdesk/shared/constant"
)

func newConsumer(t *testing.T) (*jobs.BotOrderConsumer, *orderMocks.MockOrder, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	orders := orderMocks.NewMockOrder(ctrl)
	events := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BotOrders = "frontdesk.bot-orders"

	return jobs.NewBotOrderConsumer(cfg, events, orders, mocks.NewOtel()), orders, events
}

func TestBotOrderConsumer_Handle(t *testing.T) {
	t.Run("service order", func(t *testing.T) {
		consumer, orders, _ := newConsumer(t)

		orders.EXPECT().
			Create(gomock.Any(), gomock.Any(), model.SourceBot).
			DoAndReturn(func(ctx context.Context, req dto.CreateOrderRequest, _ string) (string, error) {
				assert.Equal(t, constant.ContextBot, ctx.Value(constant.ContextKeyUserID))
				assert.Equal(t, "101", req.RoomNumber)
				assert.Equal(t, model.KindService, req.Kind)
				assert.Equal(t, "Towels", req.Item)

				return "O1", nil
			})

		err := consumer.Handle(context.Background(), kafka.Message{
			Value: []byte(`{"room_number":"101","item":"Towels","quantity":2}`),
		})

		assert.NoError(t, err)
	})

	t.Run("reminder", func(t *testing.T) {
		consumer, orders, _ := newConsumer(t)

		orders.EXPECT().
			Create(gomock.Any(), gomock.Any(), model.SourceBot).
			DoAndReturn(func(_ context.Context, req dto.CreateOrderRequest, _ string) (string, error) {
				assert.Equal(t, model.KindReminder, req.Kind)
				assert.NotNil(t, req.DueAt)

				return "O2", nil
			})

		err := consumer.Handle(context.Background(), kafka.Message{
			Headers: []kafka.Header{{Key: jobs.HeaderKind, Value: []byte(model.KindReminder)}},
			Value:   []byte(`{"room_number":"101","message":"Wake-up call","due_at":"2025-01-11T06:30:00Z"}`),
		})

		assert.NoError(t, err)
	})

	t.Run("invalid payload never reaches the service", func(t *testing.T) {
		consumer, _, _ := newConsumer(t)

		err := consumer.Handle(context.Background(), kafka.Message{Value: []byte(`{"item":"Towels"}`)})

		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		consumer, _, _ := newConsumer(t)

		err := consumer.Handle(context.Background(), kafka.Message{
			Headers: []kafka.Header{{Key: jobs.HeaderKind, Value: []byte("laundry")}},
			Value:   []byte(`{}`),
		})

		assert.ErrorContains(t, err, "laundry")
	})
}

func TestBotOrderConsumer_Run(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		consumer, _, events := newConsumer(t)

		events.EXPECT().Enabled().Return(false)

		consumer.Run(context.Background())
	})

	t.Run("consumes configured topic", func(t *testing.T) {
		consumer, _, events := newConsumer(t)

		events.EXPECT().Enabled().Return(true)
		events.EXPECT().Consume(gomock.Any(), "frontdesk.bot-orders", gomock.Any())

		consumer.Run(context.Background())
	})
}
