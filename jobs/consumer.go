package jobs

import (
	"bytes"
	"context"
	"fmt"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	"frontdesk/internal/domains/order/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// HeaderKind selects the payload type of a bot message. Messages without it are service orders.
const HeaderKind = "kind"

// BotOrderConsumer is the queue counterpart of the bot webhook.
type BotOrderConsumer struct {
	events kafka.Client
	orders service.Order
	otel   otel.Otel
	topic  string
}

func NewBotOrderConsumer(cfg *config.Config, events kafka.Client, orders service.Order, otel otel.Otel) *BotOrderConsumer {
	return &BotOrderConsumer{
		events: events,
		orders: orders,
		otel:   otel,
		topic:  cfg.Kafka.Topics.BotOrders,
	}
}

// Run blocks until ctx is done. It returns immediately when Kafka is not configured.
func (c *BotOrderConsumer) Run(ctx context.Context) {
	if !c.events.Enabled() {
		return
	}

	log.Info().Str("topic", c.topic).Msg("bot order consumer started")

	c.events.Consume(ctx, c.topic, c.Handle)
}

func (c *BotOrderConsumer) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".HandleBotOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextBot)

	var req dto.CreateOrderRequest

	switch kind := header(msg, HeaderKind); kind {
	case constant.Empty, model.KindService:
		var order dto.BotOrderRequest
		if err = validator.Validate(bytes.NewReader(msg.Value), &order); err != nil {
			return fmt.Errorf("invalid bot order: %w", err)
		}

		req = order.ToCreateRequest()
	case model.KindReminder:
		var reminder dto.BotReminderRequest
		if err = validator.Validate(bytes.NewReader(msg.Value), &reminder); err != nil {
			return fmt.Errorf("invalid bot reminder: %w", err)
		}

		req = reminder.ToCreateRequest()
	default:
		return fmt.Errorf("unknown bot message kind %q", kind)
	}

	scope.SetAttribute("room_number", req.RoomNumber)

	id, err := c.orders.Create(ctx, req, model.SourceBot)
	if err != nil {
		return fmt.Errorf("failed to create bot order: %w", err)
	}

	log.Info().Str("order_id", id).Str("room_number", req.RoomNumber).Msg("bot order created from queue")

	return nil
}

func header(msg kafkaGo.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}

	return constant.Empty
}
