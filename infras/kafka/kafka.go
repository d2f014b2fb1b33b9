package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks -exclude_interfaces=messageReader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"frontdesk/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Decode unmarshals the JSON value of msg into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

// Handler processes one message. A returned error is logged and the offset is still committed.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	// Enabled reports whether brokers are configured. A disabled client drops
	// published messages and never consumes.
	Enabled() bool
	Publish(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, topic string, handler Handler)
	Close() error
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	if len(config.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka brokers not configured, events disabled")

		return &kafkaClientImpl{config: config}
	}

	dialer := &kafkaGo.Dialer{DualStack: true}
	transport := &kafkaGo.Transport{}

	if config.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: dialer,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *kafkaClientImpl) Enabled() bool {
	return k.writer != nil
}

func (k *kafkaClientImpl) Publish(ctx context.Context, topic string, messages ...Message) error {
	if !k.Enabled() || len(messages) == 0 {
		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("messages", len(msgs)).Msg("Sent message successfully.")

	return nil
}

// Consume blocks until ctx is done.
func (k *kafkaClientImpl) Consume(ctx context.Context, topic string, handler Handler) {
	if !k.Enabled() || topic == "" {
		return
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     k.config.Kafka.ConsumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	consume(ctx, reader, topic, handler, readBackoff)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafkaGo.Message, error)
}

// readBackoff is the pause after a failed read before the next attempt.
const readBackoff = 2 * time.Second

// consume hands every message to handler until ctx is done. Read failures wait
// for backoff so a broken connection does not spin.
func consume(ctx context.Context, reader messageReader, topic string, handler Handler, backoff time.Duration) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")

			select {
			case <-ctx.Done():
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return
			case <-time.After(backoff):
			}

			continue
		}

		if err = handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Msg("Failed to handle Kafka message.")
		}
	}
}

func (k *kafkaClientImpl) Close() error {
	if !k.Enabled() {
		return nil
	}

	if err := k.writer.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
