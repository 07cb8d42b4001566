package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// CartEvent is the record published for every cart mutation.
type CartEvent struct {
	SessionID  string          `json:"sessionId"`
	Op         models.CartOp   `json:"op"`
	ProductID  int             `json:"productId,omitempty"`
	ItemCount  int             `json:"itemCount"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func NewCartEvent(sessionID string, change models.CartChange, at time.Time) CartEvent {
	return CartEvent{
		SessionID:  sessionID,
		Op:         change.Op,
		ProductID:  change.ProductID,
		ItemCount:  change.Cart.ItemCount,
		Total:      change.Cart.Total,
		OccurredAt: at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
	Close() error
}

// Listener adapts a Publisher to the session manager's cart change hook.
// Publish failures are logged and dropped.
func Listener(p Publisher) func(sessionID string, change models.CartChange) {
	return func(sessionID string, change models.CartChange) {
		event := NewCartEvent(sessionID, change, time.Now())
		if err := p.Publish(context.Background(), event); err != nil {
			slog.Warn("Failed to publish cart event",
				slog.String("sessionId", sessionID),
				slog.String("op", string(change.Op)),
				slog.String("error", err.Error()))
		}
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher writes asynchronously so cart mutations never wait on
// the broker. Delivery errors are reported through the completion callback.
func NewKafkaPublisher(cfg config.Kafka) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				slog.Error("Cart event delivery failed",
					slog.Int("messages", len(messages)),
					slog.String("error", err.Error()))
			}
		},
	}

	return &KafkaPublisher{writer: writer}
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish keys messages by session id so one session's events stay ordered
// within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event CartEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode cart event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: data,
		Time:  event.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, CartEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
