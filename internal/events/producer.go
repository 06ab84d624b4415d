package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
)

// Producer publishes order lifecycle events for the downstream
// notification pipeline. Publishing is best-effort: callers log
// failures and never fail the user action over them.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) PublishStatusChanged(ctx context.Context, orderID string, from, to domain.Status, requestID string) error {
	return p.publish(ctx, TypeStatusChanged, orderID, StatusChangedEvent{
		EventID:    uuid.New().String(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Timestamp:  time.Now(),
		RequestID:  requestID,
	})
}

func (p *Producer) PublishOrderEdited(ctx context.Context, orderID string, items []domain.OrderItem, total float64, requestID string) error {
	return p.publish(ctx, TypeOrderEdited, orderID, OrderEditedEvent{
		EventID:     uuid.New().String(),
		OrderID:     orderID,
		Items:       items,
		TotalAmount: total,
		Timestamp:   time.Now(),
		RequestID:   requestID,
	})
}

func (p *Producer) PublishOrderDeleted(ctx context.Context, orderID string, last domain.Status, requestID string) error {
	return p.publish(ctx, TypeOrderDeleted, orderID, OrderDeletedEvent{
		EventID:   uuid.New().String(),
		OrderID:   orderID,
		Status:    last,
		Timestamp: time.Now(),
		RequestID: requestID,
	})
}

func (p *Producer) publish(ctx context.Context, eventType, orderID string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%s", orderID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", eventType, err)
	}

	p.logger.Debug("event published",
		zap.String("event_type", eventType),
		zap.String("order_id", orderID))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
