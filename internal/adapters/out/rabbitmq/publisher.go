// Package rabbitmq publishes order lifecycle events to a RabbitMQ topic
// exchange for downstream consumers (audit, analytics, firm dashboards).
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"waterdelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order-changed events go through.
// Routing keys take the form "order.<status>", e.g. "order.assigned", so a
// consumer can bind to a single status or to "order.#" for everything.
const ExchangeName = "orders.changed"

// orderChangedMessage is the wire shape of one committed transition.
type orderChangedMessage struct {
	OrderID    string    `json:"order_id"`
	FirmID     string    `json:"firm_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher implements ports.EventPublisher over one AMQP connection.
// A channel is opened per publish; channels are cheap and not safe for
// concurrent use, connections are neither.
type Publisher struct {
	mu     sync.RWMutex
	conn   *amqp.Connection
	logger *slog.Logger
}

// NewPublisher creates a publisher over an established AMQP connection and
// declares the exchange so consumers can bind before the first event.
func NewPublisher(conn *amqp.Connection, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn, logger: logger}, nil
}

// PublishOrderChanged publishes one committed transition. The order state is
// already committed when this runs, so the caller treats a returned error as
// log-worthy, not as a reason to fail the mutation; the error is also logged
// here with the event context attached.
func (p *Publisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	err := p.publish(ctx, event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to publish order-changed event",
			slog.String("order_id", event.OrderID.String()),
			slog.String("from_status", event.FromStatus.String()),
			slog.String("to_status", event.ToStatus.String()),
			slog.Any("error", err),
		)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, event ports.OrderChangedEvent) error {
	p.mu.RLock()
	conn := p.conn
	p.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(orderChangedMessage{
		OrderID:    event.OrderID.String(),
		FirmID:     event.FirmID.String(),
		FromStatus: event.FromStatus.String(),
		ToStatus:   event.ToStatus.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	routingKey := "order." + strings.ToLower(event.ToStatus.String())

	err = ch.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close releases the underlying connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn := p.conn
	p.conn = nil
	if conn != nil && !conn.IsClosed() {
		return conn.Close()
	}
	return nil
}
