// Package events publishes notification events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"accounthub/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange               = "notification.events"
	RoutingNotificationNew = "notification.created"
	contentTypeJSON        = "application/json"
)

// NotificationEvent is the message body for RoutingNotificationNew.
type NotificationEvent struct {
	EventType  string              `json:"eventType"`
	OccurredAt time.Time           `json:"occurredAt"`
	Data       models.Notification `json:"data"`
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends events to the exchange. A zero-configured publisher is
// disabled and drops events.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
}

// NewPublisher dials url and declares the exchange. An empty url returns a
// disabled publisher.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if url == "" {
		logger.Warn("AMQP_URL is empty, notification events are disabled")
		return &Publisher{exchange: Exchange, logger: logger}, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	logger.Info("event publisher ready", "exchange", Exchange)
	return &Publisher{conn: conn, ch: ch, exchange: Exchange, logger: logger}, nil
}

func (p *Publisher) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

func (p *Publisher) Enabled() bool { return p.ch != nil }

func (p *Publisher) PublishNotificationCreated(ctx context.Context, n models.Notification) error {
	if !p.Enabled() {
		return nil
	}
	body, err := json.Marshal(NotificationEvent{
		EventType:  RoutingNotificationNew,
		OccurredAt: time.Now().UTC(),
		Data:       n,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingNotificationNew, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    n.ID,
		Body:         body,
		Headers: amqp.Table{
			"event_type": RoutingNotificationNew,
			"user_id":    n.UserID,
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingNotificationNew, err)
	}
	p.log().Debug("published event", "event", RoutingNotificationNew, "notification_id", n.ID)
	return nil
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	if err := p.ch.Close(); err != nil {
		p.log().Warn("close channel", "error", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
