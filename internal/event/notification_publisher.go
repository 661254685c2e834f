package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationPublisher publishes notification events to RabbitMQ.
type NotificationPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewNotificationPublisher(conn *RabbitMQConnection) *NotificationPublisher {
	return &NotificationPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// Publish sends a notification event to the durable notification queue.
func (p *NotificationPublisher) Publish(ctx context.Context, evt NotificationEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		NotificationQueue, // queue name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                // exchange
		NotificationQueue, // routing key (queue name)
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Notification event published",
		"queue", NotificationQueue,
		"event_type", evt.EventType,
		"entity_id", evt.EntityID,
	)

	return nil
}

// Notify publishes fire-and-forget: failures are logged and never surfaced
// to the calling lifecycle operation.
func (p *NotificationPublisher) Notify(ctx context.Context, evt NotificationEvent) {
	if err := p.Publish(ctx, evt); err != nil {
		slog.Error("notification publish failed",
			"event_type", evt.EventType,
			"entity_id", evt.EntityID,
			"error", err,
		)
	}
}
