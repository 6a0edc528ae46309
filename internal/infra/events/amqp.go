package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/condoflow/booking-service/internal/domain"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher forwards domain events to a topic exchange so external
// consumers (governance, notifications) receive them without coupling to
// this process. Routing key = event routing key, e.g.
// "reservation.canceled".
type AMQPPublisher struct {
	channel  *amqp.Channel
	exchange string
	logger   Logger
}

// NewAMQPPublisher declares the exchange and returns a publisher bound
// to it.
func NewAMQPPublisher(conn *amqp.Connection, exchange string, logger Logger) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp publisher: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("amqp publisher: declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{channel: ch, exchange: exchange, logger: logger}, nil
}

// Name implements Subscriber.
func (p *AMQPPublisher) Name() string {
	return "amqp"
}

// Handle publishes one event as a persistent JSON message.
func (p *AMQPPublisher) Handle(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("amqp publisher: marshal %s: %w", event.RoutingKey(), err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx,
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID().String(),
			Timestamp:    event.OccurredAt(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp publisher: publish %s: %w", event.RoutingKey(), err)
	}
	return nil
}

// Close releases the channel.
func (p *AMQPPublisher) Close() error {
	return p.channel.Close()
}
