// Package publisher sends reservation lifecycle events to RabbitMQ.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/yedam/studycafe-seat-reservation/internal/queue"
)

// Publisher publishes ReservationEvents.  A nil Publisher is valid and
// drops every event, which is how deployments without a broker run.
type Publisher struct {
	url string
	log zerolog.Logger
}

// New returns a publisher dialing the given AMQP URL per publish.  The
// per-publish dial keeps the publisher stateless; event volume here is a
// handful per minute at most.
func New(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// Publish sends one event to the reservation.events queue.  Messages are
// persistent and the queue is declared durable on every call (idempotent).
// The function never panics; all errors are logged and returned.
func (p *Publisher) Publish(ctx context.Context, event queue.ReservationEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.QueueName, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.QueueName, false, false, pub); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
