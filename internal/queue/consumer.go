package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartReservationConsumer connects to RabbitMQ, declares the durable
// reservation.events queue and appends each event to logs/reservations.log
// in a single-line, human-friendly format.  It runs a reconnect loop with
// exponential backoff and returns only when ctx is cancelled.  Malformed
// messages are rejected without requeue so the loop keeps running.
func StartReservationConsumer(ctx context.Context, url string, log zerolog.Logger) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("consumer: dial failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(ctx, conn, log); err != nil {
			log.Warn().Err(err).Msg("consumer: loop ended, reconnecting")
		}
		_ = conn.Close()
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := appendAuditLine(d.Body); err != nil {
				log.Error().Err(err).Msg("consumer: handle message failed")
				_ = d.Reject(false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// appendAuditLine writes one event to logs/reservations.log.
func appendAuditLine(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "reservations.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s reservation=%s seat=%d date=%s slot=%s user=%q duration=%dh\n",
		ev.OccurredAt, ev.Type, ev.ReservationID, ev.SeatNumber, ev.Date, ev.TimeSlotID, ev.UserName, ev.Duration)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write audit line: %w", err)
	}
	return nil
}
