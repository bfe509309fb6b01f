package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/agency-admin/internal/usecase"
)

// Notifier delivers a provisioning summary, e.g. by email.
type Notifier interface {
	NotifyClientProvisioned(ctx context.Context, event usecase.ClientProvisionedEvent) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consumes queueName with manual acks until ctx is cancelled or the
// delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	if err := w.Channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	slog.InfoContext(ctx, "worker waiting for messages", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "worker stopping", "queue", queueName)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks processed messages. Malformed payloads and notifier failures
// are rejected without requeue and end up in the dead letter queue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var event usecase.ClientProvisionedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		slog.ErrorContext(ctx, "invalid provisioning event", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.Notifier.NotifyClientProvisioned(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to notify provisioning",
			"client_id", event.ClientID,
			"operation", event.Operation,
			"error", err,
		)
		_ = d.Nack(false, false)
		return
	}

	slog.InfoContext(ctx, "provisioning notified", "client_id", event.ClientID, "operation", event.Operation)
	_ = d.Ack(false)
}
