package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/agency-admin/internal/usecase"
)

const publishTimeout = 5 * time.Second

var eventsPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "provisioning_events_published_total",
		Help: "Total number of provisioning events sent to the broker",
	},
	[]string{"outcome"},
)

// Publisher is the part of *amqp.Channel the producer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	mu sync.Mutex
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishClientProvisioned(ctx context.Context, event usecase.ClientProvisionedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         RoutingKey,
		},
	)
	p.mu.Unlock()

	if err != nil {
		eventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	eventsPublished.WithLabelValues("success").Inc()
	slog.DebugContext(ctx, "provisioning event published", "client_id", event.ClientID, "operation", event.Operation)
	return nil
}
