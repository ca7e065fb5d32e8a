// Package service holds the outbound side effects of the HTTP layer. The
// activity publisher sends repository events to RabbitMQ; callers treat
// failures as best effort.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/universe-repo/internal/config"
	"github.com/iliyamo/universe-repo/internal/queue"
)

// ActivityPublisher publishes RepositoryEvents to a durable queue. It dials
// per publish; activity events are infrequent and this keeps no connection
// state to repair.
type ActivityPublisher struct {
	url   string
	queue string
}

func NewActivityPublisher(cfg config.AMQPConfig) *ActivityPublisher {
	return &ActivityPublisher{url: cfg.URL, queue: cfg.Queue}
}

// Publish sends ev as a persistent JSON message. Errors are returned with
// the failing step attached; logging them is left to the caller.
func (p *ActivityPublisher) Publish(ctx context.Context, ev queue.RepositoryEvent) error {
	msg, err := buildPublishing(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare queue %q: %w", p.queue, err)
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", ev.Type, err)
	}
	return nil
}

func buildPublishing(ev queue.RepositoryEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Type),
		Body:         body,
	}, nil
}

// NopPublisher discards events. Used when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.RepositoryEvent) error { return nil }
