package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// BonusPublisher publishes automatic bonus changes as persistent JSON
// messages and waits for the broker to confirm each one.
type BonusPublisher struct {
	client *Client
}

func NewBonusPublisher(client *Client) *BonusPublisher {
	return &BonusPublisher{client: client}
}

func (p *BonusPublisher) PublishBonusEvent(ctx context.Context, event bonus.BonusEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.client.mu.Lock()
	defer p.client.mu.Unlock()

	ch, confirms, err := p.client.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := ch.PublishWithContext(ctx, p.client.exchange, event.RoutingKey(), true, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", event.RoutingKey(), err)
	}

	select {
	case c, ok := <-confirms:
		if !ok {
			return ErrConnectionClosed
		}
		if !c.Ack {
			return fmt.Errorf("rabbitmq: publish %s not acknowledged", event.RoutingKey())
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newPublishing(event bonus.BonusEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: encode bonus event: %w", err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.RoutingKey(),
		Timestamp:    event.At,
		MessageId:    event.BonusID + ":" + string(event.Action),
		Body:         body,
	}, nil
}
