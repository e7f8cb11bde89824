package rabbitmq

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrConnectionClosed = errors.New("rabbitmq: connection is not open")

// Client owns one connection and a confirm-mode publishing channel. A closed
// connection is re-dialed lazily by the next publish.
type Client struct {
	url      string
	exchange string

	mu          sync.Mutex
	conn        *amqp.Connection
	pubChan     *amqp.Channel
	pubConfirms chan amqp.Confirmation
}

// Connect dials the broker and declares the durable topic exchange bonus
// events are published to.
func Connect(url, exchange string) (*Client, error) {
	client := &Client{url: url, exchange: exchange}

	client.mu.Lock()
	defer client.mu.Unlock()
	if err := client.connectLocked(); err != nil {
		return nil, err
	}
	return client, nil
}

func (client *Client) connectLocked() error {
	conn, err := amqp.DialConfig(client.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(30 * time.Second),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(client.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to declare exchange %s: %w", client.exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to enable confirms: %w", err)
	}

	client.conn = conn
	client.pubChan = ch
	client.pubConfirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	returns := ch.NotifyReturn(make(chan amqp.Return, 1))
	go func() {
		for r := range returns {
			slog.Warn("RabbitMQ message returned as unroutable",
				"exchange", r.Exchange,
				"routing_key", r.RoutingKey,
				"code", r.ReplyCode,
				"text", r.ReplyText,
			)
		}
	}()

	slog.Info("RabbitMQ connection established", "exchange", client.exchange)
	return nil
}

// channel returns an open publishing channel, reconnecting when needed.
func (client *Client) channel() (*amqp.Channel, chan amqp.Confirmation, error) {
	if client.conn == nil || client.conn.IsClosed() || client.pubChan == nil || client.pubChan.IsClosed() {
		if client.url == "" {
			return nil, nil, ErrConnectionClosed
		}
		if err := client.connectLocked(); err != nil {
			return nil, nil, err
		}
	}
	return client.pubChan, client.pubConfirms, nil
}

func (client *Client) Close() {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.pubChan != nil {
		_ = client.pubChan.Close()
		client.pubChan = nil
	}
	if client.conn != nil {
		_ = client.conn.Close()
		client.conn = nil
	}
	client.url = ""
}
