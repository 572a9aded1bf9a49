package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// Notice is the message body published for every invalidation.
type Notice struct {
	Paths []string  `json:"paths"`
	At    time.Time `json:"at"`
}

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes notices to a fanout exchange so that every
// frontend instance can drop its cached pages.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	pub      publisher
	exchange string
	logger   *slog.Logger

	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// DialAMQP connects to url and declares exchange as a durable fanout.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	n := newAMQPNotifier(ch, exchange, logger)
	n.conn = conn
	n.channel = ch
	return n, nil
}

func newAMQPNotifier(pub publisher, exchange string, logger *slog.Logger) *AMQPNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPNotifier{pub: pub, exchange: exchange, logger: logger}
}

func (n *AMQPNotifier) Invalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	now := time.Now().UTC()
	body, err := json.Marshal(Notice{Paths: paths, At: now})
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to encode revalidation notice", "error", err)
		return
	}

	n.mu.Lock()
	err = n.pub.Publish(n.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   now,
	})
	n.mu.Unlock()

	if err != nil {
		n.logger.ErrorContext(ctx, "failed to publish revalidation notice", "paths", paths, "error", err)
	}
}

// Close closes the channel and connection.
func (n *AMQPNotifier) Close() error {
	var errs []error
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing revalidation publisher: %v", errs)
	}
	return nil
}
