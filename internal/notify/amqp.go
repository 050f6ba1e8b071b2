package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp091.Channel used to publish notices.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPNotifier publishes notices as persistent JSON messages to a queue on
// the default exchange.
type AMQPNotifier struct {
	pub   Publisher
	queue string
	close func() error
}

// NewAMQPNotifier wraps an existing publisher. The caller owns its lifecycle.
func NewAMQPNotifier(pub Publisher, queue string) *AMQPNotifier {
	return &AMQPNotifier{pub: pub, queue: queue}
}

// DialAMQP connects to the broker at url, opens a channel and declares a
// durable queue. Close releases both the channel and the connection.
func DialAMQP(url, queue string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	n := NewAMQPNotifier(ch, queue)
	n.close = func() error {
		return errors.Join(ch.Close(), conn.Close())
	}
	return n, nil
}

// Queue returns the destination queue name.
func (a *AMQPNotifier) Queue() string {
	return a.queue
}

func (a *AMQPNotifier) Notify(ctx context.Context, n EscalationNotice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		MessageId:    n.SessionID,
		Timestamp:    n.CompletedAt,
		Type:         "wellcheck.escalation",
		Headers: amqp091.Table{
			"message_type":  "JSON",
			"instrument_id": n.InstrumentID,
			"severity":      n.Severity,
		},
	}

	if err := a.pub.PublishWithContext(ctx, "", a.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish escalation: %w", err)
	}
	return nil
}

// Close releases broker resources opened by DialAMQP. It is a no-op for
// notifiers built with NewAMQPNotifier.
func (a *AMQPNotifier) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
