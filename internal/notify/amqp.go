package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPNotifier publishes sync messages to a durable direct exchange, for
// downstream consumers (push notifications, digests) to pick up.
type AMQPNotifier struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewAMQPNotifier dials the broker and declares the exchange, queue, and
// binding.
func NewAMQPNotifier(url, exchangeName, queueName string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	n := &AMQPNotifier{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := n.setup(); err != nil {
		n.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return n, nil
}

func (n *AMQPNotifier) setup() error {
	err := n.channel.ExchangeDeclare(
		n.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = n.channel.QueueDeclare(
		n.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = n.channel.QueueBind(n.queueName, n.queueName, n.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// TransactionsSynced publishes a persistent SyncMessage.
func (n *AMQPNotifier) TransactionsSynced(ctx context.Context, userID string, newCount int) error {
	msg := NewSyncMessage(userID, newCount)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		n.exchangeName,
		n.queueName, // routing key mirrors the queue name on a direct exchange
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "published sync notification",
		"user_id", userID,
		"new_count", newCount,
		"exchange", n.exchangeName)
	return nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
