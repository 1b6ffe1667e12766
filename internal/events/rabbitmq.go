package events

//go:generate mockgen -source=rabbitmq.go -destination=mock_rabbitmq_test.go -package=events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// AMQPChannel is the part of *amqp091.Channel used for publishing.
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// RabbitPublisher publishes events to a durable topic exchange.
// The routing key is "transaction.<type>".
type RabbitPublisher struct {
	conn     *amqp091.Connection
	channel  AMQPChannel
	exchange string
}

// DialRabbit connects to url and declares the exchange.
func DialRabbit(url, exchange string) (*RabbitPublisher, error) {
	if url == "" {
		return nil, errors.New("events: empty RabbitMQ URL")
	}
	conn, err := amqp091.DialConfig(url, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewRabbitPublisher(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewRabbitPublisher declares exchange on ch.
func NewRabbitPublisher(ch AMQPChannel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &RabbitPublisher{channel: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event models.TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.TransactionID,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
	if err != nil {
		logger.Log.Errorw("Failed to publish transaction to RabbitMQ", "transaction_id", event.TransactionID, "error", err)
		return err
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// RoutingKey returns the topic routing key for event.
func RoutingKey(event models.TransactionEvent) string {
	return "transaction." + event.Type
}
