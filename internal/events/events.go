// Package events publishes ledger transactions to a message broker.
package events

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// Supported brokers.
const (
	BrokerNone     = "none"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

// Publisher delivers transaction events.
type Publisher interface {
	Publish(ctx context.Context, event models.TransactionEvent) error
	Close() error
}

// Options selects and configures the broker.
type Options struct {
	Broker         string
	KafkaBrokers   []string
	KafkaTopic     string
	RabbitURL      string
	RabbitExchange string
}

// New returns the publisher for opts.Broker. An unreachable RabbitMQ
// falls back to Nop so the ledger keeps working.
func New(opts Options) (Publisher, error) {
	switch opts.Broker {
	case "", BrokerNone:
		return Nop{}, nil
	case BrokerKafka:
		if len(opts.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("events: no kafka brokers configured")
		}
		return NewKafkaPublisher(NewKafkaWriter(opts.KafkaBrokers, opts.KafkaTopic)), nil
	case BrokerRabbitMQ:
		p, err := DialRabbit(opts.RabbitURL, opts.RabbitExchange)
		if err != nil {
			logger.Log.Warnw("RabbitMQ unavailable, events disabled", "error", err)
			return Nop{}, nil
		}
		return p, nil
	default:
		return nil, fmt.Errorf("events: unknown broker %q", opts.Broker)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(_ context.Context, event models.TransactionEvent) error {
	logger.Log.Debugw("event publishing disabled, skipping", "transaction_id", event.TransactionID)
	return nil
}

func (Nop) Close() error { return nil }
