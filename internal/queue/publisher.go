package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher delivers calculation events to a broker.
type Publisher interface {
	PublishCalculation(ctx context.Context, ev CalculationPerformedEvent) error
}

// AMQPPublisher publishes to a durable RabbitMQ queue through the default
// exchange.  Each publish opens and closes its own connection.
type AMQPPublisher struct {
	URL    string
	Queue  string
	Logger *zap.Logger
}

func NewAMQPPublisher(url, queue string, logger *zap.Logger) *AMQPPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQPPublisher{URL: url, Queue: queue, Logger: logger}
}

// PublishCalculation marks the message persistent.  Errors are logged and
// returned so callers may ignore them.
func (p *AMQPPublisher) PublishCalculation(ctx context.Context, ev CalculationPerformedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		p.Logger.Warn("rabbitmq: queue declare failed", zap.String("queue", p.Queue), zap.Error(err))
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.RequestID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		p.Logger.Warn("rabbitmq: publish failed", zap.String("queue", p.Queue), zap.Error(err))
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
