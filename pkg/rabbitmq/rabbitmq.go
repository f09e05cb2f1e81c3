package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"teslo/internal/models"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// DefaultQueue receives product events when no queue is configured.
const DefaultQueue = "product_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// product events queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	zap.L().Info("RabbitMQ client connected", zap.String("queue", cfg.Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes event as a persistent JSON message.
func (c *Client) PublishProductEvent(event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	zap.L().Debug("product event sent", zap.String("type", event.Type), zap.String("product_id", event.ProductID))
	return nil
}

// ConsumeProductEvents delivers every queued event to handler in a
// goroutine. Messages are acked when handler succeeds, requeued when it
// fails and dropped when they cannot be decoded.
func (c *Client) ConsumeProductEvents(handler func(models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
		zap.L().Info("product events consumer stopped")
	}()

	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(models.ProductEvent) error) {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		zap.L().Warn("dropping malformed product event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if err := msg.Nack(false, false); err != nil {
			zap.L().Error("failed to nack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}

	if err := handler(event); err != nil {
		zap.L().Warn("failed to process product event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if err := msg.Nack(false, true); err != nil {
			zap.L().Error("failed to nack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		zap.L().Error("failed to ack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
	}
}
