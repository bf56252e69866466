package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// Event is the envelope published for every domain event.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     logrus.FieldLogger

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config, log logrus.FieldLogger) (*Client, error) {
	if cfg.Queue == "" {
		return nil, errors.New("rabbitmq queue name is required")
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

	if _, err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log = log.WithField("queue", cfg.Queue)
	log.Info("RabbitMQ client connected and queue declared")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     log,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
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
	return errors.Join(errs...)
}

// NewEvent wraps payload in an Event envelope.
func NewEvent(eventType string, payload interface{}, now time.Time) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, OccurredAt: now.UTC(), Payload: raw}, nil
}

// Publish sends a persistent JSON event to the configured queue.
func (c *Client) Publish(eventType string, payload interface{}) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	event, err := NewEvent(eventType, payload, time.Now())
	if err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// ConsumeEvents decodes events from the queue and hands them to handler.
// Messages are acked on success; undecodable messages are dropped, handler
// failures are requeued.
func (c *Client) ConsumeEvents(handler func(Event) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("waiting for chat events")

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
	}()
	return nil
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(Event) error) {
	log := c.log.WithField("delivery_tag", msg.DeliveryTag)

	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.WithError(err).Warn("dropping undecodable event")
		if err := msg.Nack(false, false); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		log.WithError(err).WithField("event", event.Type).Error("failed to process event")
		if err := msg.Nack(false, true); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		log.WithError(err).Error("failed to ack message")
	}
}
