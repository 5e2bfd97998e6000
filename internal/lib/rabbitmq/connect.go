// Package rabbitmq contains helpers for connecting to RabbitMQ and
// publishing the backend's JSON event messages.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// EventsExchange is the direct exchange carrying backend events.
const EventsExchange = "events"

// QueueConfig binds a queue to a routing key on the events exchange.
type QueueConfig struct {
	Name       string
	RoutingKey string
}

// DefaultQueues are the queues the backend publishes to.
var DefaultQueues = []QueueConfig{
	{Name: "project_audit", RoutingKey: "project.deleted"},
	{Name: "pixel_events", RoutingKey: "pixel"},
}

// Connect dials RabbitMQ with retries.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel opens a channel and declares the events exchange with
// its queues and bindings.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		EventsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.Name, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.Name, q.RoutingKey, EventsExchange, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return ch, nil
}
